package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	req := require.New(t)
	secret := "correct horse battery staple"

	digest, err := HashSecret(secret)
	req.NoError(err)
	req.True(strings.HasPrefix(digest, "$argon2id$"))
	req.NotContains(digest, secret)

	match, err := VerifySecret(secret, digest)
	req.NoError(err)
	req.True(match)

	match, err = VerifySecret("wrong secret", digest)
	req.NoError(err)
	req.False(match)
}

func TestHashSecret_SaltedPerCall(t *testing.T) {
	req := require.New(t)

	first, err := HashSecret("same secret")
	req.NoError(err)
	second, err := HashSecret("same secret")
	req.NoError(err)
	req.NotEqual(first, second)
}

func TestVerifySecret_MalformedDigest(t *testing.T) {
	req := require.New(t)

	for _, digest := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$not-base64!$aGFzaA",
	} {
		match, err := VerifySecret("anything", digest)
		req.Error(err, "digest=%q", digest)
		req.False(match)
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr bool
	}{
		{"Valid credentials", Credentials{"alice", "hunter2"}, false},
		{"Minimum length handle", Credentials{"al", "hunter2"}, false},
		{"Maximum length handle", Credentials{strings.Repeat("a", 20), "hunter2"}, false},
		{"Missing handle", Credentials{"", "hunter2"}, true},
		{"Handle too short", Credentials{"a", "hunter2"}, true},
		{"Handle too long", Credentials{strings.Repeat("a", 21), "hunter2"}, true},
		{"Missing secret", Credentials{"alice", ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.creds)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func BenchmarkHashSecret(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = HashSecret("a-long-enough-secret-for-benchmarks")
	}
}
