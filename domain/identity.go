// Package domain contains the core concepts of the messaging system.
package domain

import "time"

// Identity represents one registered account.
// The secret digest is an argon2id encoding; the plaintext secret
// is never stored.
type Identity struct {
	Handle       string
	SecretDigest string
	RegisteredAt time.Time
}
