package repositories

import (
	goerrors "errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"pairchat/errors"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Test_Create_And_Get_User(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	err := repository.CreateUser("alice", "$argon2id$digest")
	req.NoError(err)

	identity, err := repository.GetUserByHandle("alice")
	req.NoError(err)
	req.Equal("alice", identity.Handle)
	req.Equal("$argon2id$digest", identity.SecretDigest)
	req.False(identity.RegisteredAt.IsZero())
}

func Test_Create_Duplicate_Handle(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	req.NoError(repository.CreateUser("alice", "digest-one"))
	err := repository.CreateUser("alice", "digest-two")
	req.ErrorIs(err, errors.ErrHandleTaken)

	// The first registration must be the one that persists
	identity, err := repository.GetUserByHandle("alice")
	req.NoError(err)
	req.Equal("digest-one", identity.SecretDigest)
}

func Test_Handles_Are_Case_Sensitive(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	req.NoError(repository.CreateUser("alice", "d1"))
	req.NoError(repository.CreateUser("Alice", "d2"))

	handles, err := repository.ListHandles()
	req.NoError(err)
	req.ElementsMatch([]string{"alice", "Alice"}, handles)
}

func Test_Get_Unknown_Handle(t *testing.T) {
	repository := NewUserRepository(openTestDB(t))

	_, err := repository.GetUserByHandle("nobody")
	require.ErrorIs(t, err, errors.ErrUnknownHandle)
}

func Test_List_Handles_Stable_Order(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	for _, handle := range []string{"clara", "alice", "bob"} {
		req.NoError(repository.CreateUser(handle, "digest"))
	}

	first, err := repository.ListHandles()
	req.NoError(err)
	req.Equal([]string{"alice", "bob", "clara"}, first)

	second, err := repository.ListHandles()
	req.NoError(err)
	req.Equal(first, second)
}

// Concurrent registrations racing on the same handle: exactly one may win,
// no matter how the transactions interleave.
func Test_Concurrent_Create_Same_Handle(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	const attempts = 50
	var successes, conflicts, unexpected atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch err := repository.CreateUser("alice", "digest"); {
			case err == nil:
				successes.Add(1)
			case goerrors.Is(err, errors.ErrHandleTaken):
				conflicts.Add(1)
			default:
				unexpected.Add(1)
			}
		}()
	}
	wg.Wait()

	req.Equal(int64(1), successes.Load())
	req.Equal(int64(attempts-1), conflicts.Load())
	req.Zero(unexpected.Load())

	handles, err := repository.ListHandles()
	req.NoError(err)
	req.Equal([]string{"alice"}, handles)
}
