//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"pairchat/domain"
	"pairchat/errors"
)

type IUserRepository interface {
	CreateUser(handle, secretDigest string) error
	GetUserByHandle(handle string) (domain.Identity, error)
	ListHandles() ([]string, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

const userKeyPrefix = "user:"

// userRecord is the stored shape of an identity. The digest already embeds
// its own salt and parameters, so the record stays flat.
type userRecord struct {
	Handle       string `json:"handle"`
	SecretDigest string `json:"secret_digest"`
	RegisteredAt int64  `json:"registered_at"`
}

// CreateUser persists a new identity keyed by handle, if absent.
// The existence check and the insert run in one Badger transaction; when two
// registrations race on the same handle, Badger's conflict detection aborts
// the loser with ErrConflict and the retry observes the winner's record, so
// at most one identity per handle ever exists.
func (u UserRepository) CreateUser(handle, secretDigest string) error {
	record := userRecord{
		Handle:       handle,
		SecretDigest: secretDigest,
		RegisteredAt: time.Now().Unix(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	key := []byte(userKeyPrefix + handle)
	for {
		err = u.db.Update(func(txn *badger.Txn) error {
			_, getErr := txn.Get(key)
			if getErr == nil {
				return errors.ErrHandleTaken
			}
			if !goerrors.Is(getErr, badger.ErrKeyNotFound) {
				return getErr
			}
			return txn.Set(key, data)
		})
		if goerrors.Is(err, badger.ErrConflict) {
			continue
		}
		return err
	}
}

// GetUserByHandle retrieves one identity. An absent handle is reported as
// ErrUnknownHandle so callers can tell it apart from the store failing.
func (u UserRepository) GetUserByHandle(handle string) (domain.Identity, error) {
	var record userRecord
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + handle))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Identity{}, errors.ErrUnknownHandle
	}
	if err != nil {
		return domain.Identity{}, err
	}
	return toIdentity(record), nil
}

// ListHandles returns every registered handle in key order, which Badger
// keeps lexicographic, so the listing is stable across calls.
func (u UserRepository) ListHandles() ([]string, error) {
	handles := make([]string, 0)
	err := u.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(userKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			handles = append(handles, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return handles, err
}

func toIdentity(record userRecord) domain.Identity {
	return domain.Identity{
		Handle:       record.Handle,
		SecretDigest: record.SecretDigest,
		RegisteredAt: time.Unix(record.RegisteredAt, 0).UTC(),
	}
}
