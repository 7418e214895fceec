//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"pairchat/domain"
)

type IMessageRepository interface {
	AppendMessage(from, to, body string) (domain.Message, error)
	GetConversation(userA, userB string) ([]domain.Message, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
	seq *badger.Sequence
}

// NewMessageRepository reserves a monotonic sequence used to disambiguate
// messages that land on the same nanosecond. Callers own Close.
func NewMessageRepository(db *badger.DB, log *slog.Logger) (*MessageRepository, error) {
	seq, err := db.GetSequence([]byte("seq:msg"), 128)
	if err != nil {
		return nil, fmt.Errorf("sequence allocation failed: %w", err)
	}
	return &MessageRepository{db: db, log: log, seq: seq}, nil
}

// Close releases the unused tail of the sequence lease.
func (m *MessageRepository) Close() error {
	return m.seq.Release()
}

type messageRecord struct {
	ID     string `json:"id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Body   string `json:"body"`
	SentAt int64  `json:"sent_at"` // unix nanoseconds
	Seq    uint64 `json:"seq"`
}

// messageKey formats "msg:{pair}:{timestamp_padded}:{seq_padded}" so that:
//  1. A prefix scan on the pair returns one conversation, both directions.
//  2. The 19-digit zero padding makes lexicographic order chronological.
//  3. The sequence suffix keeps ordering deterministic when two messages
//     share a nanosecond.
func messageKey(msg domain.Message) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d:%012d",
		domain.PairKey(msg.From, msg.To),
		msg.SentAt.UnixNano(),
		msg.Seq,
	))
}

// AppendMessage stamps the message at persistence time and stores it in one
// transaction. A failed or abandoned call writes nothing.
func (m *MessageRepository) AppendMessage(from, to, body string) (domain.Message, error) {
	seqNo, err := m.seq.Next()
	if err != nil {
		return domain.Message{}, err
	}

	msg := domain.Message{
		ID:     uuid.New(),
		From:   from,
		To:     to,
		Body:   body,
		SentAt: time.Now().UTC(),
		Seq:    seqNo,
	}

	data, err := json.Marshal(fromMessage(msg))
	if err != nil {
		return domain.Message{}, fmt.Errorf("marshal failed: %w", err)
	}

	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(msg), data)
	})
	if err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// GetConversation returns every message exchanged between the two handles in
// either direction, oldest first. Thanks to the padded key layout a plain
// forward prefix scan already yields chronological order. A pair with no
// history yields an empty slice.
//
// Handles are only constrained in length, so one may contain the pair-key
// separator and make the prefix cover another pair's keys ("a|b"+"c" shares
// a prefix with "a"+"b|c"). The stored participants of each record are
// therefore compared exactly before it is returned.
func (m *MessageRepository) GetConversation(userA, userB string) ([]domain.Message, error) {
	messages := make([]domain.Message, 0)
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte("msg:" + domain.PairKey(userA, userB) + ":")
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record messageRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return err
			}
			if !samePair(record.From, record.To, userA, userB) {
				continue
			}
			msg, err := toMessage(record)
			if err != nil {
				return err
			}
			messages = append(messages, msg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.log.Debug("conversation fetched",
		"pair", domain.PairKey(userA, userB), "count", len(messages))
	return messages, nil
}

// samePair reports whether {fromA,toA} and {fromB,toB} are the same
// unordered pair.
func samePair(fromA, toA, fromB, toB string) bool {
	return (fromA == fromB && toA == toB) || (fromA == toB && toA == fromB)
}

func fromMessage(msg domain.Message) messageRecord {
	return messageRecord{
		ID:     msg.ID.String(),
		From:   msg.From,
		To:     msg.To,
		Body:   msg.Body,
		SentAt: msg.SentAt.UnixNano(),
		Seq:    msg.Seq,
	}
}

func toMessage(record messageRecord) (domain.Message, error) {
	parsedID, err := uuid.Parse(record.ID)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:     parsedID,
		From:   record.From,
		To:     record.To,
		Body:   record.Body,
		SentAt: time.Unix(0, record.SentAt).UTC(),
		Seq:    record.Seq,
	}, nil
}
