package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents an immutable directed communication between two handles.
// Participants are referenced by handle value only; nothing checks that they
// exist in the credential store.
type Message struct {
	ID     uuid.UUID
	From   string
	To     string
	Body   string
	SentAt time.Time
	Seq    uint64 // monotonic tie-break when two messages share a timestamp
}

// PairKey returns the canonical key fragment for the unordered conversation
// pair, so that {A,B} and {B,A} address the same conversation.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}
