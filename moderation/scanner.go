// Package moderation decides whether message content resembles sensitive
// personal data and must be rejected before persistence.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"

	"pairchat/errors"
)

// Scanner reports whether a text is blocked by the content policy.
// The ledger depends on this interface only, so the phrase matcher can be
// swapped for a smarter classifier without touching it.
type Scanner interface {
	Scan(text string) bool
}

// DefaultPhrases is the stock policy list. A text is blocked when its
// lowercased form contains any phrase as a substring. Matching is
// deliberately naive: no tokenization, stemming or context awareness, so
// "passport" blocks and so does "your passport number".
var DefaultPhrases = []string{
	"password",
	"ssn",
	"social security number",
	"credit card",
	"ccv",
	"cvv",
	"bank account",
	"routing number",
	"phone number",
	"address",
	"email",
	"passport",
	"driver license",
	"pin code",
	"secret",
	"confidential",
}

// PhraseScanner implements Scanner with an Aho-Corasick automaton built over
// the lowercased policy phrases. Equivalent to case-insensitive substring
// matching against every phrase, in a single pass over the text.
type PhraseScanner struct {
	matcher *goahocorasick.Machine
}

// NewPhraseScanner builds the automaton from the given phrase list.
// Phrases that are empty after lowercasing are skipped; an effectively empty
// policy is refused rather than silently allowing everything.
func NewPhraseScanner(phrases []string) (*PhraseScanner, error) {
	patterns := make([][]rune, 0, len(phrases))
	for _, phrase := range phrases {
		runes := lowerRunes(phrase)
		if len(runes) == 0 {
			continue
		}
		patterns = append(patterns, runes)
	}
	if len(patterns) == 0 {
		return nil, errors.ErrEmptyPolicy
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &PhraseScanner{matcher: m}, nil
}

// Scan returns true when the text contains any policy phrase.
// Empty text is never blocked; the empty-body check belongs to the caller.
func (s *PhraseScanner) Scan(text string) bool {
	if text == "" {
		return false
	}
	hits := s.matcher.MultiPatternSearch(lowerRunes(text), true)
	return len(hits) > 0
}

func lowerRunes(input string) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		out = append(out, unicode.ToLower(r))
	}
	return out
}
