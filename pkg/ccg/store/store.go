// Package store persists parsed sentences and their N-best
// derivations so batches can be inspected after the fact.
package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store is the treebank persistence interface.
type Store interface {
	Close() error

	// Sentences
	SaveSentence(ctx context.Context, s Sentence) error
	GetSentence(ctx context.Context, id string) (Sentence, bool, error)
	ListSentences(ctx context.Context, limit int) ([]Sentence, error)

	// Parses
	SaveParses(ctx context.Context, sentenceID string, parses []Parse) error
	ParsesFor(ctx context.Context, sentenceID string) ([]Parse, error)
}

// Sentence is one stored input with its outcome diagnostic.
type Sentence struct {
	ID        string
	Lang      string
	Tokens    []string
	Diag      string
	CreatedAt time.Time
}

// Parse is one stored derivation, AUTO-formatted.
type Parse struct {
	SentenceID string
	Rank       int
	Score      float64
	Auto       string
}

var idGen = struct {
	sync.Mutex
	entropy *ulid.MonotonicEntropy
}{entropy: ulid.Monotonic(rand.Reader, 0)}

// NewID returns a fresh sortable sentence id.
func NewID() string {
	idGen.Lock()
	defer idGen.Unlock()
	return ulid.MustNew(ulid.Now(), idGen.entropy).String()
}
