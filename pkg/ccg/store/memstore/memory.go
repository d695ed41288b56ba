// Package memstore is an in-memory store.Store for tests and
// ephemeral runs.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/poetaster-org/depccg/pkg/ccg/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu        sync.RWMutex
	sentences map[string]store.Sentence
	parses    map[string][]store.Parse
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		sentences: make(map[string]store.Sentence),
		parses:    make(map[string][]store.Parse),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveSentence inserts or replaces a sentence record.
func (s *Store) SaveSentence(ctx context.Context, sent store.Sentence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sent.Tokens = append([]string(nil), sent.Tokens...)
	s.sentences[sent.ID] = sent
	return nil
}

// GetSentence returns a sentence by id.
func (s *Store) GetSentence(ctx context.Context, id string) (store.Sentence, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sent, ok := s.sentences[id]
	return sent, ok, nil
}

// ListSentences returns sentences ordered by id, newest first.
func (s *Store) ListSentences(ctx context.Context, limit int) ([]store.Sentence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Sentence, 0, len(s.sentences))
	for _, sent := range s.sentences {
		out = append(out, sent)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SaveParses replaces the stored parses for a sentence.
func (s *Store) SaveParses(ctx context.Context, sentenceID string, parses []store.Parse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parses[sentenceID] = append([]store.Parse(nil), parses...)
	return nil
}

// ParsesFor returns the stored parses in rank order.
func (s *Store) ParsesFor(ctx context.Context, sentenceID string) ([]store.Parse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]store.Parse(nil), s.parses[sentenceID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}
