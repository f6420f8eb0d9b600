package binstore

import (
	"context"
	"sync"
)

// MemStore is an in-process Store used by tests and local development.
type MemStore struct {
	mu   sync.RWMutex
	bins map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{bins: make(map[string][]byte)}
}

func (s *MemStore) ReadBin(_ context.Context, binID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.bins[binID]
	if !ok {
		return []byte(`{}`), nil
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, nil
}

func (s *MemStore) WriteBin(_ context.Context, binID string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(doc))
	copy(stored, doc)
	s.bins[binID] = stored
	return nil
}

// Seed preloads a bin document, for tests.
func (s *MemStore) Seed(binID string, doc []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bins[binID] = doc
}
