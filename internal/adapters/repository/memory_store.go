package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

var _ domain.DocumentStore = (*InMemoryStore)(nil)

type InMemoryStore struct {
	docs map[string][]byte

	mu sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		docs: make(map[string][]byte),
	}
}

func memoryKey(owner, key string) string {
	return owner + "\x00" + key
}

func (s *InMemoryStore) Get(ctx context.Context, owner, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.docs[memoryKey(owner, key)]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *InMemoryStore) Put(ctx context.Context, owner, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.docs[memoryKey(owner, key)] = stored
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, owner, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, memoryKey(owner, key))
	return nil
}
