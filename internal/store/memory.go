package store

import (
	"context"
	"sync"
)

// MemoryDocumentRepo is an in-process DocumentRepo, used in tests and for
// throwaway sessions.
type MemoryDocumentRepo struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemoryDocumentRepo creates an empty in-memory repo.
func NewMemoryDocumentRepo() *MemoryDocumentRepo {
	return &MemoryDocumentRepo{docs: make(map[string][]byte)}
}

func (m *MemoryDocumentRepo) Load(_ context.Context, userID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[userID]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryDocumentRepo) Save(_ context.Context, userID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[userID] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryDocumentRepo) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, userID)
	return nil
}
