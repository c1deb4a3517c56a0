package session

import (
	"context"
	"sync"
)

// MemoryStore holds sessions in a process-local map. Used when
// SESSION_STORE=memory and by tests; state does not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Data
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Data),
	}
}

func (s *MemoryStore) Get(ctx context.Context, sid string) (Data, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.sessions[sid]
	return d, ok, nil
}

func (s *MemoryStore) Save(ctx context.Context, sid string, d Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = d
	return nil
}
