package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process session store for single-node deployments
// and tests. Expired sessions are evicted lazily on Get and periodically
// by the janitor.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	cp := *s
	m.mu.Lock()
	m.sessions[s.Token] = &cp
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if s.Expired(time.Now()) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return nil, nil
	}

	cp := *s
	return &cp, nil
}

func (m *MemoryStore) Touch(_ context.Context, token string, expiresAt time.Time) error {
	m.mu.Lock()
	if s, ok := m.sessions[token]; ok {
		s.ExpiresAt = expiresAt
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

// StartJanitor sweeps expired sessions every interval until ctx is done.
func (m *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				m.sweep(now)
			}
		}
	}()
}

func (m *MemoryStore) sweep(now time.Time) {
	m.mu.Lock()
	for token, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, token)
		}
	}
	m.mu.Unlock()
}
