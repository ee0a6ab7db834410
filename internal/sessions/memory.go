package sessions

import (
	"context"
	"sync"
	"time"
)

type memorySession struct {
	userID    uint
	expiresAt time.Time
}

// MemoryStore хранилище сессий в памяти процесса. Используется когда redis
// не сконфигурирован; сессии живут до рестарта процесса.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
	}
}

func (m *MemoryStore) Create(_ context.Context, userID uint) (string, error) {
	token, tokenErr := generateToken()
	if tokenErr != nil {
		return "", tokenErr
	}
	m.mu.Lock()
	m.sessions[token] = memorySession{
		userID:    userID,
		expiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Unlock()
	return token, nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (uint, error) {
	m.mu.RLock()
	session, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok || time.Now().After(session.expiresAt) {
		return 0, ErrSessionNotFound
	}
	return session.userID, nil
}

func (m *MemoryStore) Destroy(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) TTL() time.Duration {
	return m.ttl
}
