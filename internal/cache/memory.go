package cache

import (
	"context"
	"sync"
	"time"
)

// janitorInterval период удаления истекших записей.
const janitorInterval = time.Minute

type memoryEntry struct {
	originalURL string
	expiresAt   time.Time
}

// Memory реализация Cache в памяти процесса. Используется когда redis
// не сконфигурирован, а также как замена redis в тестах.
//
// Количество ключей не ограничено: пространство коротких кодов ограничено
// размером хранилища, отдельная политика вытеснения не нужна.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	done    chan struct{}
	once    sync.Once
}

func NewMemory() *Memory {
	m := &Memory{
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
	}
	go m.janitor()
	return m
}

func (m *Memory) Get(_ context.Context, shortCode string) (string, error) {
	m.mu.RLock()
	entry, ok := m.entries[shortCode]
	m.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return "", ErrCacheMiss
	}
	return entry.originalURL, nil
}

func (m *Memory) Set(_ context.Context, shortCode string, originalURL string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m.mu.Lock()
	m.entries[shortCode] = memoryEntry{
		originalURL: originalURL,
		expiresAt:   time.Now().Add(ttl),
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Invalidate(_ context.Context, shortCode string) error {
	m.mu.Lock()
	delete(m.entries, shortCode)
	m.mu.Unlock()
	return nil
}

// Close останавливает фоновую очистку.
func (m *Memory) Close() {
	m.once.Do(func() {
		close(m.done)
	})
}

// janitor периодически удаляет истекшие записи. Без него истекшие ключи
// оставались бы в карте навсегда (Get их и так не отдаст).
func (m *Memory) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for code, entry := range m.entries {
				if now.After(entry.expiresAt) {
					delete(m.entries, code)
				}
			}
			m.mu.Unlock()
		}
	}
}
