package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/sweetshop-backend/pkg/config"
	redislib "github.com/redis/go-redis/v9"
)

// memoryStore keeps sessions in process for deployments without Redis.
// Expired entries are dropped lazily on read.
type memoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryManager returns a Manager that keeps sessions in process memory.
// Sessions do not survive a restart and are not shared between replicas.
func NewMemoryManager(cfg config.JWTConfig) (*Manager, error) {
	ttl := cfg.AccessTokenTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("access token ttl must be positive")
	}
	store := &memoryStore{now: time.Now, entries: map[string]memoryEntry{}}
	return &Manager{store: store, keyer: store, ttl: ttl}, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: fmt.Sprint(value), expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return "", redislib.Nil
	}
	if !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return "", redislib.Nil
	}
	return entry.value, nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

func (m *memoryStore) AccessSessionKey(accessID string) string {
	return "session:access:" + accessID
}
