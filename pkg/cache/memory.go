package cache

import (
	"context"
	"sync"
	"time"
)

type memoryConfig struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*memoryConfig)

// WithDefaultTTL sets the lifetime used for a zero TTL. Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(c *memoryConfig) {
		c.defaultTTL = d
	}
}

// WithCleanupInterval sets how often expired entries are purged.
// Zero disables the background purge. Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(c *memoryConfig) {
		c.cleanupInterval = d
	}
}

// WithMaxEntries bounds the number of entries. When full, the entry
// closest to expiry is dropped first. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(c *memoryConfig) {
		c.maxEntries = n
	}
}

type memoryEntry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e memoryEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is an in-process cache. Values are stored as is, so callers
// that mutate values should store copies.
type Memory[V any] struct {
	mu      sync.Mutex
	cfg     memoryConfig
	entries map[string]memoryEntry[V]
	done    chan struct{}
	closed  bool
}

// NewMemory creates a Memory cache.
//
//	c := cache.NewMemory[*params.Object](cache.WithDefaultTTL(30 * time.Minute))
//	defer c.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := memoryConfig{
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Memory[V]{
		cfg:     cfg,
		entries: make(map[string]memoryEntry[V]),
		done:    make(chan struct{}),
	}
	if cfg.cleanupInterval > 0 {
		go m.purgeLoop()
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	if m.closed {
		return zero, ErrClosed
	}
	e, ok := m.entries[key]
	if !ok {
		return zero, ErrNotFound
	}
	if e.expired(time.Now()) {
		delete(m.entries, key)
		return zero, ErrNotFound
	}
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	now := time.Now()
	if _, exists := m.entries[key]; !exists && m.cfg.maxEntries > 0 && len(m.entries) >= m.cfg.maxEntries {
		m.evict(now)
	}
	m.entries[key] = memoryEntry[V]{
		value:     value,
		expiresAt: expiry(now, ttl, m.cfg.defaultTTL),
	}
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.entries, key)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close stops the purge goroutine. It is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	return nil
}

func (m *Memory[V]) purgeLoop() {
	ticker := time.NewTicker(m.cfg.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.purge(now)
		}
	}
}

func (m *Memory[V]) purge(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, k)
		}
	}
}

// evict purges expired entries and, if still full, drops the entry
// closest to expiry. Entries without expiry go last. Caller holds the mutex.
func (m *Memory[V]) evict(now time.Time) {
	var (
		victim  string
		soonest time.Time
	)
	for k, e := range m.entries {
		switch {
		case e.expired(now):
			delete(m.entries, k)
		case victim == "":
			victim, soonest = k, e.expiresAt
		case e.expiresAt.IsZero():
		case soonest.IsZero() || e.expiresAt.Before(soonest):
			victim, soonest = k, e.expiresAt
		}
	}
	if len(m.entries) >= m.cfg.maxEntries {
		delete(m.entries, victim)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
