package cache

import (
	"context"
	"sync"
	"time"

	"github.com/okian/agora/pkg/metrics"
)

// Memory implements Store with a mutex-protected map and an injected clock.
// It is constructed once per process and passed by reference; there is no
// package-level cache state.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time
}

// Option applies a configuration option to the Memory cache.
type Option func(*Memory)

// WithTTL sets the default entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Memory) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithClock injects the time source, used by tests to step past expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory creates an in-memory cache.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		entries: make(map[string]Entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the entry for key. An entry strictly past ComputedAt+TTL is
// deleted and reported as a miss.
func (m *Memory) Get(ctx context.Context, key string) (Entry, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		metrics.RecordCacheMiss()
		return Entry{}, ErrMiss
	}
	if m.now().After(e.ComputedAt.Add(e.TTL)) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry.
		if cur, still := m.entries[key]; still && cur.ComputedAt.Equal(e.ComputedAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		metrics.RecordCacheMiss()
		metrics.RecordCacheEviction()
		return Entry{}, ErrMiss
	}

	metrics.RecordCacheHit()
	return e, nil
}

// Set stores payload under key.
func (m *Memory) Set(ctx context.Context, key string, payload any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.ttl
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = Entry{
		Key:        key,
		Payload:    payload,
		ComputedAt: m.now(),
		TTL:        ttl,
	}
	return nil
}

// Delete drops key if present.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Len returns the number of live entries, expired ones included until their
// next Get.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
