// Package cache defines the key-value cache contract used to memoize
// assembled ranking and matching payloads, plus an in-memory implementation
// with strict TTL expiry.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/agora/internal/domain/types"
)

// DefaultTTL bounds how long a memoized payload may be served.
const DefaultTTL = 300 * time.Second

// Entry is one cached payload. Entries are read-only past expiry; an
// expired entry is discarded, never served stale.
type Entry struct {
	Key        string
	Payload    any
	ComputedAt time.Time
	TTL        time.Duration
}

// Store is the cache contract. Implementations backed by out-of-process
// caches may fail; callers treat any non-ErrMiss error as ErrUnavailable
// and degrade to a fresh computation.
type Store interface {
	// Get returns the entry for key, ErrMiss when absent or expired.
	Get(ctx context.Context, key string) (Entry, error)

	// Set stores payload under key; ttl <= 0 uses the store default.
	Set(ctx context.Context, key string, payload any, ttl time.Duration) error

	// Delete drops key if present.
	Delete(ctx context.Context, key string) error
}

// RankingKey builds the cache key of one ranking page.
func RankingKey(scoreType types.ScoreType, period types.Period, page int) string {
	return fmt.Sprintf("rankings:%s:%s:%d", scoreType, period, page)
}

// RankingSetKey identifies the full ranked set a single-flight computation
// guards; pages derive from it.
func RankingSetKey(scoreType types.ScoreType, period types.Period) string {
	return fmt.Sprintf("rankings:%s:%s", scoreType, period)
}

// MatchKey builds the cache key of one subject's full candidate list. The
// list is cached unfloored and unordered by request type; floors and sort
// dimensions apply at read time, so one key covers every match read and a
// refresh invalidates them all at once.
func MatchKey(viewerID string) string {
	return "matches:" + viewerID
}
