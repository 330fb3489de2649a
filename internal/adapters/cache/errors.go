package cache

import "errors"

// Sentinel kinds for cache access.
var (
	// ErrMiss means the key is absent or its entry expired.
	ErrMiss = errors.New("cache miss")
	// ErrUnavailable means the cache backend cannot be reached; callers
	// degrade to an uncached fresh computation.
	ErrUnavailable = errors.New("cache unavailable")
)
