package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound = errors.New("subject not found")
	// ErrAggregation marks a failed aggregation query. It is transient and
	// surfaced generically to callers, never papered over with zero scores.
	ErrAggregation = errors.New("aggregation query failed")
)
