package types

import "errors"

// Sentinel kinds for request validation. Callers reject a request with these
// before any aggregation work begins.
var (
	ErrInvalidScoreType = errors.New("invalid score type")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrInvalidMatchType = errors.New("invalid match type")
	ErrInvalidPage      = errors.New("invalid page")
)
