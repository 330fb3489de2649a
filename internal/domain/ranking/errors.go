package ranking

import "errors"

// Sentinel kinds for ranking lookups.
var (
	// ErrSubjectNotRanked means the subject never appears in the computed
	// ranking, e.g. it sits below the activity floor.
	ErrSubjectNotRanked = errors.New("subject not ranked")
)
