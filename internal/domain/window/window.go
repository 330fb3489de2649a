// Package window resolves ranking periods to concrete time windows.
package window

import (
	"time"

	"github.com/okian/agora/internal/domain/types"
)

// Window lengths for the bounded periods.
const (
	weekSpan  = 7 * 24 * time.Hour
	monthSpan = 30 * 24 * time.Hour
)

// TimeWindow is a half-open interval [Start, End). A zero Start means the
// window is unbounded on the left (the "total" period).
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Resolve maps a period to a concrete window anchored at now.
func Resolve(p types.Period, now time.Time) TimeWindow {
	switch p {
	case types.PeriodWeek:
		return TimeWindow{Start: now.Add(-weekSpan), End: now}
	case types.PeriodMonth:
		return TimeWindow{Start: now.Add(-monthSpan), End: now}
	default:
		return TimeWindow{End: now}
	}
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	return t.Before(w.End)
}

// Bounded reports whether the window has a left edge.
func (w TimeWindow) Bounded() bool {
	return !w.Start.IsZero()
}
