package scoring

import "math"

// Hotness formula constants (gravity-style time decay).
const (
	hotViewFactor     = 1.0
	hotLikeFactor     = 2.0
	hotCommentFactor  = 3.0
	hotBookmarkFactor = 2.0
	hotGravity        = 1.8
	hotAgePad         = 2.0
	hotPointsOffset   = 1.0
)

// DefaultEpsilon is the write-skip threshold for hotness recomputes.
// Deltas below it are treated as unchanged to avoid redundant writes.
const DefaultEpsilon = 0.0001

// HotnessCounters are the engagement counters of one content item.
type HotnessCounters struct {
	Views     int
	Likes     int
	Comments  int
	Bookmarks int
}

// Points returns the raw engagement points before decay.
func (h HotnessCounters) Points() float64 {
	return float64(h.Views)*hotViewFactor +
		float64(h.Likes)*hotLikeFactor +
		float64(h.Comments)*hotCommentFactor +
		float64(h.Bookmarks)*hotBookmarkFactor
}

// Hotness computes the time-decayed score for an item with the given
// engagement counters and age in hours. Recent items dominate; the decay
// exponent keeps stale content from lingering at the top.
func Hotness(in HotnessCounters, ageHours float64) float64 {
	if ageHours < 0 {
		ageHours = 0
	}
	return (in.Points() - hotPointsOffset) / math.Pow(ageHours+hotAgePad, hotGravity)
}

// NeedsUpdate reports whether the recomputed hotness differs enough from the
// stored one to justify a write.
func NeedsUpdate(oldScore, newScore, epsilon float64) bool {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return math.Abs(newScore-oldScore) >= epsilon
}
