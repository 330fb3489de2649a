// Package matching computes pairwise similarity between subjects and turns
// it into ranked match recommendations with human-readable reasons.
package matching

import (
	"sort"

	"github.com/okian/agora/internal/domain/types"
)

// Default matching configuration. The dimension weights are a tuning
// surface separate from the contribution weights and sum to 1.
const (
	defaultProfileWeight       = 0.30
	defaultBehaviorWeight      = 0.40
	defaultComprehensiveWeight = 0.30
	defaultMinScore            = 50.0
	defaultMaxReasons          = 3
	// reasonFloor is the minimum sub-dimension score worth surfacing as a
	// reason to the user.
	reasonFloor = 40.0
)

// Profile is the matching-relevant view of one subject. All fields are
// aggregates owned by the upstream store.
type Profile struct {
	SubjectID    string
	ContentTypes map[string]int // histogram of published content types
	Categories   map[string]int // histogram of categories/topics posted in
	Interests    []string       // interest tags
	ActiveHours  [24]int        // activity counts by hour of day
	Followers    []string
	Following    []string
}

// Weights holds the per-dimension weights of the match score.
type Weights struct {
	Profile       float64
	Behavior      float64
	Comprehensive float64
}

// Engine computes match candidates for a viewer against a candidate pool.
type Engine struct {
	weights    Weights
	minScore   float64
	maxReasons int
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWeights overrides the dimension weights. Non-positive weights are
// ignored and keep their defaults.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		if w.Profile > 0 {
			e.weights.Profile = w.Profile
		}
		if w.Behavior > 0 {
			e.weights.Behavior = w.Behavior
		}
		if w.Comprehensive > 0 {
			e.weights.Comprehensive = w.Comprehensive
		}
	}
}

// WithMinScore sets the default match-score floor.
func WithMinScore(min float64) Option {
	return func(e *Engine) {
		if min > 0 {
			e.minScore = min
		}
	}
}

// WithMaxReasons caps the number of reasons attached to a candidate.
func WithMaxReasons(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxReasons = n
		}
	}
}

// NewEngine creates a matching engine with default configuration.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights: Weights{
			Profile:       defaultProfileWeight,
			Behavior:      defaultBehaviorWeight,
			Comprehensive: defaultComprehensiveWeight,
		},
		minScore:   defaultMinScore,
		maxReasons: defaultMaxReasons,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MinScore returns the configured default floor.
func (e *Engine) MinScore() float64 {
	return e.minScore
}

// subScore is one named sub-dimension measurement used to derive reasons.
type subScore struct {
	label string
	value float64
}

// Compare computes the full similarity breakdown between a viewer and one
// candidate.
func (e *Engine) Compare(viewer, candidate Profile) types.MatchCandidate {
	contentSim := histogramOverlap(viewer.ContentTypes, candidate.ContentTypes)
	categorySim := histogramOverlap(viewer.Categories, candidate.Categories)
	interestSim := jaccard(viewer.Interests, candidate.Interests)
	hourSim := hourOverlap(viewer.ActiveHours, candidate.ActiveHours)
	socialSim := jaccard(
		append(append([]string{}, viewer.Followers...), viewer.Following...),
		append(append([]string{}, candidate.Followers...), candidate.Following...),
	)

	breakdown := types.SimilarityBreakdown{
		Profile:       (contentSim + categorySim) / 2,
		Behavior:      interestSim,
		Comprehensive: (hourSim + socialSim) / 2,
	}
	score := e.weights.Profile*breakdown.Profile +
		e.weights.Behavior*breakdown.Behavior +
		e.weights.Comprehensive*breakdown.Comprehensive

	reasons := e.reasons([]subScore{
		{label: "shares your interests", value: interestSim},
		{label: "posts in the same topics", value: categorySim},
		{label: "publishes similar content", value: contentSim},
		{label: "active at the same hours", value: hourSim},
		{label: "overlapping social circle", value: socialSim},
	})

	return types.MatchCandidate{
		SubjectID:  candidate.SubjectID,
		Breakdown:  breakdown,
		MatchScore: score,
		Reasons:    reasons,
		CommonGround: types.CommonGround{
			Topics:    commonKeys(viewer.Categories, candidate.Categories),
			Followers: commonCount(viewer.Followers, candidate.Followers),
			Interests: commonCount(viewer.Interests, candidate.Interests),
		},
	}
}

// reasons picks the strongest sub-dimensions above the floor, best first.
func (e *Engine) reasons(subs []subScore) []string {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].value > subs[j].value
	})
	out := make([]string, 0, e.maxReasons)
	for _, s := range subs {
		if s.value < reasonFloor {
			break
		}
		out = append(out, s.label)
		if len(out) == e.maxReasons {
			break
		}
	}
	return out
}

// Match scores every candidate against the viewer and returns those at or
// above the floor, ordered by the dimension dim selects (the weighted match
// score for comprehensive). A subject is never matched against itself; ties
// order by ascending subject id. A zero minScore falls back to the engine's
// configured floor; a negative one disables the floor entirely so callers
// can memoize the unfiltered list.
func (e *Engine) Match(viewer Profile, candidates []Profile, dim types.MatchType, minScore float64) []types.MatchCandidate {
	switch {
	case minScore == 0:
		minScore = e.minScore
	case minScore < 0:
		minScore = 0
	}

	out := make([]types.MatchCandidate, 0, len(candidates))
	for _, cand := range candidates {
		if cand.SubjectID == viewer.SubjectID {
			continue
		}
		mc := e.Compare(viewer, cand)
		if mc.MatchScore < minScore {
			continue
		}
		out = append(out, mc)
	}

	SortBy(out, dim)
	return out
}

// SortBy orders matches descending by the dimension dim selects, ties by
// ascending subject id. Sorting is stable and reproducible for identical
// input.
func SortBy(matches []types.MatchCandidate, dim types.MatchType) {
	sort.SliceStable(matches, func(i, j int) bool {
		si, sj := sortKey(matches[i], dim), sortKey(matches[j], dim)
		if si != sj {
			return si > sj
		}
		return matches[i].SubjectID < matches[j].SubjectID
	})
}

// Floor returns the matches at or above minScore, preserving order.
func Floor(matches []types.MatchCandidate, minScore float64) []types.MatchCandidate {
	out := make([]types.MatchCandidate, 0, len(matches))
	for _, m := range matches {
		if m.MatchScore >= minScore {
			out = append(out, m)
		}
	}
	return out
}

func sortKey(mc types.MatchCandidate, dim types.MatchType) float64 {
	if dim == types.MatchComprehensive {
		return mc.MatchScore
	}
	return mc.Breakdown.Dimension(dim)
}

// AverageScore returns the mean match score of a candidate set, zero when
// empty.
func AverageScore(matches []types.MatchCandidate) float64 {
	if len(matches) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range matches {
		sum += m.MatchScore
	}
	return sum / float64(len(matches))
}
