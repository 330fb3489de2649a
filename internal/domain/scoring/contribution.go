// Package scoring computes contribution and hotness scores from raw
// behavioral counters. All formulas are pure; weights are named
// configuration so they can be tuned without touching call sites.
package scoring

import (
	"time"

	"github.com/okian/agora/internal/domain/types"
)

// Default contribution weights. The three dimension weights sum to 1.
const (
	defaultTopicQualityWeight = 0.4
	defaultInteractionWeight  = 0.3
	defaultHelpOthersWeight   = 0.3
)

// Per-counter factors inside each dimension.
const (
	likeFactor            = 2.0
	favoriteFactor        = 3.0
	commentFactor         = 1.0
	viewFactor            = 0.1
	commentGivenFactor    = 2.0
	likeGivenFactor       = 1.0
	quickReplyFactor      = 5.0
	supplyMatchFactor     = 10.0
	demandMatchFactor     = 5.0
	commentLikeRecvFactor = 3.0
)

// QuickReplyWindow bounds how soon after an item's creation a comment still
// counts as a quick reply.
const QuickReplyWindow = 24 * time.Hour

// ContributionCounters are the aggregated raw counters for one subject
// within a time window. They are owned by the upstream store; this package
// only reads them.
type ContributionCounters struct {
	// Received on the subject's own items.
	Likes     int
	Favorites int
	Comments  int
	Views     int

	// Given by the subject to others. QuickReplies is the subset of
	// CommentsGiven authored within QuickReplyWindow of the target item's
	// creation; it feeds the interaction dimension only.
	CommentsGiven int
	LikesGiven    int
	QuickReplies  int

	// Help provided to others.
	SupplyMatches        int
	DemandMatches        int
	CommentLikesReceived int
}

// ContributionWeights holds the per-dimension weights of the total score.
type ContributionWeights struct {
	TopicQuality float64
	Interaction  float64
	HelpOthers   float64
}

// ContributionCalculator maps counters to a ScoreBreakdown.
type ContributionCalculator struct {
	weights ContributionWeights
}

// ContributionOption applies a configuration option to the calculator.
type ContributionOption func(*ContributionCalculator)

// WithContributionWeights overrides the dimension weights. Non-positive
// weights are ignored and keep their defaults.
func WithContributionWeights(w ContributionWeights) ContributionOption {
	return func(c *ContributionCalculator) {
		if w.TopicQuality > 0 {
			c.weights.TopicQuality = w.TopicQuality
		}
		if w.Interaction > 0 {
			c.weights.Interaction = w.Interaction
		}
		if w.HelpOthers > 0 {
			c.weights.HelpOthers = w.HelpOthers
		}
	}
}

// NewContributionCalculator creates a calculator with default weights.
func NewContributionCalculator(opts ...ContributionOption) *ContributionCalculator {
	c := &ContributionCalculator{
		weights: ContributionWeights{
			TopicQuality: defaultTopicQualityWeight,
			Interaction:  defaultInteractionWeight,
			HelpOthers:   defaultHelpOthersWeight,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Weights returns the active dimension weights.
func (c *ContributionCalculator) Weights() ContributionWeights {
	return c.weights
}

// Breakdown computes all dimension scores and their total for one subject.
// Total is the single place the weighted sum is produced.
func (c *ContributionCalculator) Breakdown(in ContributionCounters) types.ScoreBreakdown {
	topicQuality := c.weights.TopicQuality * (float64(in.Likes)*likeFactor +
		float64(in.Favorites)*favoriteFactor +
		float64(in.Comments)*commentFactor +
		float64(in.Views)*viewFactor)

	interaction := c.weights.Interaction * (float64(in.CommentsGiven)*commentGivenFactor +
		float64(in.LikesGiven)*likeGivenFactor +
		float64(in.QuickReplies)*quickReplyFactor)

	helpOthers := c.weights.HelpOthers * (float64(in.SupplyMatches)*supplyMatchFactor +
		float64(in.DemandMatches)*demandMatchFactor +
		float64(in.CommentLikesReceived)*commentLikeRecvFactor)

	return types.ScoreBreakdown{
		TopicQuality: topicQuality,
		Interaction:  interaction,
		HelpOthers:   helpOthers,
		Total:        topicQuality + interaction + helpOthers,
	}
}

// IsQuickReply reports whether a comment authored at commentedAt counts as a
// quick reply to an item created at itemCreatedAt.
func IsQuickReply(itemCreatedAt, commentedAt time.Time) bool {
	if commentedAt.Before(itemCreatedAt) {
		return false
	}
	return commentedAt.Sub(itemCreatedAt) <= QuickReplyWindow
}
