// Package types contains common types used across the application.
package types

import (
	"strings"
	"time"
)

// ScoreType selects the contribution dimension a ranking is ordered by.
type ScoreType string

// Supported score types.
const (
	ScoreContribution ScoreType = "contribution"
	ScoreTopicQuality ScoreType = "topic_quality"
	ScoreInteraction  ScoreType = "interaction"
	ScoreHelpOthers   ScoreType = "help_others"
)

// ParseScoreType validates and normalizes a score type string.
func ParseScoreType(s string) (ScoreType, error) {
	switch ScoreType(strings.ToLower(strings.TrimSpace(s))) {
	case ScoreContribution:
		return ScoreContribution, nil
	case ScoreTopicQuality:
		return ScoreTopicQuality, nil
	case ScoreInteraction:
		return ScoreInteraction, nil
	case ScoreHelpOthers:
		return ScoreHelpOthers, nil
	}
	return "", ErrInvalidScoreType
}

// Period selects the aggregation time window of a ranking.
type Period string

// Supported periods.
const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodTotal Period = "total"
)

// ParsePeriod validates and normalizes a period string.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	case PeriodTotal:
		return PeriodTotal, nil
	}
	return "", ErrInvalidPeriod
}

// MatchType selects the similarity dimension a match listing is ordered by.
type MatchType string

// Supported match types.
const (
	MatchComprehensive MatchType = "comprehensive"
	MatchProfile       MatchType = "profile"
	MatchBehavior      MatchType = "behavior"
)

// ParseMatchType validates and normalizes a match type string.
func ParseMatchType(s string) (MatchType, error) {
	switch MatchType(strings.ToLower(strings.TrimSpace(s))) {
	case MatchComprehensive:
		return MatchComprehensive, nil
	case MatchProfile:
		return MatchProfile, nil
	case MatchBehavior:
		return MatchBehavior, nil
	}
	return "", ErrInvalidMatchType
}

// ScoreBreakdown carries the contribution dimension scores for one subject.
// Total always equals the sum of the three dimensions; it is computed once
// by the calculator and never recomputed elsewhere.
type ScoreBreakdown struct {
	TopicQuality float64 `json:"topic_quality"`
	Interaction  float64 `json:"interaction"`
	HelpOthers   float64 `json:"help_others"`
	Total        float64 `json:"total"`
}

// Dimension returns the score selected by t.
func (b ScoreBreakdown) Dimension(t ScoreType) float64 {
	switch t {
	case ScoreTopicQuality:
		return b.TopicQuality
	case ScoreInteraction:
		return b.Interaction
	case ScoreHelpOthers:
		return b.HelpOthers
	default:
		return b.Total
	}
}

// RankedEntry is one row of an assembled ranking.
type RankedEntry struct {
	Rank      int            `json:"rank"`
	SubjectID string         `json:"subject_id"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	// RankDelta is the movement versus the previous snapshot; positive means
	// the subject moved up, zero for unchanged or new entrants.
	RankDelta int `json:"rank_delta"`
}

// RankingPage is the response shape of a ranking read.
type RankingPage struct {
	Rankings    []RankedEntry `json:"rankings"`
	Total       int           `json:"total"`
	HasMore     bool          `json:"has_more"`
	CurrentPage int           `json:"current_page"`
	MyRanking   *RankedEntry  `json:"my_ranking,omitempty"`
	UpdateTime  time.Time     `json:"update_time"`
}

// RewardTier maps a rank threshold to a badge and title for presentation.
type RewardTier struct {
	RankThreshold int    `json:"rank_threshold"`
	Badge         string `json:"badge"`
	Title         string `json:"title"`
}

// SimilarityBreakdown carries the per-dimension similarity scores (0-100).
type SimilarityBreakdown struct {
	Profile       float64 `json:"profile"`
	Behavior      float64 `json:"behavior"`
	Comprehensive float64 `json:"comprehensive"`
}

// Dimension returns the similarity selected by t.
func (b SimilarityBreakdown) Dimension(t MatchType) float64 {
	switch t {
	case MatchProfile:
		return b.Profile
	case MatchBehavior:
		return b.Behavior
	default:
		return b.Comprehensive
	}
}

// CommonGround summarizes what a pair of subjects shares, for presentation.
type CommonGround struct {
	Topics    int `json:"topics"`
	Followers int `json:"followers"`
	Interests int `json:"interests"`
}

// MatchCandidate is one recommended subject with its similarity scores.
type MatchCandidate struct {
	SubjectID    string              `json:"subject_id"`
	Breakdown    SimilarityBreakdown `json:"breakdown"`
	MatchScore   float64             `json:"match_score"`
	Reasons      []string            `json:"reasons"`
	CommonGround CommonGround        `json:"common_ground"`
}

// MatchPage is the response shape of a matching read.
type MatchPage struct {
	Matches      []MatchCandidate `json:"matches"`
	HasMore      bool             `json:"has_more"`
	AverageScore float64          `json:"average_score"`
}

// SuggestionGroup is a named cluster of candidates sharing an interest tag.
type SuggestionGroup struct {
	Name    string           `json:"name"`
	Tag     string           `json:"tag"`
	Members []MatchCandidate `json:"members"`
}
