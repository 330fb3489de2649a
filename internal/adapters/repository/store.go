// Package repository defines the aggregate-counter store contract and an
// in-memory implementation. The store is the system of record boundary:
// counters are owned by external collaborators, this layer only aggregates
// and maps them into explicit typed results.
package repository

import (
	"context"
	"time"

	"github.com/okian/agora/internal/domain/matching"
	"github.com/okian/agora/internal/domain/scoring"
	"github.com/okian/agora/internal/domain/window"
)

// ContributionStats is the per-subject aggregation result for one window.
// Fields are mapped at the aggregation boundary; nothing downstream ever
// touches a loosely-shaped query record.
type ContributionStats struct {
	SubjectID string
	Counters  scoring.ContributionCounters
}

// ContentItem is one content row with its engagement counters and the
// currently stored hotness.
type ContentItem struct {
	ID        string
	AuthorID  string
	CreatedAt time.Time
	Counters  scoring.HotnessCounters
	Hotness   float64
}

// Store provides read access to aggregate counters and the single
// persistence hook the decay job needs.
type Store interface {
	// ContributionStats aggregates counters per subject over win, grouped
	// by subject. Subjects with no activity in the window are omitted.
	ContributionStats(ctx context.Context, win window.TimeWindow) ([]ContributionStats, error)

	// Profile returns the matching-relevant view of one subject.
	// Returns ErrNotFound for unknown subjects.
	Profile(ctx context.Context, subjectID string) (matching.Profile, error)

	// Profiles returns the full candidate pool.
	Profiles(ctx context.Context) ([]matching.Profile, error)

	// ContentItems returns content at least minAge old; minAge <= 0 means
	// no age filter.
	ContentItems(ctx context.Context, minAge time.Duration) ([]ContentItem, error)

	// UpdateHotness persists a recomputed hotness for one item.
	// Returns ErrNotFound for unknown items.
	UpdateHotness(ctx context.Context, itemID string, hotness float64) error

	// Count returns the number of subjects with any recorded activity.
	Count(ctx context.Context) int
}
