package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/agora/internal/domain/matching"
	"github.com/okian/agora/internal/domain/scoring"
	"github.com/okian/agora/internal/domain/window"
)

// engagement is one timestamped bundle of counter deltas for a subject.
type engagement struct {
	at       time.Time
	counters scoring.ContributionCounters
}

// MemStore implements Store in memory. It keeps raw timestamped counter
// deltas so window-filtered aggregation stays faithful to the relational
// upstream it stands in for.
type MemStore struct {
	mu          sync.RWMutex
	engagements map[string][]engagement
	profiles    map[string]matching.Profile
	content     map[string]ContentItem
	now         func() time.Time
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithClock injects the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		engagements: make(map[string][]engagement),
		profiles:    make(map[string]matching.Profile),
		content:     make(map[string]ContentItem),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordEngagement appends counter deltas for a subject at a point in time.
func (s *MemStore) RecordEngagement(subjectID string, at time.Time, c scoring.ContributionCounters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engagements[subjectID] = append(s.engagements[subjectID], engagement{at: at, counters: c})
}

// SetProfile stores or replaces a subject's matching profile.
func (s *MemStore) SetProfile(p matching.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.SubjectID] = p
}

// PutContent stores or replaces a content item.
func (s *MemStore) PutContent(item ContentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content[item.ID] = item
}

// ContributionStats aggregates counter deltas per subject over win.
func (s *MemStore) ContributionStats(ctx context.Context, win window.TimeWindow) ([]ContributionStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAggregation, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ContributionStats, 0, len(s.engagements))
	for id, events := range s.engagements {
		var sum scoring.ContributionCounters
		active := false
		for _, e := range events {
			if !win.Contains(e.at) {
				continue
			}
			active = true
			sum.Likes += e.counters.Likes
			sum.Favorites += e.counters.Favorites
			sum.Comments += e.counters.Comments
			sum.Views += e.counters.Views
			sum.CommentsGiven += e.counters.CommentsGiven
			sum.LikesGiven += e.counters.LikesGiven
			sum.QuickReplies += e.counters.QuickReplies
			sum.SupplyMatches += e.counters.SupplyMatches
			sum.DemandMatches += e.counters.DemandMatches
			sum.CommentLikesReceived += e.counters.CommentLikesReceived
		}
		if !active {
			continue
		}
		out = append(out, ContributionStats{SubjectID: id, Counters: sum})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubjectID < out[j].SubjectID })
	return out, nil
}

// Profile returns one subject's matching profile.
func (s *MemStore) Profile(ctx context.Context, subjectID string) (matching.Profile, error) {
	if err := ctx.Err(); err != nil {
		return matching.Profile{}, fmt.Errorf("%w: %w", ErrAggregation, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[subjectID]
	if !ok {
		return matching.Profile{}, ErrNotFound
	}
	return p, nil
}

// Profiles returns the full candidate pool ordered by subject id.
func (s *MemStore) Profiles(ctx context.Context) ([]matching.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAggregation, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]matching.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubjectID < out[j].SubjectID })
	return out, nil
}

// ContentItems returns items at least minAge old, ordered by id.
func (s *MemStore) ContentItems(ctx context.Context, minAge time.Duration) ([]ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAggregation, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.now().Add(-minAge)
	out := make([]ContentItem, 0, len(s.content))
	for _, item := range s.content {
		if minAge > 0 && item.CreatedAt.After(cutoff) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateHotness persists a recomputed hotness for one item.
func (s *MemStore) UpdateHotness(ctx context.Context, itemID string, hotness float64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("update hotness: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.content[itemID]
	if !ok {
		return ErrNotFound
	}
	item.Hotness = hotness
	s.content[itemID] = item
	return nil
}

// Count returns the number of subjects with recorded activity.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.engagements)
}
