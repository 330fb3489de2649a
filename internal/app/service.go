// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/okian/agora/internal/adapters/cache"
	"github.com/okian/agora/internal/adapters/repository"
	"github.com/okian/agora/internal/batch/decay"
	"github.com/okian/agora/internal/domain/matching"
	"github.com/okian/agora/internal/domain/ranking"
	"github.com/okian/agora/internal/domain/scoring"
	"github.com/okian/agora/internal/domain/types"
	"github.com/okian/agora/internal/domain/window"
	"github.com/okian/agora/pkg/logger"
	"github.com/okian/agora/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultPageSize     = 20
	defaultMaxPageSize  = 100
	maxSuggestionInput  = 20
	defaultDecayBatch   = 100
	defaultDecayDelay   = 500 * time.Millisecond
	defaultSuggestGroup = 5
)

// rankedSet is the memoized full ranking of one (scoreType, period) pair.
type rankedSet struct {
	Entries    []types.RankedEntry
	ComputedAt time.Time
}

// rankedPage is one memoized page slice of a ranked set, served without
// touching the full set.
type rankedPage struct {
	Entries    []types.RankedEntry
	Total      int
	HasMore    bool
	ComputedAt time.Time
}

// matchSet is the memoized unfloored candidate list of one viewer.
type matchSet struct {
	Matches    []types.MatchCandidate
	ComputedAt time.Time
}

// Service implements the API dependencies for the community scoring engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	cache    cache.Store
	contrib  *scoring.ContributionCalculator
	matcher  *matching.Engine
	decayJob *decay.Job

	// flight collapses concurrent cache misses for the same key into a
	// single computation.
	flight singleflight.Group

	// prevRanks remembers the last assembled snapshot per set key, feeding
	// rank deltas of the next one.
	prevMu    sync.Mutex
	prevRanks map[string]map[string]int

	// Configuration
	cacheTTL            time.Duration
	defaultPageSize     int
	maxPageSize         int
	contributionWeights scoring.ContributionWeights
	matchWeights        matching.Weights
	matchMinScore       float64
	matchMaxReasons     int
	suggestionGroupCap  int
	decayBatchSize      int
	decayBatchDelay     time.Duration
	decayMinAge         time.Duration
	rewardTiers         []types.RewardTier

	// State
	started bool
	now     func() time.Time

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		prevRanks:          make(map[string]map[string]int),
		cacheTTL:           cache.DefaultTTL,
		defaultPageSize:    defaultPageSize,
		maxPageSize:        defaultMaxPageSize,
		suggestionGroupCap: defaultSuggestGroup,
		decayBatchSize:     defaultDecayBatch,
		decayBatchDelay:    defaultDecayDelay,
		rewardTiers:        defaultRewardTiers(),
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting community scoring service...")

	if s.store == nil {
		s.store = repository.NewMemStore()
		s.logger.Info(ctx, "using in-memory counter store")
	}
	if s.cache == nil {
		s.cache = cache.NewMemory(
			cache.WithTTL(s.cacheTTL),
			cache.WithClock(s.now),
		)
	}
	s.contrib = scoring.NewContributionCalculator(
		scoring.WithContributionWeights(s.contributionWeights),
	)
	s.matcher = matching.NewEngine(
		matching.WithWeights(s.matchWeights),
		matching.WithMinScore(s.matchMinScore),
		matching.WithMaxReasons(s.matchMaxReasons),
	)
	s.decayJob = decay.NewJob(s.store,
		decay.WithBatchSize(s.decayBatchSize),
		decay.WithBatchDelay(s.decayBatchDelay),
		decay.WithMinAge(s.decayMinAge),
		decay.WithClock(s.now),
		decay.WithLogger(s.logger.Named("decay")),
	)

	s.started = true
	s.logger.Info(ctx, "community scoring service started",
		logger.Int("defaultPageSize", s.defaultPageSize),
		logger.Int("decayBatchSize", s.decayBatchSize),
	)
	return nil
}

// Stop shuts the service down. All derived state is ephemeral, so there is
// nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "community scoring service stopped")
}

// Rankings serves one page of the ranking selected by q, including the
// viewer's own rank located on the full set.
func (s *Service) Rankings(ctx context.Context, q types.RankingQuery) (types.RankingPage, error) {
	if q.Page < 1 {
		return types.RankingPage{}, types.ErrInvalidPage
	}
	pageSize := s.clampPageSize(q.PageSize)

	// Page slices are memoized at the default size only; any other size
	// slices the full set.
	if pageSize == s.defaultPageSize {
		if pg, ok := s.cachedPage(ctx, q.ScoreType, q.Period, q.Page); ok {
			resp := types.RankingPage{
				Rankings:    pg.Entries,
				Total:       pg.Total,
				HasMore:     pg.HasMore,
				CurrentPage: q.Page,
				UpdateTime:  pg.ComputedAt,
			}
			if q.ViewerID != "" {
				set, err := s.rankedSet(ctx, q.ScoreType, q.Period)
				if err != nil {
					return types.RankingPage{}, err
				}
				if mine, err := ranking.Locate(set.Entries, q.ViewerID); err == nil {
					resp.MyRanking = &mine
				}
			}
			return resp, nil
		}
	}

	set, err := s.rankedSet(ctx, q.ScoreType, q.Period)
	if err != nil {
		return types.RankingPage{}, err
	}

	page, err := ranking.Slice(set.Entries, q.Page, pageSize)
	if err != nil {
		return types.RankingPage{}, err
	}

	resp := types.RankingPage{
		Rankings:    page.Entries,
		Total:       page.Total,
		HasMore:     page.HasMore,
		CurrentPage: q.Page,
		UpdateTime:  set.ComputedAt,
	}
	if q.ViewerID != "" {
		if mine, err := ranking.Locate(set.Entries, q.ViewerID); err == nil {
			resp.MyRanking = &mine
		}
		// ErrSubjectNotRanked leaves MyRanking empty; the viewer simply has
		// no activity in this window.
	}
	return resp, nil
}

// rankedSet returns the memoized full ranking for (scoreType, period),
// computing it at most once per cache epoch across concurrent callers.
func (s *Service) rankedSet(ctx context.Context, scoreType types.ScoreType, period types.Period) (rankedSet, error) {
	setKey := cache.RankingSetKey(scoreType, period)

	cacheable := true
	if ent, err := s.cache.Get(ctx, setKey); err == nil {
		if set, ok := ent.Payload.(rankedSet); ok {
			return set, nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		// Cache unavailable: serve a fresh uncached computation instead of
		// failing the request.
		cacheable = false
		metrics.RecordCacheDegraded()
		s.logger.Warn(ctx, "cache unavailable, computing fresh", logger.Error(degraded(err)))
	}

	v, err, shared := s.flight.Do(setKey, func() (interface{}, error) {
		return s.computeRankedSet(ctx, scoreType, period, setKey, cacheable)
	})
	if shared {
		metrics.RecordSingleflightShared()
	}
	if err != nil {
		return rankedSet{}, err
	}
	return v.(rankedSet), nil
}

// computeRankedSet aggregates, scores and assembles the full set, then
// caches it together with its page slices.
func (s *Service) computeRankedSet(ctx context.Context, scoreType types.ScoreType, period types.Period, setKey string, cacheable bool) (rankedSet, error) {
	start := s.now()
	win := window.Resolve(period, start)

	stats, err := s.store.ContributionStats(ctx, win)
	if err != nil {
		return rankedSet{}, fmt.Errorf("compute rankings: %w", err)
	}

	scored := make([]ranking.Scored, len(stats))
	for i, st := range stats {
		scored[i] = ranking.Scored{
			SubjectID: st.SubjectID,
			Breakdown: s.contrib.Breakdown(st.Counters),
		}
	}

	s.prevMu.Lock()
	prev := s.prevRanks[setKey]
	entries := ranking.Assemble(scored, scoreType, prev)
	s.prevRanks[setKey] = ranking.Ranks(entries)
	s.prevMu.Unlock()

	set := rankedSet{Entries: entries, ComputedAt: s.now()}
	if cacheable {
		if err := s.cache.Set(ctx, setKey, set, s.cacheTTL); err != nil {
			s.logger.Warn(ctx, "caching ranked set failed", logger.Error(err))
		}
		s.cachePages(ctx, scoreType, period, set)
	}

	metrics.RecordRankingCompute(s.now().Sub(start).Seconds())
	metrics.UpdateSubjectsTracked(len(entries))
	return set, nil
}

// cachedPage reads one memoized page slice. Any cache failure reports a
// miss; the caller falls back to the full-set path, which owns the degrade
// policy.
func (s *Service) cachedPage(ctx context.Context, scoreType types.ScoreType, period types.Period, page int) (rankedPage, bool) {
	ent, err := s.cache.Get(ctx, cache.RankingKey(scoreType, period, page))
	if err != nil {
		return rankedPage{}, false
	}
	pg, ok := ent.Payload.(rankedPage)
	return pg, ok
}

// cachePages stores every page slice of the set independently under its own
// key, at the service's default page size, so default-size reads never
// touch the full set.
func (s *Service) cachePages(ctx context.Context, scoreType types.ScoreType, period types.Period, set rankedSet) {
	for page := 1; (page-1)*s.defaultPageSize < len(set.Entries); page++ {
		slice, err := ranking.Slice(set.Entries, page, s.defaultPageSize)
		if err != nil {
			return
		}
		key := cache.RankingKey(scoreType, period, page)
		payload := rankedPage{
			Entries:    slice.Entries,
			Total:      slice.Total,
			HasMore:    slice.HasMore,
			ComputedAt: set.ComputedAt,
		}
		if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
			s.logger.Warn(ctx, "caching ranking page failed", logger.Error(err))
			return
		}
	}
}

// RewardTiers returns the static ordered reward ladder.
func (s *Service) RewardTiers() []types.RewardTier {
	tiers := make([]types.RewardTier, len(s.rewardTiers))
	copy(tiers, s.rewardTiers)
	return tiers
}

// Matches serves one page of match recommendations for the viewer.
func (s *Service) Matches(ctx context.Context, q types.MatchQuery) (types.MatchPage, error) {
	if q.Page < 1 {
		return types.MatchPage{}, types.ErrInvalidPage
	}
	pageSize := s.clampPageSize(q.PageSize)

	set, err := s.matchSet(ctx, q.ViewerID)
	if err != nil {
		return types.MatchPage{}, err
	}

	minScore := q.MinScore
	if minScore <= 0 {
		minScore = s.matcher.MinScore()
	}
	matches := matching.Floor(set.Matches, minScore)
	matching.SortBy(matches, q.Type)

	skip := (q.Page - 1) * pageSize
	end := skip + pageSize
	if skip > len(matches) {
		skip = len(matches)
	}
	if end > len(matches) {
		end = len(matches)
	}

	return types.MatchPage{
		Matches:      matches[skip:end],
		HasMore:      end < len(matches),
		AverageScore: matching.AverageScore(matches),
	}, nil
}

// matchSet returns the memoized unfloored candidate list for a viewer.
func (s *Service) matchSet(ctx context.Context, viewerID string) (matchSet, error) {
	key := cache.MatchKey(viewerID)

	cacheable := true
	if ent, err := s.cache.Get(ctx, key); err == nil {
		if set, ok := ent.Payload.(matchSet); ok {
			return set, nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		cacheable = false
		metrics.RecordCacheDegraded()
		s.logger.Warn(ctx, "cache unavailable, computing fresh", logger.Error(degraded(err)))
	}

	v, err, shared := s.flight.Do(key, func() (interface{}, error) {
		return s.computeMatchSet(ctx, viewerID, key, cacheable)
	})
	if shared {
		metrics.RecordSingleflightShared()
	}
	if err != nil {
		return matchSet{}, err
	}
	return v.(matchSet), nil
}

func (s *Service) computeMatchSet(ctx context.Context, viewerID, key string, cacheable bool) (matchSet, error) {
	start := s.now()

	viewer, err := s.store.Profile(ctx, viewerID)
	if err != nil {
		return matchSet{}, fmt.Errorf("load viewer profile: %w", err)
	}
	candidates, err := s.store.Profiles(ctx)
	if err != nil {
		return matchSet{}, fmt.Errorf("load candidate pool: %w", err)
	}

	// Negative floor keeps every candidate so one memoized list serves any
	// requested minScore.
	matches := s.matcher.Match(viewer, candidates, types.MatchComprehensive, -1)

	set := matchSet{Matches: matches, ComputedAt: s.now()}
	if cacheable {
		if err := s.cache.Set(ctx, key, set, s.cacheTTL); err != nil {
			s.logger.Warn(ctx, "caching match set failed", logger.Error(err))
		}
	}

	metrics.RecordMatchCompute(s.now().Sub(start).Seconds())
	return set, nil
}

// RefreshMatches drops the viewer's memoized candidate list so the next
// read recomputes from live counters. Acknowledgement only, no payload.
func (s *Service) RefreshMatches(ctx context.Context, viewerID string) error {
	if _, err := s.store.Profile(ctx, viewerID); err != nil {
		return fmt.Errorf("refresh matches: %w", err)
	}
	if err := s.cache.Delete(ctx, cache.MatchKey(viewerID)); err != nil {
		// Stale entries expire on their own; degrading to TTL expiry beats
		// failing the refresh.
		metrics.RecordCacheDegraded()
		s.logger.Warn(ctx, "match cache invalidation failed", logger.Error(degraded(err)))
	}
	return nil
}

// Suggestions clusters the viewer's best matches into named discovery
// groups keyed by shared interest tags.
func (s *Service) Suggestions(ctx context.Context, viewerID string) ([]types.SuggestionGroup, error) {
	viewer, err := s.store.Profile(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("load viewer profile: %w", err)
	}

	set, err := s.matchSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	matches := matching.Floor(set.Matches, s.matcher.MinScore())
	if len(matches) > maxSuggestionInput {
		matches = matches[:maxSuggestionInput]
	}

	candidates, err := s.store.Profiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}
	profiles := make(map[string]matching.Profile, len(candidates))
	for _, p := range candidates {
		profiles[p.SubjectID] = p
	}

	return s.matcher.Suggest(viewer, matches, profiles, s.suggestionGroupCap), nil
}

// RunDecay triggers one hotness decay run.
func (s *Service) RunDecay(ctx context.Context) (decay.Report, error) {
	s.mu.RLock()
	job := s.decayJob
	s.mu.RUnlock()

	if job == nil {
		return decay.Report{}, ErrNotStarted
	}
	return job.Run(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"defaultPageSize": s.defaultPageSize,
		"maxPageSize":     s.maxPageSize,
		"decayBatchSize":  s.decayBatchSize,
	}
	if s.started {
		subjects := s.store.Count(context.Background())
		stats["subjects"] = subjects
		metrics.UpdateSubjectsTracked(subjects)
		if mem, ok := s.cache.(*cache.Memory); ok {
			stats["cachedEntries"] = mem.Len()
		}
	}
	return stats
}

// degraded normalizes a backend failure to the cache unavailability kind
// before it reaches logs.
func degraded(err error) error {
	if errors.Is(err, cache.ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", cache.ErrUnavailable, err)
}

func (s *Service) clampPageSize(n int) int {
	if n < 1 {
		return s.defaultPageSize
	}
	if n > s.maxPageSize {
		return s.maxPageSize
	}
	return n
}

// defaultRewardTiers is the static reward ladder served by the rewards
// endpoint. Ordered best rank first.
func defaultRewardTiers() []types.RewardTier {
	return []types.RewardTier{
		{RankThreshold: 1, Badge: "gold", Title: "Community Star"},
		{RankThreshold: 3, Badge: "silver", Title: "Top Contributor"},
		{RankThreshold: 10, Badge: "bronze", Title: "Rising Voice"},
		{RankThreshold: 50, Badge: "sprout", Title: "Active Member"},
	}
}
