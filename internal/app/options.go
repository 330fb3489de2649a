package service

import (
	"time"

	"github.com/okian/agora/internal/adapters/cache"
	"github.com/okian/agora/internal/adapters/repository"
	"github.com/okian/agora/internal/domain/matching"
	"github.com/okian/agora/internal/domain/scoring"
	"github.com/okian/agora/internal/domain/types"
	"github.com/okian/agora/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects the aggregate-counter store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCache injects the page cache backend.
func WithCache(c cache.Store) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithClock injects the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCacheTTL sets the lifetime of memoized ranking and match payloads.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithPageSizes sets the default and maximum page sizes of list reads.
func WithPageSizes(def, max int) Option {
	return func(s *Service) {
		if def > 0 {
			s.defaultPageSize = def
		}
		if max >= def && max > 0 {
			s.maxPageSize = max
		}
	}
}

// WithContributionWeights overrides the contribution dimension weights.
func WithContributionWeights(w scoring.ContributionWeights) Option {
	return func(s *Service) {
		s.contributionWeights = w
	}
}

// WithMatchWeights overrides the matching dimension weights.
func WithMatchWeights(w matching.Weights) Option {
	return func(s *Service) {
		s.matchWeights = w
	}
}

// WithMatchMinScore sets the default match-score floor.
func WithMatchMinScore(min float64) Option {
	return func(s *Service) {
		if min > 0 {
			s.matchMinScore = min
		}
	}
}

// WithMatchMaxReasons caps the reasons attached to a match candidate.
func WithMatchMaxReasons(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.matchMaxReasons = n
		}
	}
}

// WithSuggestionGroupCap bounds the size of one suggestion cluster.
func WithSuggestionGroupCap(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.suggestionGroupCap = n
		}
	}
}

// WithDecayBatchSize bounds how many items one decay batch updates
// concurrently.
func WithDecayBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.decayBatchSize = n
		}
	}
}

// WithDecayBatchDelay sets the pause between decay batches.
func WithDecayBatchDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.decayBatchDelay = d
		}
	}
}

// WithDecayMinAge restricts decay runs to content at least this old.
func WithDecayMinAge(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.decayMinAge = d
		}
	}
}

// WithRewardTiers replaces the static reward ladder.
func WithRewardTiers(tiers []types.RewardTier) Option {
	return func(s *Service) {
		if len(tiers) > 0 {
			s.rewardTiers = tiers
		}
	}
}
