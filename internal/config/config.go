// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and env vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CacheTTLSeconds sets the ranking and match cache lifetime.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// DefaultPageSize and MaxPageSize bound paginated reads.
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`

	// MatchMinScore filters match results below this score.
	MatchMinScore float64 `koanf:"match_min_score"`

	// MatchMaxReasons caps the human-readable reasons per match.
	MatchMaxReasons int `koanf:"match_max_reasons"`

	// SuggestionGroupCap bounds members per suggestion group.
	SuggestionGroupCap int `koanf:"suggestion_group_cap"`

	// DecayBatchSize and DecayBatchDelayMS shape the hotness decay job.
	DecayBatchSize    int `koanf:"decay_batch_size"`
	DecayBatchDelayMS int `koanf:"decay_batch_delay_ms"`

	// DecayMinAgeHours skips content younger than this from decay runs.
	DecayMinAgeHours int `koanf:"decay_min_age_hours"`

	// DecayIntervalMinutes schedules periodic decay runs. Zero disables
	// the scheduler; runs can still be triggered over HTTP.
	DecayIntervalMinutes int `koanf:"decay_interval_minutes"`

	// ContributionWeights maps dimension names to their weights:
	// topic_quality, interaction, help_others.
	ContributionWeights map[string]float64 `koanf:"contribution_weights"`

	// MatchWeights maps similarity dimension names to their weights:
	// profile, behavior, comprehensive.
	MatchWeights map[string]float64 `koanf:"match_weights"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		CacheTTLSeconds:      300,
		DefaultPageSize:      20,
		MaxPageSize:          100,
		MatchMinScore:        50,
		MatchMaxReasons:      3,
		SuggestionGroupCap:   5,
		DecayBatchSize:       100,
		DecayBatchDelayMS:    500,
		DecayMinAgeHours:     0,
		DecayIntervalMinutes: 60,
		ContributionWeights: map[string]float64{
			"topic_quality": 0.4,
			"interaction":   0.3,
			"help_others":   0.3,
		},
		MatchWeights: map[string]float64{
			"profile":       0.30,
			"behavior":      0.40,
			"comprehensive": 0.30,
		},
	}
	return c
}
