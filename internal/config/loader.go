package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if AGORA_CONFIG is set
//  3. env (prefix AGORA_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("AGORA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: AGORA_ADDR, AGORA_CACHE_TTL_SECONDS, ...
	// Map env keys like AGORA_MAX_PAGE_SIZE -> max_page_size (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("AGORA_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "agora_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.DefaultPageSize <= 0 {
		return fmt.Errorf("%w: default_page_size must be positive", ErrInvalidConfig)
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		return fmt.Errorf("%w: max_page_size must be >= default_page_size", ErrInvalidConfig)
	}
	if cfg.DecayBatchSize <= 0 {
		return fmt.Errorf("%w: decay_batch_size must be positive", ErrInvalidConfig)
	}
	return nil
}
