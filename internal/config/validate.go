package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.MaintainerSecret) < 32 {
		return fmt.Errorf("auth.maintainer_secret must be at least 32 characters (got %d)", len(c.Auth.MaintainerSecret))
	}

	if err := c.Source.validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Trigger.validate(); err != nil {
		return fmt.Errorf("trigger: %w", err)
	}

	if c.Source.Mode == SourceModePostgres && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required when source.mode is %q", SourceModePostgres)
	}

	return nil
}

func (s *SourceConfig) validate() error {
	switch s.Mode {
	case SourceModeHTTP:
		u, err := url.Parse(s.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base_url must be an absolute URL (got %q)", s.BaseURL)
		}
	case SourceModeDir:
		if s.DataDir == "" {
			return fmt.Errorf("data_dir is required for mode %q", SourceModeDir)
		}
	case SourceModePostgres:
		// DSN presence is checked at the top level.
	default:
		return fmt.Errorf("unknown mode %q", s.Mode)
	}

	if s.RatePerSecond <= 0 {
		return fmt.Errorf("rate_per_second must be > 0 (got %v)", s.RatePerSecond)
	}
	if s.RateBurst <= 0 {
		return fmt.Errorf("rate_burst must be > 0 (got %d)", s.RateBurst)
	}
	return nil
}

func (c *CacheConfig) validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1 (got %d)", c.MaxAttempts)
	}
	if c.BaseBackoff <= 0 {
		return fmt.Errorf("base_backoff must be > 0 (got %v)", c.BaseBackoff)
	}
	return nil
}

func (t *TriggerConfig) validate() error {
	if t.PrefetchRadius < 0 {
		return fmt.Errorf("prefetch_radius must be >= 0 (got %d)", t.PrefetchRadius)
	}
	if t.WarmConcurrency < 1 {
		return fmt.Errorf("warm_concurrency must be >= 1 (got %d)", t.WarmConcurrency)
	}
	return nil
}
