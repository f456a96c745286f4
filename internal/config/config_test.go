package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func validConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Mode:          SourceModeHTTP,
			BaseURL:       "http://localhost:8081/data",
			RatePerSecond: 20,
			RateBurst:     10,
		},
		Cache: CacheConfig{
			MaxAttempts: 3,
			BaseBackoff: 250 * time.Millisecond,
		},
		Trigger: TriggerConfig{
			PrefetchRadius:  1,
			WarmConcurrency: 4,
		},
		Auth: AuthConfig{
			MaintainerSecret: testSecret,
			Issuer:           "zmna-editor",
		},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	require.NoError(t, validConfig().Validate())
}

func TestValidate_ShortSecret(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Auth.MaintainerSecret = "short"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maintainer_secret")
}

func TestValidate_SourceModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad base url",
			mutate:  func(c *Config) { c.Source.BaseURL = "not a url" },
			wantErr: "base_url",
		},
		{
			name: "dir mode without data_dir",
			mutate: func(c *Config) {
				c.Source.Mode = SourceModeDir
				c.Source.DataDir = ""
			},
			wantErr: "data_dir",
		},
		{
			name: "postgres mode without dsn",
			mutate: func(c *Config) {
				c.Source.Mode = SourceModePostgres
			},
			wantErr: "database.dsn",
		},
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Source.Mode = "ftp" },
			wantErr: "unknown mode",
		},
		{
			name:    "zero rate",
			mutate:  func(c *Config) { c.Source.RatePerSecond = 0 },
			wantErr: "rate_per_second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_CacheAndTrigger(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Cache.MaxAttempts = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Cache.BaseBackoff = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Trigger.PrefetchRadius = -1
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Trigger.WarmConcurrency = 0
	assert.Error(t, cfg.Validate())
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("AUTH_MAINTAINER_SECRET", testSecret)
	t.Setenv("SOURCE_MODE", "http")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, SourceModeHTTP, cfg.Source.Mode)
	assert.Equal(t, 3, cfg.Cache.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Cache.BaseBackoff)
	assert.True(t, cfg.Trigger.BeaconsEnabled)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	require.Error(t, err)
}
