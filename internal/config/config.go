package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Source   SourceConfig   `yaml:"source"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Trigger  TriggerConfig  `yaml:"trigger"`
	Auth     AuthConfig     `yaml:"auth"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimitPerMin int           `yaml:"rate_limit_per_min" env:"SERVER_RATE_LIMIT_PER_MIN" env-default:"300"`
}

// Source modes.
const (
	SourceModeHTTP     = "http"
	SourceModeDir      = "dir"
	SourceModePostgres = "postgres"
)

// SourceConfig selects where verb documents and the index come from:
// a static artifact origin over HTTP, a local directory of JSON files,
// or the content-maintainer PostgreSQL database.
type SourceConfig struct {
	Mode          string        `yaml:"mode"            env:"SOURCE_MODE"            env-default:"http"`
	BaseURL       string        `yaml:"base_url"        env:"SOURCE_BASE_URL"        env-default:"http://localhost:8081/data"`
	DataDir       string        `yaml:"data_dir"        env:"SOURCE_DATA_DIR"        env-default:"./data"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"   env:"SOURCE_FETCH_TIMEOUT"   env-default:"10s"`
	RatePerSecond float64       `yaml:"rate_per_second" env:"SOURCE_RATE_PER_SECOND" env-default:"20"`
	RateBurst     int           `yaml:"rate_burst"      env:"SOURCE_RATE_BURST"      env-default:"10"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only consulted
// when source.mode is "postgres".
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// CacheConfig holds verb-data cache retry settings.
type CacheConfig struct {
	MaxAttempts int           `yaml:"max_attempts" env:"CACHE_MAX_ATTEMPTS" env-default:"3"`
	BaseBackoff time.Duration `yaml:"base_backoff" env:"CACHE_BASE_BACKOFF" env-default:"250ms"`
}

// TriggerConfig holds visibility-trigger settings.
type TriggerConfig struct {
	// BeaconsEnabled gates the viewport-beacon endpoint. When false the
	// trigger degrades to eagerly warming every registered section.
	BeaconsEnabled  bool `yaml:"beacons_enabled"  env:"TRIGGER_BEACONS_ENABLED"  env-default:"true"`
	PrefetchRadius  int  `yaml:"prefetch_radius"  env:"TRIGGER_PREFETCH_RADIUS"  env-default:"1"`
	WarmConcurrency int  `yaml:"warm_concurrency" env:"TRIGGER_WARM_CONCURRENCY" env-default:"4"`
}

// AuthConfig holds maintainer-token settings. The tokens are issued to
// the external verb-editor tooling for the admin endpoints.
type AuthConfig struct {
	MaintainerSecret string        `yaml:"maintainer_secret" env:"AUTH_MAINTAINER_SECRET" env-required:"true"`
	Issuer           string        `yaml:"issuer"            env:"AUTH_ISSUER"            env-default:"zmna-editor"`
	TokenTTL         time.Duration `yaml:"token_ttl"         env:"AUTH_TOKEN_TTL"         env-default:"12h"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
