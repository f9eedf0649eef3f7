package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shikano35/kuhi-api-mcp-server/internal/resource"
)

// Environment variables recognized by Load. Environment values override the
// configuration file.
const (
	EnvBaseURL    = "KUHI_API_BASE_URL"
	EnvLogLevel   = "KUHI_MCP_LOG_LEVEL"
	EnvLogFormat  = "KUHI_MCP_LOG_FORMAT"
	EnvHTTPAddr   = "KUHI_MCP_HTTP_ADDR"
	EnvConfigPath = "KUHI_MCP_CONFIG"
)

// Config is the complete server configuration.
type Config struct {
	// BaseURL is the upstream haiku-monument API root.
	BaseURL string `yaml:"base_url"`

	// HTTPAddr switches the MCP transport from stdio to Streamable HTTP
	// when non-empty.
	HTTPAddr string `yaml:"http_addr"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Upstream client tuning
	RequestTimeout    time.Duration `yaml:"-"`
	RequestTimeoutRaw string        `yaml:"request_timeout"`
	RequestsPerSecond int           `yaml:"requests_per_second"`

	Cache  CacheConfig  `yaml:"cache"`
	Retry  RetryConfig  `yaml:"retry"`
	Health HealthConfig `yaml:"health"`
}

// CacheConfig holds response cache bounds.
type CacheConfig struct {
	TTL      time.Duration `yaml:"-"`
	TTLRaw   string        `yaml:"ttl"`
	MaxBytes int64         `yaml:"max_bytes"`
}

// RetryConfig holds the retry policy knobs.
type RetryConfig struct {
	MaxAttempts  int           `yaml:"max_attempts"`
	BaseDelay    time.Duration `yaml:"-"`
	BaseDelayRaw string        `yaml:"base_delay"`
	MaxDelay     time.Duration `yaml:"-"`
	MaxDelayRaw  string        `yaml:"max_delay"`
}

// HealthConfig holds the background health checker interval.
type HealthConfig struct {
	Interval    time.Duration `yaml:"-"`
	IntervalRaw string        `yaml:"interval"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	return &Config{
		BaseURL:   resource.DefaultBaseURL,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load builds the configuration in three layers: defaults, then the
// optional YAML file named by KUHI_MCP_CONFIG, then environment overrides.
// Environment variables in the file in the form ${VAR_NAME} are expanded
// before parsing.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigPath); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.parseDurations(); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		c.HTTPAddr = v
	}
}

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable
// values. Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

func (c *Config) parseDurations() error {
	var err error

	if c.RequestTimeoutRaw != "" {
		c.RequestTimeout, err = time.ParseDuration(c.RequestTimeoutRaw)
		if err != nil {
			return fmt.Errorf("request_timeout %q: %w", c.RequestTimeoutRaw, err)
		}
	}

	if c.Cache.TTLRaw != "" {
		c.Cache.TTL, err = time.ParseDuration(c.Cache.TTLRaw)
		if err != nil {
			return fmt.Errorf("cache.ttl %q: %w", c.Cache.TTLRaw, err)
		}
	}

	if c.Retry.BaseDelayRaw != "" {
		c.Retry.BaseDelay, err = time.ParseDuration(c.Retry.BaseDelayRaw)
		if err != nil {
			return fmt.Errorf("retry.base_delay %q: %w", c.Retry.BaseDelayRaw, err)
		}
	}

	if c.Retry.MaxDelayRaw != "" {
		c.Retry.MaxDelay, err = time.ParseDuration(c.Retry.MaxDelayRaw)
		if err != nil {
			return fmt.Errorf("retry.max_delay %q: %w", c.Retry.MaxDelayRaw, err)
		}
	}

	if c.Health.IntervalRaw != "" {
		c.Health.Interval, err = time.ParseDuration(c.Health.IntervalRaw)
		if err != nil {
			return fmt.Errorf("health.interval %q: %w", c.Health.IntervalRaw, err)
		}
	}

	return nil
}

// Validate checks that the configuration is usable. Returns an error
// describing the first problem encountered.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q is not one of text, json", c.LogFormat)
	}

	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative, got %d", c.RequestsPerSecond)
	}

	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry.max_attempts must not be negative, got %d", c.Retry.MaxAttempts)
	}

	return nil
}

// SlogLevel maps the configured log level onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
