package config

import (
	"embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const (
	EndpointJSON = "json"
	EndpointRSS  = "rss"
)

type Endpoint struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	URL  string `yaml:"url"`
}

type HTTPConfig struct {
	Timeout string `yaml:"timeout"`
	Retries int    `yaml:"retries"`
	Backoff string `yaml:"backoff"`
}

type SchedulerConfig struct {
	GenerationTime  string `yaml:"generation_time"`
	CleanupInterval string `yaml:"cleanup_interval"`
	RefreshInterval string `yaml:"refresh_interval"`
	HealthInterval  string `yaml:"health_interval"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai", "anthropic", "gemini" or empty for templates only
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

type EndpointsConfig struct {
	Wordle      []Endpoint `yaml:"wordle"`
	Connections []Endpoint `yaml:"connections"`
	Strands     []Endpoint `yaml:"strands"`
}

type Config struct {
	Port          string          `yaml:"port"`
	FrontendURL   string          `yaml:"frontend_url"`
	DataDir       string          `yaml:"data_dir"`
	DatabaseURL   string          `yaml:"database_url"`
	RedisURL      string          `yaml:"redis_url"`
	WebhookSecret string          `yaml:"webhook_secret"`
	CacheTTL      string          `yaml:"cache_ttl"`
	HTTP          HTTPConfig      `yaml:"http"`
	Scheduler     SchedulerConfig `yaml:"scheduler"`
	LLM           LLMConfig       `yaml:"llm"`
	Endpoints     EndpointsConfig `yaml:"endpoints"`
}

// Load reads the embedded defaults, overlays the YAML file at path (if any),
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.Port, "PORT")
	set(&cfg.FrontendURL, "FRONTEND_URL")
	set(&cfg.DataDir, "DATA_DIR")
	set(&cfg.DatabaseURL, "DATABASE_URL")
	set(&cfg.RedisURL, "REDIS_URL")
	set(&cfg.WebhookSecret, "WEBHOOK_SECRET")
	set(&cfg.CacheTTL, "CACHE_TTL")
	set(&cfg.HTTP.Timeout, "HTTP_TIMEOUT")
	set(&cfg.HTTP.Backoff, "HTTP_BACKOFF")
	set(&cfg.Scheduler.GenerationTime, "GENERATION_TIME")
	set(&cfg.Scheduler.CleanupInterval, "CLEANUP_INTERVAL")
	set(&cfg.Scheduler.RefreshInterval, "REFRESH_INTERVAL")
	set(&cfg.Scheduler.HealthInterval, "HEALTH_INTERVAL")
	set(&cfg.LLM.Provider, "LLM_PROVIDER")
	set(&cfg.LLM.Model, "LLM_MODEL")

	if v := getenv("HTTP_RETRIES"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("HTTP_RETRIES: not a number: %q", v)
		}
		cfg.HTTP.Retries = n
	}

	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = getenv("OPENAI_API_KEY")
		case "anthropic":
			cfg.LLM.APIKey = getenv("ANTHROPIC_API_KEY")
		case "gemini":
			cfg.LLM.APIKey = getenv("GEMINI_API_KEY")
		}
	}
	return nil
}

func (c *Config) Validate() error {
	durations := map[string]string{
		"cache_ttl":                  c.CacheTTL,
		"http.timeout":               c.HTTP.Timeout,
		"http.backoff":               c.HTTP.Backoff,
		"scheduler.cleanup_interval": c.Scheduler.CleanupInterval,
		"scheduler.refresh_interval": c.Scheduler.RefreshInterval,
		"scheduler.health_interval":  c.Scheduler.HealthInterval,
	}
	for name, value := range durations {
		d, err := ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s: must be positive, got %q", name, value)
		}
	}

	if _, _, err := ParseTimeOfDay(c.Scheduler.GenerationTime); err != nil {
		return fmt.Errorf("scheduler.generation_time: %w", err)
	}

	if c.HTTP.Retries < 1 {
		return fmt.Errorf("http.retries: must be at least 1, got %d", c.HTTP.Retries)
	}

	switch c.LLM.Provider {
	case "", "openai", "anthropic", "gemini":
	default:
		return fmt.Errorf("llm.provider: unknown provider %q (valid: openai, anthropic, gemini)", c.LLM.Provider)
	}

	for kind, list := range map[string][]Endpoint{
		"wordle":      c.Endpoints.Wordle,
		"connections": c.Endpoints.Connections,
		"strands":     c.Endpoints.Strands,
	} {
		for i, e := range list {
			if e.URL == "" {
				return fmt.Errorf("endpoints.%s[%d]: url is required", kind, i)
			}
			if e.Kind != EndpointJSON && e.Kind != EndpointRSS {
				return fmt.Errorf("endpoints.%s[%d]: unknown kind %q", kind, i, e.Kind)
			}
			if e.Kind == EndpointRSS && kind != "wordle" {
				return fmt.Errorf("endpoints.%s[%d]: rss is only supported for wordle", kind, i)
			}
		}
	}

	return nil
}

// LLMEnabled reports whether an LLM provider is configured with a key.
func (c *Config) LLMEnabled() bool {
	return c.LLM.Provider != "" && c.LLM.APIKey != ""
}

func (c *Config) CacheTTLDuration() time.Duration {
	return mustDuration(c.CacheTTL, 6*time.Hour)
}

func (c *Config) HTTPTimeout() time.Duration {
	return mustDuration(c.HTTP.Timeout, 10*time.Second)
}

func (c *Config) HTTPBackoff() time.Duration {
	return mustDuration(c.HTTP.Backoff, 500*time.Millisecond)
}

func (c *Config) CleanupInterval() time.Duration {
	return mustDuration(c.Scheduler.CleanupInterval, time.Hour)
}

func (c *Config) RefreshInterval() time.Duration {
	return mustDuration(c.Scheduler.RefreshInterval, 6*time.Hour)
}

func (c *Config) HealthInterval() time.Duration {
	return mustDuration(c.Scheduler.HealthInterval, 15*time.Minute)
}

func mustDuration(value string, fallback time.Duration) time.Duration {
	d, err := ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ParseDuration accepts Go duration syntax plus a whole-day "Nd" form.
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if strings.HasSuffix(value, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(value, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	return d, nil
}

// ParseTimeOfDay parses "HH:MM" in 24-hour form.
func ParseTimeOfDay(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q, want HH:MM", value)
	}
	return t.Hour(), t.Minute(), nil
}
