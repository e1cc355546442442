package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	assert.Equal(t, nil, err)
	assert.Equal(t, nil, cfg.Validate())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 6*time.Hour, cfg.CacheTTLDuration())
	assert.Equal(t, 3, cfg.HTTP.Retries)
	assert.Equal(t, 1, len(cfg.Endpoints.Wordle))
	assert.Equal(t, EndpointJSON, cfg.Endpoints.Wordle[0].Kind)
	assert.Equal(t, false, cfg.LLMEnabled())
}

func TestLoadOverlaysFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("cache_ttl: 2d\nscheduler:\n  generation_time: \"06:30\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("PORT", "9090")
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("HTTP_RETRIES", "5")

	cfg, err := Load(path)
	assert.Equal(t, nil, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 48*time.Hour, cfg.CacheTTLDuration())
	assert.Equal(t, "06:30", cfg.Scheduler.GenerationTime)
	assert.Equal(t, 5, cfg.HTTP.Retries)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, true, cfg.LLMEnabled())
	// defaults that the file did not touch survive
	assert.Equal(t, time.Hour, cfg.CleanupInterval())
}

func TestLoadRejectsMalformedRetries(t *testing.T) {
	t.Setenv("HTTP_RETRIES", "three")

	_, err := Load("")
	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, strings.Contains(err.Error(), "HTTP_RETRIES"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad duration", func(c *Config) { c.CacheTTL = "soon" }},
		{"zero interval", func(c *Config) { c.Scheduler.CleanupInterval = "0s" }},
		{"bad time of day", func(c *Config) { c.Scheduler.GenerationTime = "25:00" }},
		{"no retries", func(c *Config) { c.HTTP.Retries = 0 }},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "mystery" }},
		{"missing url", func(c *Config) { c.Endpoints.Wordle[0].URL = "" }},
		{"rss for strands", func(c *Config) {
			c.Endpoints.Strands = []Endpoint{{Name: "x", Kind: EndpointRSS, URL: "https://example.com/feed"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadDefaults()
			if err != nil {
				t.Fatalf("defaults: %v", err)
			}
			tt.mutate(cfg)
			if cfg.Validate() == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"90m", 90 * time.Minute, true},
		{"7d", 7 * 24 * time.Hour, true},
		{"xd", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.input)
		if tt.ok && err != nil {
			t.Errorf("ParseDuration(%q): unexpected error %v", tt.input, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseDuration(%q): expected error", tt.input)
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	h, m, err := ParseTimeOfDay("07:45")
	assert.Equal(t, nil, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 45, m)

	_, _, err = ParseTimeOfDay("7pm")
	assert.NotEqual(t, nil, err)
}
