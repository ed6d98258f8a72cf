package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.HistoryCap != 10 {
		t.Errorf("HistoryCap = %d, want 10", cfg.HistoryCap)
	}
	if cfg.ContextTurns != 3 {
		t.Errorf("ContextTurns = %d, want 3", cfg.ContextTurns)
	}
	if cfg.SessionIdleTTL != 60*time.Minute {
		t.Errorf("SessionIdleTTL = %v, want 1h", cfg.SessionIdleTTL)
	}
	if cfg.Processor != ProcessorTemplate {
		t.Errorf("Processor = %q, want template", cfg.Processor)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("PROCESSOR", "gemini")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("SESSION_IDLE_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Processor != ProcessorGemini {
		t.Errorf("Processor = %q", cfg.Processor)
	}
	if cfg.SessionIdleTTL != 30*time.Minute {
		t.Errorf("SessionIdleTTL = %v", cfg.SessionIdleTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Port = "" }},
		{"empty db path", func(c *Config) { c.DBPath = "" }},
		{"zero history cap", func(c *Config) { c.HistoryCap = 0 }},
		{"bad processor", func(c *Config) { c.Processor = "markov" }},
		{"zero idle ttl", func(c *Config) { c.SessionIdleTTL = 0 }},
	}
	for _, tt := range tests {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate should fail", tt.name)
		}
	}
}
