package config

import "testing"

func TestApplyDefaults(t *testing.T) {
	var cfg AppConfig
	applyDefaults(&cfg)

	if cfg.AppPort != "5001" {
		t.Fatalf("AppPort = %q", cfg.AppPort)
	}
	if cfg.DataFile != "data.json" {
		t.Fatalf("DataFile = %q", cfg.DataFile)
	}
	if cfg.ModerationTemperature != 0.6 {
		t.Fatalf("ModerationTemperature = %v, want 0.6", cfg.ModerationTemperature)
	}
	if cfg.ModerationTimeoutSec != 30 {
		t.Fatalf("ModerationTimeoutSec = %v, want 30", cfg.ModerationTimeoutSec)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MODERATION_TEMPERATURE", "0.2")
	t.Setenv("MODERATION_DISABLED", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	var cfg AppConfig
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.AppPort != "8080" {
		t.Fatalf("AppPort = %q", cfg.AppPort)
	}
	if cfg.ModerationTemperature != 0.2 {
		t.Fatalf("ModerationTemperature = %v, want 0.2", cfg.ModerationTemperature)
	}
	if !cfg.ModerationDisabled {
		t.Fatal("ModerationDisabled not set from env")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://a.example" {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestEnvOverridesIgnoreGarbage(t *testing.T) {
	t.Setenv("MODERATION_TEMPERATURE", "hot")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")

	var cfg AppConfig
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.ModerationTemperature != 0.6 {
		t.Fatalf("ModerationTemperature = %v, want the default", cfg.ModerationTemperature)
	}
	if cfg.RateLimitPerMinute != 60 {
		t.Fatalf("RateLimitPerMinute = %v, want the default", cfg.RateLimitPerMinute)
	}
}
