package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		APIBase:           defaultAPIBaseDev,
		SessionKey:        "test-session-key",
		ViewIdleTTL:       30 * time.Minute,
		ViewSweepInterval: time.Minute,
		MountRateLimit:    30,
		HealthTimeout:     2 * time.Second,
	}
}

func TestResolveAPIBase(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		override string
		want     string
	}{
		{"dev uses dev base", "dev", "", defaultAPIBaseDev},
		{"prod uses prod base", "prod", "", defaultAPIBaseProd},
		{"unknown env uses dev base", "staging", "", defaultAPIBaseDev},
		{"override wins in dev", "dev", "http://models.internal/api", "http://models.internal/api"},
		{"override wins in prod", "prod", "http://models.internal/api", "http://models.internal/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAPIBase(tt.env, tt.override, defaultAPIBaseDev, defaultAPIBaseProd)
			if got != tt.want {
				t.Errorf("ResolveAPIBase() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateConfig_Accepts(t *testing.T) {
	if err := ValidateConfig(&config.CoreConfig{}, validAppConfig(), testLogger()); err != nil {
		t.Fatalf("ValidateConfig failed: %v", err)
	}
}

func TestValidateConfig_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"relative api base", func(c *AppConfig) { c.APIBase = "/api" }},
		{"ftp api base", func(c *AppConfig) { c.APIBase = "ftp://example.com/api" }},
		{"empty api base", func(c *AppConfig) { c.APIBase = "" }},
		{"empty session key", func(c *AppConfig) { c.SessionKey = "" }},
		{"short csrf key", func(c *AppConfig) { c.CSRFKey = "too-short" }},
		{"zero idle ttl", func(c *AppConfig) { c.ViewIdleTTL = 0 }},
		{"negative sweep interval", func(c *AppConfig) { c.ViewSweepInterval = -time.Second }},
		{"zero mount limit", func(c *AppConfig) { c.MountRateLimit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)
			if err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger()); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateConfig_Accepts32ByteCSRFKey(t *testing.T) {
	cfg := validAppConfig()
	cfg.CSRFKey = "0123456789abcdef0123456789abcdef"
	if err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger()); err != nil {
		t.Fatalf("ValidateConfig failed: %v", err)
	}
}
