package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StartingCash.String() != "10000" {
		t.Errorf("StartingCash = %s, want 10000", cfg.StartingCash)
	}
	if cfg.JWTAccessTTL != 15*time.Minute {
		t.Errorf("JWTAccessTTL = %v, want 15m", cfg.JWTAccessTTL)
	}
	if cfg.QuoteCacheTTL != time.Minute {
		t.Errorf("QuoteCacheTTL = %v, want 1m", cfg.QuoteCacheTTL)
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %q, want empty", cfg.RedisURL)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STARTING_CASH", "2500.50")
	t.Setenv("QUOTE_TIMEOUT", "2s")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.StartingCash.String() != "2500.5" {
		t.Errorf("StartingCash = %s, want 2500.5", cfg.StartingCash)
	}
	if cfg.QuoteTimeout != 2*time.Second {
		t.Errorf("QuoteTimeout = %v, want 2s", cfg.QuoteTimeout)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non_numeric_cash", "STARTING_CASH", "lots"},
		{"negative_cash", "STARTING_CASH", "-1"},
		{"bad_duration", "JWT_ACCESS_TTL", "soon"},
		{"zero_timeout", "QUOTE_TIMEOUT", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := FromEnv(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d", DBSSLMode: "disable"}
	want := "postgres://u:p@h:1/d?sslmode=disable"
	if got := cfg.DatabaseURL(); got != want {
		t.Errorf("DatabaseURL() = %q, want %q", got, want)
	}
}
