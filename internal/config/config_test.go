package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"WILDTRACK_API_URL",
		"WILDTRACK_REQUEST_TIMEOUT",
		"WILDTRACK_TOKEN_PATH",
		"WILDTRACK_STYLE_FILE",
		"WILDTRACK_REQUESTS_PER_SECOND",
		"WILDTRACK_LOG_LEVEL",
		"WILDTRACK_LOG_JSON",
	} {
		// envdecode treats an empty value as unset and applies defaults.
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Fatalf("BaseURL=%q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("RequestTimeout=%v want none", cfg.RequestTimeout)
	}
	if cfg.TokenPath == "" {
		t.Fatal("TokenPath must default to the user config dir")
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel=%q", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WILDTRACK_API_URL", "https://tracker.example.org")
	t.Setenv("WILDTRACK_REQUEST_TIMEOUT", "30s")
	t.Setenv("WILDTRACK_TOKEN_PATH", "/tmp/wildtrack-test-token")
	t.Setenv("WILDTRACK_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("WILDTRACK_LOG_LEVEL", "debug")
	t.Setenv("WILDTRACK_LOG_JSON", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if cfg.BaseURL != "https://tracker.example.org" {
		t.Fatalf("BaseURL=%q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("RequestTimeout=%v", cfg.RequestTimeout)
	}
	if cfg.TokenPath != "/tmp/wildtrack-test-token" {
		t.Fatalf("TokenPath=%q", cfg.TokenPath)
	}
	if cfg.RequestsPerSecond != 2.5 {
		t.Fatalf("RequestsPerSecond=%v", cfg.RequestsPerSecond)
	}
	if !cfg.LogJSON {
		t.Fatal("LogJSON override ignored")
	}
}
