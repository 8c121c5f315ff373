package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("port %d", cfg.Server.Port)
	}
	if cfg.CoinGecko.MinCallInterval != 2500*time.Millisecond {
		t.Fatalf("min call interval %v", cfg.CoinGecko.MinCallInterval)
	}
	if cfg.Catalog.TTL != 24*time.Hour {
		t.Fatalf("catalog ttl %v", cfg.Catalog.TTL)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("log level %q", cfg.Logging.Level)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9000
coingecko:
  base_url: https://example.test/api/v3
  min_call_interval: 5s
catalog:
  ttl: 1h
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Fatalf("port %d", cfg.Server.Port)
	}
	if cfg.CoinGecko.BaseURL != "https://example.test/api/v3" {
		t.Fatalf("base url %q", cfg.CoinGecko.BaseURL)
	}
	if cfg.CoinGecko.MinCallInterval != 5*time.Second {
		t.Fatalf("min call interval %v", cfg.CoinGecko.MinCallInterval)
	}
	if cfg.Catalog.TTL != time.Hour {
		t.Fatalf("catalog ttl %v", cfg.Catalog.TTL)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing-environment", "server:\n  port: 8080\n"},
		{"bad-port", "environment: test\nserver:\n  port: 70000\n"},
		{"redis-without-addr", "environment: test\ncatalog:\n  redis:\n    enabled: true\n"},
	}
	for _, tc := range cases {
		path := writeConfig(t, tc.content)
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("COINGECKO_BASE_URL", "https://proxy.test/v3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Fatalf("port %d", cfg.Server.Port)
	}
	if cfg.CoinGecko.BaseURL != "https://proxy.test/v3" {
		t.Fatalf("base url %q", cfg.CoinGecko.BaseURL)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level %q", cfg.Logging.Level)
	}
}
