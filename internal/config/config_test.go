package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lrcloud/internal/config"
)

func TestDefaultValidatesWithAPIKey(t *testing.T) {
	cfg := config.Default()
	cfg.Service.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config with api key should validate: %v", err)
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	t.Setenv("LRCLOUD_API_KEY", "")
	cfg := config.Default()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when api key missing")
	}
	if !strings.Contains(err.Error(), "service.api_key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[service]
base_url = "https://example.test/"
api_key = "integration-key"

[logging]
format = "json"
level = "debug"
log_dir = ""

[history]
enabled = false
path = ""
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be reported as existing")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.Service.BaseURL != "https://example.test" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Service.BaseURL)
	}
	if cfg.Service.APIKey != "integration-key" {
		t.Fatalf("unexpected api key %q", cfg.Service.APIKey)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging settings: %+v", cfg.Logging)
	}
	if cfg.Service.TimeoutSeconds != 30 {
		t.Fatalf("expected default timeout to survive partial config, got %d", cfg.Service.TimeoutSeconds)
	}
}

func TestLoadHonoursEnvFallbacks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[service]\nbase_url = \"https://example.test\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LRCLOUD_API_KEY", "env-key")
	t.Setenv("LRCLOUD_ACCESS_TOKEN", "env-token")

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Service.APIKey != "env-key" {
		t.Fatalf("expected env api key fallback, got %q", cfg.Service.APIKey)
	}
	if cfg.Auth.AccessToken != "env-token" {
		t.Fatalf("expected env token fallback, got %q", cfg.Auth.AccessToken)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := "[service]\napi_key = \"k\"\n[logging]\nformat = \"xml\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := config.ExpandPath("~/lrcloud-test")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "lrcloud-test") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}

func TestSampleConfigParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	t.Setenv("LRCLOUD_API_KEY", "sample-key")
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
}
