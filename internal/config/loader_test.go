package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Version != "1" {
		t.Errorf("Expected version '1', got '%s'", cfg.Version)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("Expected default base URL, got '%s'", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 30 {
		t.Errorf("Expected 30s timeout, got %d", cfg.API.TimeoutSeconds)
	}
	if !cfg.Cache.Enabled {
		t.Error("Expected cache enabled by default")
	}
	if cfg.Cache.MaxAgeHours != 72 {
		t.Errorf("Expected 72h cache max age, got %d", cfg.Cache.MaxAgeHours)
	}
	if cfg.OAuth.Google.ClientID != "" {
		t.Errorf("Expected no default google client id, got '%s'", cfg.OAuth.Google.ClientID)
	}
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if !strings.Contains(string(content), "base_url: "+DefaultBaseURL) {
		t.Error("Expected default base_url in written config")
	}
	if !strings.Contains(string(content), "oauth:") {
		t.Error("Expected oauth section in written config")
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "config.yaml")
	content := `version: "1"
api:
  base_url: http://localhost:3000/api
  timeout_seconds: 5
cache:
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg := DefaultConfig()
	if err := loadFile(path, cfg); err != nil {
		t.Fatalf("loadFile failed: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:3000/api" {
		t.Errorf("base_url = %s", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 5 {
		t.Errorf("timeout_seconds = %d, want 5", cfg.API.TimeoutSeconds)
	}
	if cfg.Cache.Enabled {
		t.Error("Expected cache disabled by file override")
	}
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	err := loadFile(filepath.Join(t.TempDir(), "absent.yaml"), cfg)
	if !os.IsNotExist(err) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
