// file: config/config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "apiprobe.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfigFile(t, `
auth:
  issuerUrl: https://issuer.example.com
  clientId: client
  clientSecret: secret
  audience: https://api.example.com
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Auth.RefreshBuffer != 2*time.Minute {
		t.Errorf("Auth.RefreshBuffer = %v, want 2m", cfg.Auth.RefreshBuffer)
	}
	if cfg.Auth.FetchTimeout != 40*time.Second {
		t.Errorf("Auth.FetchTimeout = %v, want 40s", cfg.Auth.FetchTimeout)
	}
	if cfg.GitHub.BaseURL != "https://api.github.com" {
		t.Errorf("GitHub.BaseURL = %s, want https://api.github.com", cfg.GitHub.BaseURL)
	}
	if cfg.GitHub.APIVersion != "2022-11-28" {
		t.Errorf("GitHub.APIVersion = %s, want 2022-11-28", cfg.GitHub.APIVersion)
	}
	if cfg.GitHub.Client.Timeout != 30*time.Second {
		t.Errorf("GitHub.Client.Timeout = %v, want 30s", cfg.GitHub.Client.Timeout)
	}
	if cfg.GitHub.Client.MaxIdleConns != 100 {
		t.Errorf("GitHub.Client.MaxIdleConns = %d, want 100", cfg.GitHub.Client.MaxIdleConns)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Encoding != "json" {
		t.Errorf("Logging.Encoding = %s, want json", cfg.Logging.Encoding)
	}
	if cfg.Logging.OutputPath != "stdout" {
		t.Errorf("Logging.OutputPath = %s, want stdout", cfg.Logging.OutputPath)
	}
	if cfg.Metrics.Address != ":2114" {
		t.Errorf("Metrics.Address = %s, want :2114", cfg.Metrics.Address)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %s, want /metrics", cfg.Metrics.Path)
	}
}

func TestLoadExplicitValues(t *testing.T) {
	path := writeConfigFile(t, `
auth:
  issuerUrl: https://issuer.example.com
  clientId: client
  clientSecret: secret
  audience: https://api.example.com
  refreshBuffer: 5m
  fetchTimeout: 10s
github:
  baseUrl: https://github.internal.example.com/api/v3
  apiVersion: "2022-11-28"
  client:
    timeout: 15s
logging:
  level: debug
  encoding: console
metrics:
  enabled: true
  address: ":9099"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Auth.RefreshBuffer != 5*time.Minute {
		t.Errorf("Auth.RefreshBuffer = %v, want 5m", cfg.Auth.RefreshBuffer)
	}
	if cfg.Auth.FetchTimeout != 10*time.Second {
		t.Errorf("Auth.FetchTimeout = %v, want 10s", cfg.Auth.FetchTimeout)
	}
	if cfg.GitHub.BaseURL != "https://github.internal.example.com/api/v3" {
		t.Errorf("GitHub.BaseURL = %s", cfg.GitHub.BaseURL)
	}
	if cfg.GitHub.Client.Timeout != 15*time.Second {
		t.Errorf("GitHub.Client.Timeout = %v, want 15s", cfg.GitHub.Client.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = false, want true")
	}
	if cfg.Metrics.Address != ":9099" {
		t.Errorf("Metrics.Address = %s, want :9099", cfg.Metrics.Address)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "invalid log level",
			content: `
logging:
  level: verbose
`,
		},
		{
			name: "invalid log encoding",
			content: `
logging:
  encoding: xml
`,
		},
		{
			name: "negative refresh buffer",
			content: `
auth:
  refreshBuffer: -1m
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Load() expected error, got nil")
			}
		})
	}
}

func TestLoadBlankCredentialsAccepted(t *testing.T) {
	// Credential presence is deliberately not validated at load time; the
	// token fetcher raises a typed configuration error instead.
	path := writeConfigFile(t, `
logging:
  level: info
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Auth.ClientID != "" {
		t.Errorf("Auth.ClientID = %q, want empty", cfg.Auth.ClientID)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}
