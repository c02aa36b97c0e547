package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	path := writeConfig(t, `
version: 1
proxy:
  base_url: https://proxy.example.com
  token_env: HUB_KEY
  admin_view: true
network:
  timeout_seconds: 30
cache:
  enabled: true
  data_root: `+t.TempDir()+`
logging:
  level: info
  format: human
ui:
  theme: dark
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Proxy.BaseURL != "https://proxy.example.com" {
		t.Errorf("BaseURL = %q", c.Proxy.BaseURL)
	}
	if !c.Proxy.AdminView {
		t.Error("AdminView should be true")
	}
	if c.Network.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", c.Network.TimeoutSeconds)
	}
}

func TestLoadEnvExpansion(t *testing.T) {
	t.Setenv("MODELHUB_TEST_BASE", "https://proxy.internal:4000")
	path := writeConfig(t, `
version: 1
proxy:
  base_url: ${MODELHUB_TEST_BASE}
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Proxy.BaseURL != "https://proxy.internal:4000" {
		t.Errorf("BaseURL = %q, want expanded env value", c.Proxy.BaseURL)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "bad version",
			body: "version: 2\nproxy:\n  base_url: https://x\n",
			want: "unsupported config version",
		},
		{
			name: "missing base url",
			body: "version: 1\n",
			want: "proxy.base_url is required",
		},
		{
			name: "non-http base url",
			body: "version: 1\nproxy:\n  base_url: ftp://x\n",
			want: "must be http(s)",
		},
		{
			name: "negative timeout",
			body: "version: 1\nproxy:\n  base_url: https://x\nnetwork:\n  timeout_seconds: -1\n",
			want: "timeout_seconds",
		},
		{
			name: "cache without data root",
			body: "version: 1\nproxy:\n  base_url: https://x\ncache:\n  enabled: true\n",
			want: "cache.data_root is required",
		},
		{
			name: "bad log level",
			body: "version: 1\nproxy:\n  base_url: https://x\nlogging:\n  level: loud\n",
			want: "logging.level invalid",
		},
		{
			name: "bad theme",
			body: "version: 1\nproxy:\n  base_url: https://x\nui:\n  theme: neon\n",
			want: "ui.theme invalid",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() should have failed")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestToken(t *testing.T) {
	c := &Config{Proxy: Proxy{TokenEnv: "MODELHUB_TEST_TOKEN"}}
	t.Setenv("MODELHUB_TEST_TOKEN", "  sk-1234  ")
	if got := c.Token(); got != "sk-1234" {
		t.Errorf("Token() = %q, want trimmed value", got)
	}
	c.Proxy.TokenEnv = ""
	if got := c.Token(); got != "" {
		t.Errorf("Token() = %q, want empty when token_env unset", got)
	}
}
