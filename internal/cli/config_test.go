package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME and the working directory at temp dirs and clears EF_* vars.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"EF_CATALOG", "EF_DB", "EF_PORT", "EF_LOG_LEVEL", "EF_DEV",
		"EF_POSTCODE_MODE", "EF_SESSION_TTL", "EF_SERVER_URL", "EF_SESSION"} {
		t.Setenv(k, "")
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func writeConfigFile(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "ef")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	isolate(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.ServerURL != "http://localhost:8080" {
		t.Errorf("server_url = %q", cfg.ServerURL)
	}
	if cfg.PostcodeMode != "substring" {
		t.Errorf("postcode_mode = %q", cfg.PostcodeMode)
	}
	if ttl, err := cfg.sessionTTL(); err != nil || ttl != 2*time.Hour {
		t.Errorf("session ttl = %v, %v", ttl, err)
	}
	if cfg.SweepSchedule != "@every 5m" {
		t.Errorf("sweep_schedule = %q", cfg.SweepSchedule)
	}
}

func TestConfigFile(t *testing.T) {
	home := isolate(t)
	writeConfigFile(t, home, `
catalog_path: /data/properties.json
port: 9090
postcode_mode: prefix
session_ttl: 30m
server_url: http://myhost:9090
`)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CatalogPath != "/data/properties.json" {
		t.Errorf("catalog_path = %q", cfg.CatalogPath)
	}
	if cfg.Port != 9090 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.PostcodeMode != "prefix" {
		t.Errorf("postcode_mode = %q", cfg.PostcodeMode)
	}
	if ttl, _ := cfg.sessionTTL(); ttl != 30*time.Minute {
		t.Errorf("ttl = %v", ttl)
	}
}

func TestConfigFileInvalid(t *testing.T) {
	home := isolate(t)
	writeConfigFile(t, home, "port: [not a number\n")

	if _, err := loadConfig(); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfigEnvOverridesFile(t *testing.T) {
	home := isolate(t)
	writeConfigFile(t, home, "port: 9090\nserver_url: http://file:1\n")
	t.Setenv("EF_PORT", "7070")
	t.Setenv("EF_SERVER_URL", "http://custom:1234")
	t.Setenv("EF_DEV", "true")
	t.Setenv("EF_POSTCODE_MODE", "PREFIX")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.ServerURL != "http://custom:1234" {
		t.Errorf("server_url = %q", cfg.ServerURL)
	}
	if !cfg.Dev {
		t.Error("expected dev mode")
	}
	if cfg.PostcodeMode != "prefix" {
		t.Errorf("postcode_mode = %q", cfg.PostcodeMode)
	}
}

func TestConfigInvalidEnv(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"EF_PORT", "eighty"},
		{"EF_DEV", "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)
			if _, err := loadConfig(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestConfigDotEnv(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(".env", []byte("EF_PORT=6060\nEF_SESSION_TTL=10m\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv sets real variables; t.Setenv registers their cleanup.
	t.Setenv("EF_PORT", "")
	t.Setenv("EF_SESSION_TTL", "")
	os.Unsetenv("EF_PORT")
	os.Unsetenv("EF_SESSION_TTL")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 6060 {
		t.Errorf("port = %d", cfg.Port)
	}
	if ttl, _ := cfg.sessionTTL(); ttl != 10*time.Minute {
		t.Errorf("ttl = %v", ttl)
	}
}

func TestSessionTTLInvalid(t *testing.T) {
	for _, v := range []string{"soon", "-5m", "0s"} {
		if _, err := (Config{SessionTTL: v}).sessionTTL(); err == nil {
			t.Errorf("expected error for %q", v)
		}
	}
}
