package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"nutristats/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"NUTRISTATS_CONFIG", "ADDR", "STORE", "DATABASE_URL", "LOG_MODE", "OIDC_ISSUER", "OIDC_CLIENT_ID", "AUTH_DISABLED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE", "memory")
	t.Setenv("AUTH_DISABLED", "1")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %s", cfg.Addr)
	}
	if cfg.LogMode != "dev" {
		t.Fatalf("expected default log mode dev, got %s", cfg.LogMode)
	}
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_DISABLED", "1")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for postgres store without database url")
	}
}

func TestLoad_AuthRequiresIssuer(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE", "memory")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for enabled auth without issuer")
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("addr: \":9090\"\nstore: memory\noidc:\n  disabled: true\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("NUTRISTATS_CONFIG", path)
	// Env wins over the file.
	t.Setenv("ADDR", ":7070")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("expected env override :7070, got %s", cfg.Addr)
	}
	if cfg.Store != "memory" || !cfg.OIDC.Disabled {
		t.Fatalf("expected file values applied, got %+v", cfg)
	}
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE", "cassandra")
	t.Setenv("AUTH_DISABLED", "1")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for unknown store")
	}
}
