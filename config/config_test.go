package config

import "testing"

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()

	if cfg.SQLite.Path != "bms.db" {
		t.Errorf("expected default sqlite path bms.db, got %q", cfg.SQLite.Path)
	}
	if cfg.Auth.PasswordHash != "sha256" {
		t.Errorf("expected sha256 hashing by default, got %q", cfg.Auth.PasswordHash)
	}
	if cfg.Auth.RememberFile != "credentials.txt" {
		t.Errorf("unexpected remember file %q", cfg.Auth.RememberFile)
	}
	if cfg.Auth.AdminPassword != "admin123" {
		t.Errorf("unexpected admin password %q", cfg.Auth.AdminPassword)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("SQLITE_BUSY_TIMEOUT", "250")
	t.Setenv("AUTH_PASSWORD_HASH", "BCRYPT")
	t.Setenv("LOGGER_DISABLE_CALLER", "true")

	cfg := LoadEnv()

	if cfg.SQLite.Path != ":memory:" {
		t.Errorf("expected :memory:, got %q", cfg.SQLite.Path)
	}
	if cfg.SQLite.BusyTimeout != 250 {
		t.Errorf("expected busy timeout 250, got %d", cfg.SQLite.BusyTimeout)
	}
	if cfg.Auth.PasswordHash != "bcrypt" {
		t.Errorf("expected lowercased bcrypt, got %q", cfg.Auth.PasswordHash)
	}
	if !cfg.Logger.DisableCaller {
		t.Error("expected caller to be disabled")
	}
}

func TestLoadEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SQLITE_BUSY_TIMEOUT", "soon")

	if got := LoadEnv().SQLite.BusyTimeout; got != 5000 {
		t.Errorf("expected fallback 5000, got %d", got)
	}
}
