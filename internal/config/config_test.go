package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coffeehead/coffeehead-cli/internal/config"
)

func TestReadFromFileMissingUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.ReadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if cfg.Currency != "¥" {
		t.Fatalf("expected default currency, got %q", cfg.Currency)
	}
	if cfg.DBPath != "" {
		t.Fatalf("expected empty db path, got %q", cfg.DBPath)
	}
}

func TestReadFromFileParsesValues(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "db_path = \"/tmp/coffee.db\"\nbackup_dir = \"/tmp/backups\"\ncurrency = \"$\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.ReadFromFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if cfg.DBPath != "/tmp/coffee.db" || cfg.BackupDir != "/tmp/backups" || cfg.Currency != "$" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestReadFromFileRejectsMalformedTOML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("db_path = [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.ReadFromFile(path); err == nil {
		t.Fatalf("expected malformed config to fail")
	}
}
