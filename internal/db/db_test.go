package db_test

import (
	"path/filepath"
	"testing"

	"github.com/coffeehead/coffeehead-cli/internal/db"
)

func TestOpenAppliesPragmas(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "coffeehead.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	var foreignKeys int
	if err := sqldb.QueryRow(`PRAGMA foreign_keys`).Scan(&foreignKeys); err != nil {
		t.Fatalf("read foreign_keys pragma: %v", err)
	}
	if foreignKeys != 1 {
		t.Fatalf("expected foreign keys enabled, got %d", foreignKeys)
	}

	var busyTimeout int
	if err := sqldb.QueryRow(`PRAGMA busy_timeout`).Scan(&busyTimeout); err != nil {
		t.Fatalf("read busy_timeout pragma: %v", err)
	}
	if busyTimeout != 5000 {
		t.Fatalf("expected 5000ms busy timeout, got %d", busyTimeout)
	}
}
