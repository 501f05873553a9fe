package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coffeehead/coffeehead-cli/internal/db"
)

func TestApplyMigrationsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "coffeehead.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 4 {
		t.Fatalf("expected 4 migration versions, got %d", migrationCount)
	}

	for _, table := range []string{"logs", "beans", "app_config"} {
		var count int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count); err != nil {
			t.Fatalf("check %s table: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("expected %s table to exist", table)
		}
	}

	var sizeColCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM pragma_table_info('logs') WHERE name = 'size'`).Scan(&sizeColCount); err != nil {
		t.Fatalf("check logs size column: %v", err)
	}
	if sizeColCount != 1 {
		t.Fatalf("expected size column in logs table")
	}

	var imageColCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM pragma_table_info('beans') WHERE name = 'image_ref'`).Scan(&imageColCount); err != nil {
		t.Fatalf("check beans image_ref column: %v", err)
	}
	if imageColCount != 1 {
		t.Fatalf("expected image_ref column in beans table")
	}

	var loggedAtIndexCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'index' AND name = 'idx_logs_logged_at'`).Scan(&loggedAtIndexCount); err != nil {
		t.Fatalf("check logs logged_at index: %v", err)
	}
	if loggedAtIndexCount != 1 {
		t.Fatalf("expected idx_logs_logged_at index to exist")
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected db file to exist: %v", err)
	}
}
