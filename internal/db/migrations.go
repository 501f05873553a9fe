package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS logs (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  caffeine_mg REAL NOT NULL CHECK(caffeine_mg >= 0),
  price REAL NOT NULL CHECK(price >= 0),
  mode TEXT NOT NULL CHECK(mode IN ('BRAND', 'HOME')),
  brand_id TEXT NOT NULL DEFAULT '',
  bean_id TEXT NOT NULL DEFAULT '',
  dose_g REAL CHECK(dose_g > 0),
  notes TEXT,
  logged_at DATETIME NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_logs_logged_at ON logs(logged_at);
CREATE INDEX IF NOT EXISTS idx_logs_mode ON logs(mode);

CREATE TABLE IF NOT EXISTS beans (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  origin TEXT NOT NULL DEFAULT '',
  roast_date TEXT NOT NULL,
  date_opened TEXT NOT NULL DEFAULT '',
  total_weight_g REAL NOT NULL CHECK(total_weight_g >= 0),
  current_weight_g REAL NOT NULL CHECK(current_weight_g >= 0),
  price REAL NOT NULL CHECK(price >= 0),
  flavor_profile TEXT NOT NULL DEFAULT '[]',
  is_archived INTEGER NOT NULL DEFAULT 0,
  has_been_opened INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_beans_is_archived ON beans(is_archived);
`,
	},
	{
		version: 2,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 3,
		name:    "drink_details",
		sql: `
ALTER TABLE logs ADD COLUMN size TEXT NOT NULL DEFAULT '';
ALTER TABLE logs ADD COLUMN milk TEXT NOT NULL DEFAULT '';
ALTER TABLE logs ADD COLUMN ice TEXT NOT NULL DEFAULT '';
`,
	},
	{
		version: 4,
		name:    "bean_images",
		sql: `
ALTER TABLE beans ADD COLUMN image_ref TEXT NOT NULL DEFAULT '';
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	return nil
}
