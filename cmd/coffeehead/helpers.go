package coffeehead

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/app"
	"github.com/coffeehead/coffeehead-cli/internal/config"
	"github.com/coffeehead/coffeehead-cli/internal/db"
)

func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = app.DefaultConfigPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	return config.ReadFromFile(path)
}

// resolveDBPath prefers the --db flag, then the config file, then the
// per-user default location.
func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

func currencySymbol() string {
	cfg, err := loadConfig()
	if err != nil {
		return config.Default().Currency
	}
	return cfg.Currency
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// parseLoggedAt resolves when a cup was drunk: --ago N backdates by minutes,
// --date/--time pin an explicit moment, neither means now. Future times are
// accepted as entered; the decay engine simply ignores them until reached.
func parseLoggedAt(agoMinutes int, date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if agoMinutes > 0 && (date != "" || timeStr != "") {
		return time.Time{}, fmt.Errorf("--ago cannot be combined with --date/--time")
	}
	if agoMinutes < 0 {
		return time.Time{}, fmt.Errorf("--ago must be >= 0 minutes")
	}
	if agoMinutes > 0 {
		return time.Now().Add(-time.Duration(agoMinutes) * time.Minute), nil
	}
	if date == "" && timeStr == "" {
		return time.Now(), nil
	}
	if date == "" {
		return time.Time{}, fmt.Errorf("--date is required when --time is set")
	}
	if timeStr == "" {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
		}
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}
