package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the optional file-level configuration. Everything has a working
// default, so a missing config file is not an error.
type Config struct {
	DBPath    string `toml:"db_path"`
	BackupDir string `toml:"backup_dir"`
	Currency  string `toml:"currency"`
}

func Default() Config {
	return Config{Currency: "¥"}
}

// ReadFromFile loads the TOML config at path. A missing file yields the
// defaults; a malformed file is an error.
func ReadFromFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if cfg.Currency == "" {
		cfg.Currency = Default().Currency
	}
	return cfg, nil
}
