package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coffeehead/coffeehead-cli/internal/model"
)

// Profile and wallet settings are singleton JSON documents in the app_config
// table, mirroring the original key-value persistence. A missing record on
// first run resolves to documented defaults, never an error.

const (
	configKeyProfile     = "user_profile"
	configKeyWalletStats = "wallet_stats"
)

func getConfigDoc(db *sql.DB, key string, out any) (bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get config %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return false, fmt.Errorf("decode config %q: %w", key, err)
	}
	return true, nil
}

func setConfigDoc(db *sql.DB, key string, doc any) error {
	value, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode config %q: %w", key, err)
	}
	_, err = db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, string(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetProfile(db *sql.DB) (model.UserProfile, error) {
	profile := DefaultProfile()
	if _, err := getConfigDoc(db, configKeyProfile, &profile); err != nil {
		return model.UserProfile{}, err
	}
	return profile, nil
}

// validateProfile is the one gate between user-supplied profile numbers and
// the decay engine, enforced on save and on import alike. A zero weight would
// make the half-life infinite.
func validateProfile(profile model.UserProfile) error {
	if strings.TrimSpace(profile.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	if err := validatePositiveFloat("weight", profile.WeightKg); err != nil {
		return err
	}
	if err := validatePositiveFloat("height", profile.HeightCm); err != nil {
		return err
	}
	if err := validatePositiveFloat("daily limit", profile.DailyLimitMg); err != nil {
		return err
	}
	switch profile.SleepDifficulty {
	case model.SleepEasy, model.SleepNormal, model.SleepHard:
	default:
		return fmt.Errorf("sleep difficulty must be Easy, Normal or Hard")
	}
	return nil
}

func validateWalletStats(stats model.WalletStats) error {
	if err := validateNonNegativeFloat("monthly budget", stats.MonthlyBudget); err != nil {
		return err
	}
	if strings.TrimSpace(stats.SavingsGoal) == "" {
		return fmt.Errorf("savings goal name is required")
	}
	if err := validatePositiveFloat("goal price", stats.GoalPrice); err != nil {
		return err
	}
	if stats.CafeBenchmark != nil {
		if err := validatePositiveFloat("cafe benchmark", *stats.CafeBenchmark); err != nil {
			return err
		}
	}
	return nil
}

func SaveProfile(db *sql.DB, profile model.UserProfile) error {
	profile.Name = strings.TrimSpace(profile.Name)
	if err := validateProfile(profile); err != nil {
		return err
	}
	return setConfigDoc(db, configKeyProfile, profile)
}

func GetWalletStats(db *sql.DB) (model.WalletStats, error) {
	stats := DefaultWalletStats()
	if _, err := getConfigDoc(db, configKeyWalletStats, &stats); err != nil {
		return model.WalletStats{}, err
	}
	return stats, nil
}

// SaveWalletStats guards the cost engine's divisions: the goal price must be
// positive before it ever reaches GoalStatus.
func SaveWalletStats(db *sql.DB, stats model.WalletStats) error {
	stats.SavingsGoal = strings.TrimSpace(stats.SavingsGoal)
	if err := validateWalletStats(stats); err != nil {
		return err
	}
	return setConfigDoc(db, configKeyWalletStats, stats)
}
