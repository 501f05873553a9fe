package service

import "github.com/coffeehead/coffeehead-cli/internal/model"

// Every fallback used at a read site lives here so the engines and their
// callers cannot drift apart.
const (
	// DefaultDoseGrams is assumed for a home brew when the log carries no dose.
	DefaultDoseGrams = 18.0

	// SleepThresholdMg is the active-caffeine level treated as safe for sleep.
	SleepThresholdMg = 50.0

	// DefaultBenchmarkPrice is the tier-3 café price when the user has neither
	// enough recent café logs nor a manual override.
	DefaultBenchmarkPrice = 30.0

	// BenchmarkWindowDays and BenchmarkMinLogs gate the personalized tier.
	BenchmarkWindowDays = 30
	BenchmarkMinLogs    = 5

	// Limit status boundaries as fractions of the daily limit.
	LimitApproachingRatio = 0.8

	// First-run profile defaults.
	DefaultDailyLimitMg = 400.0
	DefaultWeightKg     = 65.0
	DefaultHeightCm     = 170.0

	// First-run wallet defaults.
	DefaultMonthlyBudget = 500.0
	DefaultSavingsGoal   = "Polaroid 600 Film"
	DefaultGoalPrice     = 150.0

	// Bean freshness boundaries in days since roast.
	FreshnessAgingMaxDays = 7
	FreshnessPeakMaxDays  = 25
)

func DefaultProfile() model.UserProfile {
	return model.UserProfile{
		Name:            "Coffee Lover",
		Avatar:          "user",
		DailyLimitMg:    DefaultDailyLimitMg,
		PreferredDrink:  "Americano",
		WeightKg:        DefaultWeightKg,
		HeightCm:        DefaultHeightCm,
		SleepDifficulty: model.SleepNormal,
	}
}

func DefaultWalletStats() model.WalletStats {
	return model.WalletStats{
		MonthlyBudget: DefaultMonthlyBudget,
		SavingsGoal:   DefaultSavingsGoal,
		GoalPrice:     DefaultGoalPrice,
	}
}

// DoseOrDefault resolves the grams of beans behind a home-brewed log.
func DoseOrDefault(log model.IntakeLog) float64 {
	if log.DoseGrams != nil && *log.DoseGrams > 0 {
		return *log.DoseGrams
	}
	return DefaultDoseGrams
}
