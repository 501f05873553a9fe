package service

import (
	"database/sql"
	"time"
)

type StatusSummary struct {
	ActiveCaffeineMg float64       `json:"active_caffeine_mg"`
	HalfLifeMinutes  float64       `json:"half_life_minutes"`
	TodayIntakeMg    float64       `json:"today_intake_mg"`
	DailyLimitMg     float64       `json:"daily_limit_mg"`
	LimitStatus      LimitStatus   `json:"limit_status"`
	Sleep            SleepEstimate `json:"-"`
	SleepReadyNow    bool          `json:"sleep_ready_now"`
	SleepAt          string        `json:"sleep_at,omitempty"`
}

// Status snapshots the decay engine for "now": active caffeine, today's raw
// intake against the limit, and the estimated safe-sleep time.
func Status(db *sql.DB, now time.Time) (*StatusSummary, error) {
	logs, err := AllLogs(db)
	if err != nil {
		return nil, err
	}
	profile, err := GetProfile(db)
	if err != nil {
		return nil, err
	}

	halfLife := HalfLifeMinutes(profile)
	intake := DailyIntakeMg(logs, now)
	summary := &StatusSummary{
		ActiveCaffeineMg: ActiveCaffeineAt(logs, halfLife, now),
		HalfLifeMinutes:  halfLife,
		TodayIntakeMg:    intake,
		DailyLimitMg:     profile.DailyLimitMg,
		LimitStatus:      IntakeLimitStatus(intake, profile.DailyLimitMg),
		Sleep:            EstimateSleepTime(logs, halfLife, now),
	}
	summary.SleepReadyNow = summary.Sleep.ReadyNow
	if !summary.Sleep.ReadyNow {
		summary.SleepAt = summary.Sleep.At.Format(time.RFC3339)
	}
	return summary, nil
}

type WalletReport struct {
	Budget  BudgetUsage    `json:"budget"`
	Savings SavingsSummary `json:"savings"`
	Goal    GoalProgress   `json:"goal"`
}

// Wallet snapshots the cost engine for "now".
func Wallet(db *sql.DB, now time.Time) (*WalletReport, error) {
	logs, err := AllLogs(db)
	if err != nil {
		return nil, err
	}
	beans, err := AllBeans(db)
	if err != nil {
		return nil, err
	}
	stats, err := GetWalletStats(db)
	if err != nil {
		return nil, err
	}

	savings := Savings(logs, beans, stats, now)
	return &WalletReport{
		Budget:  BudgetStatus(MonthlySpend(logs, now), stats.MonthlyBudget),
		Savings: savings,
		Goal:    GoalStatus(stats, savings.TotalSavings),
	}, nil
}
