package service

import (
	"math"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/model"
)

// The cost engine derives every monetary metric from the log list, the bean
// inventory and the wallet settings on each call. Like the decay engine it is
// a set of pure functions; mutations to the underlying lists happen elsewhere.

type BenchmarkSource string

const (
	BenchmarkPersonalized BenchmarkSource = "personalized"
	BenchmarkManual       BenchmarkSource = "manual"
	BenchmarkDefault      BenchmarkSource = "default"
)

// ResolveBenchmark picks the café price to compare home brews against.
// Precedence: mean of the last 30 days' BRAND logs when there are at least
// five, then the manual override, then the fixed default.
func ResolveBenchmark(logs []model.IntakeLog, stats model.WalletStats, now time.Time) (float64, BenchmarkSource) {
	windowStart := now.Add(-BenchmarkWindowDays * 24 * time.Hour)
	sum := 0.0
	count := 0
	for _, log := range logs {
		if log.Mode == model.ModeBrand && log.LoggedAt.After(windowStart) {
			sum += log.Price
			count++
		}
	}
	if count >= BenchmarkMinLogs {
		return sum / float64(count), BenchmarkPersonalized
	}
	if stats.CafeBenchmark != nil {
		return *stats.CafeBenchmark, BenchmarkManual
	}
	return DefaultBenchmarkPrice, BenchmarkDefault
}

// AvgBeanCostPerGram is the mean unit cost over all bean records. No beans
// means no estimated cost, not an error. A bag recorded with zero total
// weight contributes a zero unit cost instead of dividing by zero.
func AvgBeanCostPerGram(beans []model.Bean) float64 {
	if len(beans) == 0 {
		return 0
	}
	total := 0.0
	for _, b := range beans {
		if b.TotalWeightG > 0 {
			total += b.Price / b.TotalWeightG
		}
	}
	return total / float64(len(beans))
}

// HomeCupCost prices one home-brewed log at the current average bean cost.
// Costs are deliberately recomputed live, so they shift as the warehouse
// changes; per-cup snapshotting was considered and rejected to match the
// source behavior.
func HomeCupCost(log model.IntakeLog, avgCostPerGram float64) float64 {
	return DoseOrDefault(log) * avgCostPerGram
}

type SavingsSummary struct {
	BenchmarkPrice  float64         `json:"benchmark_price"`
	BenchmarkSource BenchmarkSource `json:"benchmark_source"`
	TotalSavings    float64         `json:"total_savings"`
	MonthHomeCost   float64         `json:"month_home_cost"`
	HomeCups        int             `json:"home_cups"`
}

// Savings accumulates (benchmark - cup cost) over every home-brewed log.
// The aggregate is clamped at zero: pricey beans never show as negative
// savings. The current calendar month's home-brew spend is split out.
func Savings(logs []model.IntakeLog, beans []model.Bean, stats model.WalletStats, now time.Time) SavingsSummary {
	benchmark, source := ResolveBenchmark(logs, stats, now)
	avgCost := AvgBeanCostPerGram(beans)

	summary := SavingsSummary{BenchmarkPrice: benchmark, BenchmarkSource: source}
	savings := 0.0
	for _, log := range logs {
		if log.Mode != model.ModeHome {
			continue
		}
		cupCost := HomeCupCost(log, avgCost)
		savings += benchmark - cupCost
		summary.HomeCups++
		if sameCalendarMonth(log.LoggedAt, now) {
			summary.MonthHomeCost += cupCost
		}
	}
	summary.TotalSavings = math.Max(0, savings)
	return summary
}

// MonthlySpend sums the price of every log, any mode, in now's calendar month.
func MonthlySpend(logs []model.IntakeLog, now time.Time) float64 {
	total := 0.0
	for _, log := range logs {
		if sameCalendarMonth(log.LoggedAt, now) {
			total += log.Price
		}
	}
	return total
}

type BudgetUsage struct {
	Spent       float64 `json:"spent"`
	Budget      float64 `json:"budget"`
	PercentUsed float64 `json:"percent_used"`
	OverBudget  bool    `json:"over_budget"`
}

// BudgetStatus compares monthly spend to the budget. PercentUsed is clamped
// to 100 for display; OverBudget carries the real state.
func BudgetStatus(spent, budget float64) BudgetUsage {
	usage := BudgetUsage{Spent: spent, Budget: budget}
	if budget > 0 {
		usage.PercentUsed = math.Min(spent/budget*100, 100)
		usage.OverBudget = spent > budget
	}
	return usage
}

type GoalProgress struct {
	Goal        string  `json:"goal"`
	TargetPrice float64 `json:"target_price"`
	Accumulated float64 `json:"accumulated"`
	Percent     float64 `json:"percent"`
}

// GoalStatus expresses accumulated savings against the goal price, clamped
// to [0, 100]. A non-positive goal price reports zero progress rather than
// dividing; the settings boundary rejects it anyway.
func GoalStatus(stats model.WalletStats, totalSavings float64) GoalProgress {
	progress := GoalProgress{
		Goal:        stats.SavingsGoal,
		TargetPrice: stats.GoalPrice,
		Accumulated: totalSavings,
	}
	if stats.GoalPrice > 0 {
		progress.Percent = math.Min(math.Max(totalSavings/stats.GoalPrice, 0), 1) * 100
	}
	return progress
}
