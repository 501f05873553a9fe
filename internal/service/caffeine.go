package service

import (
	"math"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/model"
)

// The decay engine models every logged cup as an injection of caffeine that
// decays exponentially with a per-user half-life. All functions here are pure
// folds over the full log list; nothing is cached between calls, so results
// are consistent no matter when or how often they are recomputed.

// HalfLifeMinutes derives the effective half-life from the profile.
// Heavier users clear faster; hard sleepers get a longer effective half-life
// because the model tracks caffeine's effect on sleep onset, not plasma
// concentration.
func HalfLifeMinutes(profile model.UserProfile) float64 {
	weightFactor := 70 / profile.WeightKg
	sleepFactor := 1.0
	switch profile.SleepDifficulty {
	case model.SleepEasy:
		sleepFactor = 0.8
	case model.SleepHard:
		sleepFactor = 1.4
	}
	return 300 * weightFactor * sleepFactor
}

// ActiveCaffeineAt returns the modeled unmetabolized caffeine at t.
// Logs timestamped after t contribute nothing.
func ActiveCaffeineAt(logs []model.IntakeLog, halfLifeMinutes float64, t time.Time) float64 {
	total := 0.0
	for _, log := range logs {
		elapsed := t.Sub(log.LoggedAt).Minutes()
		if elapsed < 0 {
			continue
		}
		total += log.CaffeineMg * math.Pow(0.5, elapsed/halfLifeMinutes)
	}
	return total
}

type CurvePoint struct {
	At    time.Time `json:"at"`
	Value float64   `json:"value_mg"`
}

// DecayCurve samples the active-caffeine query hourly from `from` for
// `hours` hours, inclusive on both ends.
func DecayCurve(logs []model.IntakeLog, halfLifeMinutes float64, from time.Time, hours int) []CurvePoint {
	points := make([]CurvePoint, 0, hours+1)
	for i := 0; i <= hours; i++ {
		at := from.Add(time.Duration(i) * time.Hour)
		points = append(points, CurvePoint{At: at, Value: ActiveCaffeineAt(logs, halfLifeMinutes, at)})
	}
	return points
}

type SleepEstimate struct {
	ReadyNow bool
	At       time.Time
}

// EstimateSleepTime reports when active caffeine crosses the sleep threshold.
// The total is treated as one aggregate decaying from now, rather than
// solving each cup's crossing individually; an approximation kept from the
// original model.
func EstimateSleepTime(logs []model.IntakeLog, halfLifeMinutes float64, now time.Time) SleepEstimate {
	active := ActiveCaffeineAt(logs, halfLifeMinutes, now)
	if active < SleepThresholdMg {
		return SleepEstimate{ReadyNow: true}
	}
	minutes := halfLifeMinutes * math.Log2(active/SleepThresholdMg)
	return SleepEstimate{At: now.Add(time.Duration(minutes * float64(time.Minute)))}
}

// DailyIntakeMg sums the raw caffeine of logs on day's calendar date.
func DailyIntakeMg(logs []model.IntakeLog, day time.Time) float64 {
	start := beginningOfDay(day)
	end := start.Add(24 * time.Hour)
	total := 0.0
	for _, log := range logs {
		if !log.LoggedAt.Before(start) && log.LoggedAt.Before(end) {
			total += log.CaffeineMg
		}
	}
	return total
}

type LimitStatus string

const (
	LimitSafe        LimitStatus = "safe"
	LimitApproaching LimitStatus = "approaching"
	LimitOver        LimitStatus = "over"
)

func IntakeLimitStatus(intakeMg, dailyLimitMg float64) LimitStatus {
	if dailyLimitMg <= 0 {
		return LimitSafe
	}
	ratio := intakeMg / dailyLimitMg
	switch {
	case ratio >= 1:
		return LimitOver
	case ratio >= LimitApproachingRatio:
		return LimitApproaching
	default:
		return LimitSafe
	}
}

// RecommendedDailyLimitMg is the suggested daily cap: 5 mg per kg, reduced
// for people who struggle to sleep, clamped to [50, 600].
func RecommendedDailyLimitMg(profile model.UserProfile) float64 {
	base := profile.WeightKg * 5
	switch profile.SleepDifficulty {
	case model.SleepHard:
		base *= 0.7
	case model.SleepNormal:
		base *= 0.85
	}
	return math.Round(math.Min(math.Max(base, 50), 600))
}
