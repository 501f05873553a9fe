package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/model"
	"github.com/coffeehead/coffeehead-cli/internal/service"
)

func TestHalfLifeMinutesScalesWithWeightAndSleep(t *testing.T) {
	t.Parallel()

	base := model.UserProfile{WeightKg: 70, SleepDifficulty: model.SleepNormal}
	if got := service.HalfLifeMinutes(base); got != 300 {
		t.Fatalf("expected 300 minutes for 70kg Normal, got %v", got)
	}

	easy := model.UserProfile{WeightKg: 70, SleepDifficulty: model.SleepEasy}
	if got := service.HalfLifeMinutes(easy); got != 240 {
		t.Fatalf("expected 240 minutes for Easy sleeper, got %v", got)
	}

	hard := model.UserProfile{WeightKg: 70, SleepDifficulty: model.SleepHard}
	if got := service.HalfLifeMinutes(hard); got != 420 {
		t.Fatalf("expected 420 minutes for Hard sleeper, got %v", got)
	}

	light := model.UserProfile{WeightKg: 35, SleepDifficulty: model.SleepNormal}
	if got := service.HalfLifeMinutes(light); got != 600 {
		t.Fatalf("expected 600 minutes for 35kg Normal, got %v", got)
	}
}

func TestActiveCaffeineDecaysByHalfLife(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	logs := []model.IntakeLog{{CaffeineMg: 150, LoggedAt: now}}

	if got := service.ActiveCaffeineAt(logs, 300, now); got != 150 {
		t.Fatalf("expected full dose at intake time, got %v", got)
	}

	atHalfLife := service.ActiveCaffeineAt(logs, 300, now.Add(300*time.Minute))
	if math.Abs(atHalfLife-75) > 1e-9 {
		t.Fatalf("expected 75mg after one half-life, got %v", atHalfLife)
	}

	atTwo := service.ActiveCaffeineAt(logs, 300, now.Add(600*time.Minute))
	if math.Abs(atTwo-37.5) > 1e-9 {
		t.Fatalf("expected 37.5mg after two half-lives, got %v", atTwo)
	}
}

func TestActiveCaffeineIgnoresFutureLogs(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	logs := []model.IntakeLog{
		{CaffeineMg: 100, LoggedAt: now.Add(-time.Hour)},
		{CaffeineMg: 500, LoggedAt: now.Add(time.Hour)},
	}

	got := service.ActiveCaffeineAt(logs, 300, now)
	want := 100 * math.Pow(0.5, 60.0/300)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected only the past cup to count (%v), got %v", want, got)
	}
}

func TestDecayCurveIsMonotonicAfterLastCup(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	logs := []model.IntakeLog{
		{CaffeineMg: 150, LoggedAt: now.Add(-2 * time.Hour)},
		{CaffeineMg: 130, LoggedAt: now.Add(-30 * time.Minute)},
	}

	points := service.DecayCurve(logs, 300, now, 12)
	if len(points) != 13 {
		t.Fatalf("expected 13 hourly points inclusive, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Value > points[i-1].Value {
			t.Fatalf("curve rose at hour %d: %v -> %v", i, points[i-1].Value, points[i].Value)
		}
	}
}

func TestEstimateSleepTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)

	low := []model.IntakeLog{{CaffeineMg: 40, LoggedAt: now}}
	if est := service.EstimateSleepTime(low, 300, now); !est.ReadyNow {
		t.Fatalf("expected ready-to-sleep below the threshold")
	}

	high := []model.IntakeLog{{CaffeineMg: 200, LoggedAt: now}}
	est := service.EstimateSleepTime(high, 300, now)
	if est.ReadyNow {
		t.Fatalf("expected a sleep estimate for 200mg active")
	}
	wantMinutes := 300 * math.Log2(200.0/50)
	got := est.At.Sub(now).Minutes()
	if math.Abs(got-wantMinutes) > 0.01 {
		t.Fatalf("expected sleep in %.2f minutes, got %.2f", wantMinutes, got)
	}
}

func TestDailyIntakeCountsCalendarDayOnly(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	logs := []model.IntakeLog{
		{CaffeineMg: 100, LoggedAt: time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)},
		{CaffeineMg: 130, LoggedAt: time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local)},
		{CaffeineMg: 999, LoggedAt: time.Date(2026, 3, 9, 23, 59, 0, 0, time.Local)},
	}

	if got := service.DailyIntakeMg(logs, day); got != 230 {
		t.Fatalf("expected 230mg for the day, got %v", got)
	}
}

func TestIntakeLimitStatusThresholds(t *testing.T) {
	t.Parallel()

	if got := service.IntakeLimitStatus(100, 400); got != service.LimitSafe {
		t.Fatalf("expected safe at 25%%, got %s", got)
	}
	if got := service.IntakeLimitStatus(320, 400); got != service.LimitApproaching {
		t.Fatalf("expected approaching at 80%%, got %s", got)
	}
	if got := service.IntakeLimitStatus(400, 400); got != service.LimitOver {
		t.Fatalf("expected over at 100%%, got %s", got)
	}
	if got := service.IntakeLimitStatus(100, 0); got != service.LimitSafe {
		t.Fatalf("expected safe with no limit configured, got %s", got)
	}
}

func TestRecommendedDailyLimit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		weight float64
		sleep  model.SleepDifficulty
		want   float64
	}{
		{70, model.SleepEasy, 350},
		{70, model.SleepNormal, 298},
		{70, model.SleepHard, 245},
		{5, model.SleepEasy, 50},
		{200, model.SleepEasy, 600},
	}
	for _, c := range cases {
		profile := model.UserProfile{WeightKg: c.weight, SleepDifficulty: c.sleep}
		if got := service.RecommendedDailyLimitMg(profile); got != c.want {
			t.Fatalf("weight %v sleep %s: expected %v, got %v", c.weight, c.sleep, c.want, got)
		}
	}
}
