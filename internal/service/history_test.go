package service_test

import (
	"testing"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/model"
	"github.com/coffeehead/coffeehead-cli/internal/service"
)

func TestHistoryZeroFillsEmptyDays(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.Local)
	entries := []service.CreateLogInput{
		{Name: "Latte", CaffeineMg: 130, Price: 16, Mode: model.ModeBrand, BrandID: "luckin", LoggedAt: now.AddDate(0, 0, -1)},
		{Name: "Mocha", CaffeineMg: 175, Price: 36, Mode: model.ModeBrand, BrandID: "starbucks", LoggedAt: now.AddDate(0, 0, -1)},
		{Name: "Hand Drip", CaffeineMg: 160, Mode: model.ModeHome, LoggedAt: now},
	}
	for _, in := range entries {
		if _, err := service.CreateLog(db, in); err != nil {
			t.Fatalf("create %s: %v", in.Name, err)
		}
	}

	report, err := service.History(db, now, 14)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(report.Days) != 14 {
		t.Fatalf("expected 14 days, got %d", len(report.Days))
	}
	if len(report.Weekly) != 7 {
		t.Fatalf("expected 7 weekly days, got %d", len(report.Weekly))
	}
	if report.ToDate != "2026-03-15" || report.FromDate != "2026-03-02" {
		t.Fatalf("unexpected window %s..%s", report.FromDate, report.ToDate)
	}

	byDate := make(map[string]service.DayHistory, len(report.Days))
	for _, d := range report.Days {
		byDate[d.Date] = d
	}
	if d := byDate["2026-03-14"]; d.Cups != 2 || d.CaffeineMg != 305 || d.Spent != 52 {
		t.Fatalf("unexpected aggregate for 2026-03-14: %+v", d)
	}
	if d := byDate["2026-03-15"]; d.Cups != 1 || d.CaffeineMg != 160 {
		t.Fatalf("unexpected aggregate for 2026-03-15: %+v", d)
	}
	if d := byDate["2026-03-10"]; d.Cups != 0 || d.CaffeineMg != 0 || d.Spent != 0 {
		t.Fatalf("expected an empty day to be zero-filled: %+v", d)
	}
}
