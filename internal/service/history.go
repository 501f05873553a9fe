package service

import (
	"database/sql"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/model"
)

type DayHistory struct {
	Date       string  `json:"date"`
	Cups       int     `json:"cups"`
	CaffeineMg float64 `json:"caffeine_mg"`
	Spent      float64 `json:"spent"`
}

type HistoryReport struct {
	FromDate string       `json:"from_date"`
	ToDate   string       `json:"to_date"`
	Days     []DayHistory `json:"days"`
	Weekly   []DayHistory `json:"weekly"`
}

// History groups the log per calendar day over a trailing window ending
// today, plus a fixed last-7-days strip for the weekly view. Days without
// cups are included so the series plots evenly.
func History(db *sql.DB, now time.Time, windowDays int) (*HistoryReport, error) {
	if windowDays <= 0 {
		windowDays = 14
	}
	logs, err := AllLogs(db)
	if err != nil {
		return nil, err
	}

	end := beginningOfDay(now)
	start := end.AddDate(0, 0, -(windowDays - 1))

	report := &HistoryReport{
		FromDate: start.Format("2006-01-02"),
		ToDate:   end.Format("2006-01-02"),
		Days:     groupByDay(logs, start, windowDays),
	}
	weekStart := end.AddDate(0, 0, -6)
	report.Weekly = groupByDay(logs, weekStart, 7)
	return report, nil
}

func groupByDay(logs []model.IntakeLog, start time.Time, days int) []DayHistory {
	out := make([]DayHistory, days)
	for i := range out {
		out[i].Date = start.AddDate(0, 0, i).Format("2006-01-02")
	}
	index := make(map[string]*DayHistory, days)
	for i := range out {
		index[out[i].Date] = &out[i]
	}
	for _, log := range logs {
		day, ok := index[log.LoggedAt.Format("2006-01-02")]
		if !ok {
			continue
		}
		day.Cups++
		day.CaffeineMg += log.CaffeineMg
		day.Spent += log.Price
	}
	return out
}
