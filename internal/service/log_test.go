package service_test

import (
	"testing"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/model"
	"github.com/coffeehead/coffeehead-cli/internal/service"
)

func TestCreateLogValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	cases := []struct {
		name string
		in   service.CreateLogInput
	}{
		{"empty name", service.CreateLogInput{Mode: model.ModeBrand}},
		{"negative caffeine", service.CreateLogInput{Name: "Latte", CaffeineMg: -1, Mode: model.ModeBrand}},
		{"negative price", service.CreateLogInput{Name: "Latte", Price: -1, Mode: model.ModeBrand}},
		{"bad mode", service.CreateLogInput{Name: "Latte", Mode: "TAKEAWAY"}},
		{"brand with bean", service.CreateLogInput{Name: "Latte", Mode: model.ModeBrand, BeanID: "b1"}},
		{"home with brand", service.CreateLogInput{Name: "Drip", Mode: model.ModeHome, BrandID: "luckin"}},
		{"zero dose", service.CreateLogInput{Name: "Drip", Mode: model.ModeHome, DoseGrams: floatPtr(0)}},
	}
	for _, c := range cases {
		if _, err := service.CreateLog(db, c.in); err == nil {
			t.Fatalf("%s: expected validation error", c.name)
		}
	}
}

func TestCreateLogDrawsDownExplicitBean(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	beanID, err := service.AddBean(db, service.AddBeanInput{Name: "Yirgacheffe", TotalWeightG: 250, Price: 100})
	if err != nil {
		t.Fatalf("add bean: %v", err)
	}

	if _, err := service.CreateLog(db, service.CreateLogInput{
		Name:       "Hand Drip",
		CaffeineMg: 160,
		Mode:       model.ModeHome,
		BeanID:     beanID,
		DoseGrams:  floatPtr(20),
	}); err != nil {
		t.Fatalf("create home log: %v", err)
	}

	bean, err := service.GetBean(db, beanID)
	if err != nil {
		t.Fatalf("get bean: %v", err)
	}
	if bean.CurrentWeightG != 230 {
		t.Fatalf("expected 230g remaining, got %v", bean.CurrentWeightG)
	}
}

func TestCreateLogFallsBackToOpenedBean(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	unopenedID, err := service.AddBean(db, service.AddBeanInput{Name: "Sealed Bag", TotalWeightG: 250, Price: 90})
	if err != nil {
		t.Fatalf("add unopened bean: %v", err)
	}
	openedID, err := service.AddBean(db, service.AddBeanInput{Name: "Open Bag", TotalWeightG: 250, Price: 100})
	if err != nil {
		t.Fatalf("add opened bean: %v", err)
	}
	if err := service.OpenBean(db, openedID); err != nil {
		t.Fatalf("open bean: %v", err)
	}

	// Default 18g dose, no explicit bean: only the opened bag is touched.
	if _, err := service.CreateLog(db, service.CreateLogInput{
		Name:       "Americano",
		CaffeineMg: 150,
		Mode:       model.ModeHome,
	}); err != nil {
		t.Fatalf("create home log: %v", err)
	}

	opened, err := service.GetBean(db, openedID)
	if err != nil {
		t.Fatalf("get opened bean: %v", err)
	}
	if opened.CurrentWeightG != 232 {
		t.Fatalf("expected 232g in the opened bag, got %v", opened.CurrentWeightG)
	}
	unopened, err := service.GetBean(db, unopenedID)
	if err != nil {
		t.Fatalf("get unopened bean: %v", err)
	}
	if unopened.CurrentWeightG != 250 {
		t.Fatalf("expected the sealed bag untouched, got %v", unopened.CurrentWeightG)
	}
}

func TestCreateLogClampsBeanAtZero(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	beanID, err := service.AddBean(db, service.AddBeanInput{Name: "Last Grams", TotalWeightG: 10, Price: 10})
	if err != nil {
		t.Fatalf("add bean: %v", err)
	}

	if _, err := service.CreateLog(db, service.CreateLogInput{
		Name:      "Drip",
		Mode:      model.ModeHome,
		BeanID:    beanID,
		DoseGrams: floatPtr(18),
	}); err != nil {
		t.Fatalf("create home log: %v", err)
	}

	bean, err := service.GetBean(db, beanID)
	if err != nil {
		t.Fatalf("get bean: %v", err)
	}
	if bean.CurrentWeightG != 0 {
		t.Fatalf("expected weight clamped to 0, got %v", bean.CurrentWeightG)
	}
}

func TestDeleteLogDoesNotRestoreBeanWeight(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	beanID, err := service.AddBean(db, service.AddBeanInput{Name: "Gesha", TotalWeightG: 200, Price: 120})
	if err != nil {
		t.Fatalf("add bean: %v", err)
	}
	logID, err := service.CreateLog(db, service.CreateLogInput{
		Name:      "Drip",
		Mode:      model.ModeHome,
		BeanID:    beanID,
		DoseGrams: floatPtr(20),
	})
	if err != nil {
		t.Fatalf("create home log: %v", err)
	}

	if err := service.DeleteLog(db, logID); err != nil {
		t.Fatalf("delete log: %v", err)
	}

	bean, err := service.GetBean(db, beanID)
	if err != nil {
		t.Fatalf("get bean: %v", err)
	}
	if bean.CurrentWeightG != 180 {
		t.Fatalf("expected draw-down to stay after delete, got %v", bean.CurrentWeightG)
	}
}

func TestUpdateLogEditsWithoutRedecrement(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	beanID, err := service.AddBean(db, service.AddBeanInput{Name: "Bourbon", TotalWeightG: 200, Price: 80})
	if err != nil {
		t.Fatalf("add bean: %v", err)
	}
	logID, err := service.CreateLog(db, service.CreateLogInput{
		Name:      "Drip",
		Mode:      model.ModeHome,
		BeanID:    beanID,
		DoseGrams: floatPtr(20),
	})
	if err != nil {
		t.Fatalf("create home log: %v", err)
	}

	if err := service.UpdateLog(db, service.UpdateLogInput{
		ID:         logID,
		Name:       "Afternoon Drip",
		CaffeineMg: 140,
		Price:      2,
		LoggedAt:   time.Now().Add(-time.Hour),
	}); err != nil {
		t.Fatalf("update log: %v", err)
	}

	bean, err := service.GetBean(db, beanID)
	if err != nil {
		t.Fatalf("get bean: %v", err)
	}
	if bean.CurrentWeightG != 180 {
		t.Fatalf("expected weight unchanged by edit, got %v", bean.CurrentWeightG)
	}

	logs, err := service.ListLogs(db, service.ListLogsFilter{})
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 1 || logs[0].Name != "Afternoon Drip" || logs[0].CaffeineMg != 140 {
		t.Fatalf("expected edited log, got %+v", logs)
	}
}

func TestListLogsFilters(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	entries := []service.CreateLogInput{
		{Name: "Luckin Latte", CaffeineMg: 130, Price: 16, Mode: model.ModeBrand, BrandID: "luckin", LoggedAt: base},
		{Name: "Starbucks Mocha", CaffeineMg: 175, Price: 36, Mode: model.ModeBrand, BrandID: "starbucks", LoggedAt: base.AddDate(0, 0, 1)},
		{Name: "Hand Drip", CaffeineMg: 160, Mode: model.ModeHome, LoggedAt: base.AddDate(0, 0, 2)},
	}
	for _, in := range entries {
		if _, err := service.CreateLog(db, in); err != nil {
			t.Fatalf("create %s: %v", in.Name, err)
		}
	}

	byDate, err := service.ListLogs(db, service.ListLogsFilter{Date: "2026-03-10"})
	if err != nil {
		t.Fatalf("filter by date: %v", err)
	}
	if len(byDate) != 1 || byDate[0].Name != "Luckin Latte" {
		t.Fatalf("expected only the first cup on 2026-03-10, got %+v", byDate)
	}

	byMode, err := service.ListLogs(db, service.ListLogsFilter{Mode: model.ModeHome})
	if err != nil {
		t.Fatalf("filter by mode: %v", err)
	}
	if len(byMode) != 1 || byMode[0].Name != "Hand Drip" {
		t.Fatalf("expected only the home cup, got %+v", byMode)
	}

	byBrand, err := service.ListLogs(db, service.ListLogsFilter{BrandID: "starbucks"})
	if err != nil {
		t.Fatalf("filter by brand: %v", err)
	}
	if len(byBrand) != 1 || byBrand[0].Name != "Starbucks Mocha" {
		t.Fatalf("expected only the starbucks cup, got %+v", byBrand)
	}

	if _, err := service.ListLogs(db, service.ListLogsFilter{Date: "2026-03-10", FromDate: "2026-03-09"}); err == nil {
		t.Fatalf("expected error combining --date with --from")
	}

	ranged, err := service.ListLogs(db, service.ListLogsFilter{FromDate: "2026-03-11", ToDate: "2026-03-12"})
	if err != nil {
		t.Fatalf("filter by range: %v", err)
	}
	if len(ranged) != 2 {
		t.Fatalf("expected two cups in range, got %d", len(ranged))
	}
}
