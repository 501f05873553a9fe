package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/model"
	"github.com/google/uuid"
)

type CreateLogInput struct {
	Name       string
	CaffeineMg float64
	Price      float64
	Mode       model.CoffeeMode
	BrandID    string
	BeanID     string
	DoseGrams  *float64
	Size       string
	Milk       string
	Ice        string
	Notes      string
	LoggedAt   time.Time
}

type ListLogsFilter struct {
	Date     string
	FromDate string
	ToDate   string
	Mode     model.CoffeeMode
	BrandID  string
	Limit    int
}

type UpdateLogInput struct {
	ID         string
	Name       string
	CaffeineMg float64
	Price      float64
	Notes      string
	LoggedAt   time.Time
}

// CreateLog appends one cup to the log. For a HOME cup it also performs the
// warehouse side effect: the referenced bag (or the first opened, unarchived
// bag with enough left) loses the dose, clamped at zero grams. The decrement
// lives here in the coordinator; the engines never mutate inventory.
func CreateLog(db *sql.DB, in CreateLogInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return "", fmt.Errorf("log name is required")
	}
	if err := validateNonNegativeFloat("caffeine", in.CaffeineMg); err != nil {
		return "", err
	}
	if err := validateNonNegativeFloat("price", in.Price); err != nil {
		return "", err
	}
	if in.Mode != model.ModeBrand && in.Mode != model.ModeHome {
		return "", fmt.Errorf("mode must be BRAND or HOME")
	}
	if in.Mode == model.ModeBrand && in.BeanID != "" {
		return "", fmt.Errorf("a BRAND log cannot reference a bean")
	}
	if in.Mode == model.ModeHome && in.BrandID != "" {
		return "", fmt.Errorf("a HOME log cannot reference a brand")
	}
	if in.DoseGrams != nil && *in.DoseGrams <= 0 {
		return "", fmt.Errorf("dose must be > 0 grams")
	}
	if in.LoggedAt.IsZero() {
		in.LoggedAt = time.Now()
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin log tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	_, err = tx.Exec(`
INSERT INTO logs(id, name, caffeine_mg, price, mode, brand_id, bean_id, dose_g, size, milk, ice, notes, logged_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, id, in.Name, in.CaffeineMg, in.Price, string(in.Mode), in.BrandID, in.BeanID, in.DoseGrams,
		strings.TrimSpace(in.Size), strings.TrimSpace(in.Milk), strings.TrimSpace(in.Ice),
		strings.TrimSpace(in.Notes), in.LoggedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("insert log: %w", err)
	}

	if in.Mode == model.ModeHome {
		dose := DefaultDoseGrams
		if in.DoseGrams != nil {
			dose = *in.DoseGrams
		}
		if err := drawDownBean(tx, in.BeanID, dose); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit log tx: %w", err)
	}
	return id, nil
}

// drawDownBean decrements dose grams from the target bag. With no explicit
// id, it falls back to the oldest opened, unarchived bag that still holds at
// least the dose. Finding no candidate is not an error; the cup is simply
// logged without touching the warehouse.
func drawDownBean(tx *sql.Tx, beanID string, dose float64) error {
	if beanID == "" {
		err := tx.QueryRow(`
SELECT id FROM beans
WHERE has_been_opened = 1 AND is_archived = 0 AND current_weight_g >= ?
ORDER BY created_at ASC
LIMIT 1
`, dose).Scan(&beanID)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("find bean to draw from: %w", err)
		}
	}
	res, err := tx.Exec(`
UPDATE beans
SET current_weight_g = MAX(0, current_weight_g - ?), updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, dose, beanID)
	if err != nil {
		return fmt.Errorf("draw down bean %s: %w", beanID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for bean %s: %w", beanID, err)
	}
	if affected == 0 {
		return fmt.Errorf("bean %s not found", beanID)
	}
	return nil
}

func ListLogs(db *sql.DB, f ListLogsFilter) ([]model.IntakeLog, error) {
	if strings.TrimSpace(f.Date) != "" && (strings.TrimSpace(f.FromDate) != "" || strings.TrimSpace(f.ToDate) != "") {
		return nil, fmt.Errorf("--date cannot be combined with --from or --to")
	}

	query := `
SELECT id, name, caffeine_mg, price, mode, brand_id, bean_id, dose_g, size, milk, ice, IFNULL(notes, ''), logged_at
FROM logs
WHERE 1=1`
	args := make([]any, 0)

	if strings.TrimSpace(f.Date) != "" {
		start, err := parseDateStart(f.Date)
		if err != nil {
			return nil, err
		}
		query += ` AND logged_at >= ? AND logged_at < ?`
		args = append(args, start.Format(time.RFC3339), start.Add(24*time.Hour).Format(time.RFC3339))
	}
	if strings.TrimSpace(f.FromDate) != "" {
		from, err := parseDateStart(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND logged_at >= ?`
		args = append(args, from.Format(time.RFC3339))
	}
	if strings.TrimSpace(f.ToDate) != "" {
		to, err := parseDateStart(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND logged_at < ?`
		args = append(args, to.Add(24*time.Hour).Format(time.RFC3339))
	}
	if f.Mode != "" {
		query += ` AND mode = ?`
		args = append(args, string(f.Mode))
	}
	if strings.TrimSpace(f.BrandID) != "" {
		query += ` AND brand_id = ?`
		args = append(args, f.BrandID)
	}
	query += ` ORDER BY logged_at DESC`

	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.IntakeLog, 0)
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate logs: %w", err)
	}
	return logs, nil
}

// AllLogs loads the complete history oldest-first for the engines.
func AllLogs(db *sql.DB) ([]model.IntakeLog, error) {
	rows, err := db.Query(`
SELECT id, name, caffeine_mg, price, mode, brand_id, bean_id, dose_g, size, milk, ice, IFNULL(notes, ''), logged_at
FROM logs
ORDER BY logged_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("load logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.IntakeLog, 0)
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate logs: %w", err)
	}
	return logs, nil
}

func scanLog(rows *sql.Rows) (model.IntakeLog, error) {
	var log model.IntakeLog
	var mode, loggedAtRaw string
	var dose sql.NullFloat64
	if err := rows.Scan(&log.ID, &log.Name, &log.CaffeineMg, &log.Price, &mode, &log.BrandID, &log.BeanID, &dose, &log.Size, &log.Milk, &log.Ice, &log.Notes, &loggedAtRaw); err != nil {
		return model.IntakeLog{}, fmt.Errorf("scan log: %w", err)
	}
	log.Mode = model.CoffeeMode(mode)
	if dose.Valid {
		v := dose.Float64
		log.DoseGrams = &v
	}
	loggedAt, err := time.Parse(time.RFC3339, loggedAtRaw)
	if err != nil {
		return model.IntakeLog{}, fmt.Errorf("parse logged_at for log %s: %w", log.ID, err)
	}
	log.LoggedAt = loggedAt
	return log, nil
}

// UpdateLog edits a cup in place. Editing never re-runs the warehouse
// decrement, and deleting never restores weight; the draw-down happened at
// logging time and stays history.
func UpdateLog(db *sql.DB, in UpdateLogInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("log id is required")
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("log name is required")
	}
	if err := validateNonNegativeFloat("caffeine", in.CaffeineMg); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("price", in.Price); err != nil {
		return err
	}
	if in.LoggedAt.IsZero() {
		return fmt.Errorf("logged time is required")
	}

	res, err := db.Exec(`
UPDATE logs
SET name = ?, caffeine_mg = ?, price = ?, notes = ?, logged_at = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, in.Name, in.CaffeineMg, in.Price, strings.TrimSpace(in.Notes), in.LoggedAt.Format(time.RFC3339), in.ID)
	if err != nil {
		return fmt.Errorf("update log %s: %w", in.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for log %s: %w", in.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("log %s not found", in.ID)
	}
	return nil
}

func DeleteLog(db *sql.DB, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("log id is required")
	}
	res, err := db.Exec(`DELETE FROM logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete log %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for log %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("log %s not found", id)
	}
	return nil
}
