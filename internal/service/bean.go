package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/model"
	"github.com/google/uuid"
)

type AddBeanInput struct {
	Name          string
	Origin        string
	RoastDate     string
	TotalWeightG  float64
	Price         float64
	FlavorProfile []string
	ImageRef      string
}

type UpdateBeanInput struct {
	ID             string
	Name           string
	Origin         string
	RoastDate      string
	CurrentWeightG float64
	Price          float64
	ImageRef       string
}

func AddBean(db *sql.DB, in AddBeanInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return "", fmt.Errorf("bean name is required")
	}
	if err := validatePositiveFloat("total weight", in.TotalWeightG); err != nil {
		return "", err
	}
	if err := validateNonNegativeFloat("price", in.Price); err != nil {
		return "", err
	}
	in.RoastDate = strings.TrimSpace(in.RoastDate)
	if in.RoastDate == "" {
		in.RoastDate = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", in.RoastDate); err != nil {
		return "", fmt.Errorf("invalid roast date %q (expected YYYY-MM-DD)", in.RoastDate)
	}

	flavors, err := json.Marshal(normalizeFlavors(in.FlavorProfile))
	if err != nil {
		return "", fmt.Errorf("marshal flavor profile: %w", err)
	}

	id := uuid.NewString()
	_, err = db.Exec(`
INSERT INTO beans(id, name, origin, roast_date, total_weight_g, current_weight_g, price, flavor_profile, image_ref)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
`, id, in.Name, strings.TrimSpace(in.Origin), in.RoastDate, in.TotalWeightG, in.TotalWeightG, in.Price, string(flavors), strings.TrimSpace(in.ImageRef))
	if err != nil {
		return "", fmt.Errorf("insert bean: %w", err)
	}
	return id, nil
}

func normalizeFlavors(flavors []string) []string {
	out := make([]string, 0, len(flavors))
	for _, f := range flavors {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

type ListBeansFilter struct {
	IncludeArchived bool
	ArchivedOnly    bool
}

func ListBeans(db *sql.DB, f ListBeansFilter) ([]model.Bean, error) {
	query := `
SELECT id, name, origin, roast_date, date_opened, total_weight_g, current_weight_g, price, flavor_profile, is_archived, has_been_opened, image_ref
FROM beans`
	switch {
	case f.ArchivedOnly:
		query += ` WHERE is_archived = 1`
	case !f.IncludeArchived:
		query += ` WHERE is_archived = 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list beans: %w", err)
	}
	defer rows.Close()

	beans := make([]model.Bean, 0)
	for rows.Next() {
		bean, err := scanBean(rows)
		if err != nil {
			return nil, err
		}
		beans = append(beans, bean)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate beans: %w", err)
	}
	return beans, nil
}

// AllBeans loads every record, archived included, for the cost engine. The
// average unit cost deliberately spans the whole warehouse history.
func AllBeans(db *sql.DB) ([]model.Bean, error) {
	return ListBeans(db, ListBeansFilter{IncludeArchived: true})
}

func scanBean(rows *sql.Rows) (model.Bean, error) {
	var b model.Bean
	var flavorsRaw string
	var archived, opened int
	if err := rows.Scan(&b.ID, &b.Name, &b.Origin, &b.RoastDate, &b.DateOpened, &b.TotalWeightG, &b.CurrentWeightG, &b.Price, &flavorsRaw, &archived, &opened, &b.ImageRef); err != nil {
		return model.Bean{}, fmt.Errorf("scan bean: %w", err)
	}
	b.IsArchived = archived != 0
	b.HasBeenOpened = opened != 0
	if flavorsRaw != "" {
		if err := json.Unmarshal([]byte(flavorsRaw), &b.FlavorProfile); err != nil {
			return model.Bean{}, fmt.Errorf("decode flavor profile for bean %s: %w", b.ID, err)
		}
	}
	return b, nil
}

func GetBean(db *sql.DB, id string) (*model.Bean, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("bean id is required")
	}
	rows, err := db.Query(`
SELECT id, name, origin, roast_date, date_opened, total_weight_g, current_weight_g, price, flavor_profile, is_archived, has_been_opened, image_ref
FROM beans WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get bean %s: %w", id, err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get bean %s: %w", id, err)
		}
		return nil, nil
	}
	bean, err := scanBean(rows)
	if err != nil {
		return nil, err
	}
	return &bean, nil
}

// OpenBean flips a bag to opened exactly once, stamping the opening date.
func OpenBean(db *sql.DB, id string) error {
	bean, err := GetBean(db, id)
	if err != nil {
		return err
	}
	if bean == nil {
		return fmt.Errorf("bean %s not found", id)
	}
	if bean.HasBeenOpened {
		return fmt.Errorf("bean %s is already opened", id)
	}
	_, err = db.Exec(`
UPDATE beans
SET has_been_opened = 1, date_opened = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, time.Now().Format("2006-01-02"), id)
	if err != nil {
		return fmt.Errorf("open bean %s: %w", id, err)
	}
	return nil
}

// UpdateBean edits bag fields directly, the remaining weight included. The
// engine does not police current <= total here; the automatic draw-down is
// the only clamped path.
func UpdateBean(db *sql.DB, in UpdateBeanInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("bean id is required")
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("bean name is required")
	}
	if err := validateNonNegativeFloat("current weight", in.CurrentWeightG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("price", in.Price); err != nil {
		return err
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(in.RoastDate)); err != nil {
		return fmt.Errorf("invalid roast date %q (expected YYYY-MM-DD)", in.RoastDate)
	}

	res, err := db.Exec(`
UPDATE beans
SET name = ?, origin = ?, roast_date = ?, current_weight_g = ?, price = ?, image_ref = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, in.Name, strings.TrimSpace(in.Origin), strings.TrimSpace(in.RoastDate), in.CurrentWeightG, in.Price, strings.TrimSpace(in.ImageRef), in.ID)
	if err != nil {
		return fmt.Errorf("update bean %s: %w", in.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for bean %s: %w", in.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("bean %s not found", in.ID)
	}
	return nil
}

// ArchiveBean retires a depleted or abandoned bag. Archived bags stay on
// record until explicitly deleted.
func ArchiveBean(db *sql.DB, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("bean id is required")
	}
	res, err := db.Exec(`UPDATE beans SET is_archived = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("archive bean %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for bean %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("bean %s not found", id)
	}
	return nil
}

// DeleteBean removes the record. Logs that reference it keep their bean id;
// history is not rewritten.
func DeleteBean(db *sql.DB, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("bean id is required")
	}
	res, err := db.Exec(`DELETE FROM beans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete bean %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for bean %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("bean %s not found", id)
	}
	return nil
}

// Freshness buckets a bag by days since roast: a short rest, a peak window,
// then stale.
func Freshness(roastDate string, now time.Time) model.FreshnessState {
	roast, err := time.ParseInLocation("2006-01-02", roastDate, time.Local)
	if err != nil {
		return model.FreshnessStale
	}
	elapsedDays := int(now.Sub(roast).Hours() / 24)
	switch {
	case elapsedDays <= FreshnessAgingMaxDays:
		return model.FreshnessAging
	case elapsedDays <= FreshnessPeakMaxDays:
		return model.FreshnessPeak
	default:
		return model.FreshnessStale
	}
}

type ArchivedGroup struct {
	Bean  model.Bean
	Count int
}

// ArchivedGroups collapses retired bags case-insensitively by name, counting
// repeat purchases of the same bean.
func ArchivedGroups(beans []model.Bean) []ArchivedGroup {
	order := make([]string, 0)
	groups := make(map[string]*ArchivedGroup)
	for _, b := range beans {
		if !b.IsArchived {
			continue
		}
		key := normalizeName(b.Name)
		if g, ok := groups[key]; ok {
			g.Count++
			if g.Bean.ImageRef == "" && b.ImageRef != "" {
				g.Bean = b
			}
			continue
		}
		groups[key] = &ArchivedGroup{Bean: b, Count: 1}
		order = append(order, key)
	}
	out := make([]ArchivedGroup, 0, len(groups))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	return out
}
