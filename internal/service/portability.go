package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/model"
)

type ExportLog struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	CaffeineMg float64  `json:"caffeine_mg"`
	Price      float64  `json:"price"`
	Mode       string   `json:"mode"`
	BrandID    string   `json:"brand_id,omitempty"`
	BeanID     string   `json:"bean_id,omitempty"`
	DoseGrams  *float64 `json:"dose_g,omitempty"`
	Size       string   `json:"size,omitempty"`
	Milk       string   `json:"milk,omitempty"`
	Ice        string   `json:"ice,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	LoggedAt   string   `json:"logged_at"`
}

type ExportBean struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Origin         string   `json:"origin,omitempty"`
	RoastDate      string   `json:"roast_date"`
	DateOpened     string   `json:"date_opened,omitempty"`
	TotalWeightG   float64  `json:"total_weight_g"`
	CurrentWeightG float64  `json:"current_weight_g"`
	Price          float64  `json:"price"`
	FlavorProfile  []string `json:"flavor_profile,omitempty"`
	IsArchived     bool     `json:"is_archived"`
	HasBeenOpened  bool     `json:"has_been_opened"`
	ImageRef       string   `json:"image_ref,omitempty"`
}

// ExportDocument is the backup format: four named sections plus the export
// timestamp. Sections are pointers so a partial document distinguishes
// "absent" from "present but empty".
type ExportDocument struct {
	ExportedAt string             `json:"exported_at"`
	Logs       *[]ExportLog       `json:"logs,omitempty"`
	Beans      *[]ExportBean      `json:"beans,omitempty"`
	UserStats  *model.WalletStats `json:"userStats,omitempty"`
	Profile    *model.UserProfile `json:"profile,omitempty"`
}

func ExportSnapshot(db *sql.DB) (*ExportDocument, error) {
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
	profile, err := GetProfile(db)
	if err != nil {
		return nil, err
	}

	exportLogs := make([]ExportLog, 0, len(logs))
	for _, l := range logs {
		exportLogs = append(exportLogs, ExportLog{
			ID:         l.ID,
			Name:       l.Name,
			CaffeineMg: l.CaffeineMg,
			Price:      l.Price,
			Mode:       string(l.Mode),
			BrandID:    l.BrandID,
			BeanID:     l.BeanID,
			DoseGrams:  l.DoseGrams,
			Size:       l.Size,
			Milk:       l.Milk,
			Ice:        l.Ice,
			Notes:      l.Notes,
			LoggedAt:   l.LoggedAt.Format(time.RFC3339),
		})
	}
	exportBeans := make([]ExportBean, 0, len(beans))
	for _, b := range beans {
		exportBeans = append(exportBeans, ExportBean{
			ID:             b.ID,
			Name:           b.Name,
			Origin:         b.Origin,
			RoastDate:      b.RoastDate,
			DateOpened:     b.DateOpened,
			TotalWeightG:   b.TotalWeightG,
			CurrentWeightG: b.CurrentWeightG,
			Price:          b.Price,
			FlavorProfile:  b.FlavorProfile,
			IsArchived:     b.IsArchived,
			HasBeenOpened:  b.HasBeenOpened,
			ImageRef:       b.ImageRef,
		})
	}

	return &ExportDocument{
		ExportedAt: time.Now().Format(time.RFC3339),
		Logs:       &exportLogs,
		Beans:      &exportBeans,
		UserStats:  &stats,
		Profile:    &profile,
	}, nil
}

// ParseExportDocument decodes and fully validates a backup document before
// anything touches the database. A parse or validation failure leaves state
// untouched by construction.
func ParseExportDocument(data []byte) (*ExportDocument, error) {
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse import document: %w", err)
	}
	if doc.Logs == nil && doc.Beans == nil && doc.UserStats == nil && doc.Profile == nil {
		return nil, fmt.Errorf("import document has no recognized sections")
	}
	if doc.Logs != nil {
		for i, l := range *doc.Logs {
			if l.Mode != string(model.ModeBrand) && l.Mode != string(model.ModeHome) {
				return nil, fmt.Errorf("log %d: mode must be BRAND or HOME", i)
			}
			if l.CaffeineMg < 0 || l.Price < 0 {
				return nil, fmt.Errorf("log %d: caffeine and price must be >= 0", i)
			}
			if _, err := time.Parse(time.RFC3339, l.LoggedAt); err != nil {
				return nil, fmt.Errorf("log %d: invalid logged_at %q", i, l.LoggedAt)
			}
		}
	}
	if doc.Beans != nil {
		for i, b := range *doc.Beans {
			if b.TotalWeightG < 0 || b.CurrentWeightG < 0 || b.Price < 0 {
				return nil, fmt.Errorf("bean %d: weights and price must be >= 0", i)
			}
		}
	}
	// Settings documents pass the same gates as the settings commands, so an
	// import can never smuggle in numbers the engines would choke on.
	if doc.Profile != nil {
		if err := validateProfile(*doc.Profile); err != nil {
			return nil, fmt.Errorf("profile: %w", err)
		}
	}
	if doc.UserStats != nil {
		if err := validateWalletStats(*doc.UserStats); err != nil {
			return nil, fmt.Errorf("userStats: %w", err)
		}
	}
	return &doc, nil
}

type ImportReport struct {
	LogsReplaced  int  `json:"logs_replaced"`
	BeansReplaced int  `json:"beans_replaced"`
	StatsApplied  bool `json:"stats_applied"`
	ProfileSet    bool `json:"profile_set"`
}

// ImportSnapshot applies a parsed document in one transaction. Each present
// section replaces its collection wholesale; absent sections are untouched.
func ImportSnapshot(db *sql.DB, doc *ExportDocument) (*ImportReport, error) {
	if doc == nil {
		return nil, fmt.Errorf("import document is required")
	}
	report := &ImportReport{}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if doc.Logs != nil {
		if _, err := tx.Exec(`DELETE FROM logs`); err != nil {
			return nil, fmt.Errorf("clear logs for import: %w", err)
		}
		for _, l := range *doc.Logs {
			_, err := tx.Exec(`
INSERT INTO logs(id, name, caffeine_mg, price, mode, brand_id, bean_id, dose_g, size, milk, ice, notes, logged_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, l.ID, l.Name, l.CaffeineMg, l.Price, l.Mode, l.BrandID, l.BeanID, l.DoseGrams, l.Size, l.Milk, l.Ice, l.Notes, l.LoggedAt)
			if err != nil {
				return nil, fmt.Errorf("import log %s: %w", l.ID, err)
			}
			report.LogsReplaced++
		}
	}

	if doc.Beans != nil {
		if _, err := tx.Exec(`DELETE FROM beans`); err != nil {
			return nil, fmt.Errorf("clear beans for import: %w", err)
		}
		for _, b := range *doc.Beans {
			flavors, err := json.Marshal(normalizeFlavors(b.FlavorProfile))
			if err != nil {
				return nil, fmt.Errorf("encode flavor profile for bean %s: %w", b.ID, err)
			}
			_, err = tx.Exec(`
INSERT INTO beans(id, name, origin, roast_date, date_opened, total_weight_g, current_weight_g, price, flavor_profile, is_archived, has_been_opened, image_ref)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, b.ID, b.Name, b.Origin, b.RoastDate, b.DateOpened, b.TotalWeightG, b.CurrentWeightG, b.Price, string(flavors), boolToInt(b.IsArchived), boolToInt(b.HasBeenOpened), b.ImageRef)
			if err != nil {
				return nil, fmt.Errorf("import bean %s: %w", b.ID, err)
			}
			report.BeansReplaced++
		}
	}

	if doc.UserStats != nil {
		if err := setConfigDocTx(tx, configKeyWalletStats, doc.UserStats); err != nil {
			return nil, err
		}
		report.StatsApplied = true
	}
	if doc.Profile != nil {
		if err := setConfigDocTx(tx, configKeyProfile, doc.Profile); err != nil {
			return nil, err
		}
		report.ProfileSet = true
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import tx: %w", err)
	}
	return report, nil
}

func setConfigDocTx(tx *sql.Tx, key string, doc any) error {
	value, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode config %q: %w", key, err)
	}
	_, err = tx.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, string(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
