package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	DanglingBeanRefs  int `json:"dangling_bean_refs"`
	OverfilledBeans   int `json:"overfilled_beans"`
	NegativeAmounts   int `json:"negative_amounts"`
	InvalidConfigDocs int `json:"invalid_config_docs"`
}

func (r DoctorReport) Clean() bool {
	return r.DanglingBeanRefs == 0 && r.OverfilledBeans == 0 && r.NegativeAmounts == 0 && r.InvalidConfigDocs == 0
}

// RunDoctor checks the invariants the engines assume but do not enforce:
// HOME logs pointing at deleted bags, bags holding more than their capacity,
// negative money/caffeine rows, and unparseable profile/stats documents.
func RunDoctor(db *sql.DB) (*DoctorReport, error) {
	report := &DoctorReport{}

	err := db.QueryRow(`
SELECT COUNT(1) FROM logs
WHERE mode = 'HOME' AND bean_id != '' AND bean_id NOT IN (SELECT id FROM beans)
`).Scan(&report.DanglingBeanRefs)
	if err != nil {
		return nil, fmt.Errorf("count dangling bean refs: %w", err)
	}

	err = db.QueryRow(`SELECT COUNT(1) FROM beans WHERE current_weight_g > total_weight_g`).Scan(&report.OverfilledBeans)
	if err != nil {
		return nil, fmt.Errorf("count overfilled beans: %w", err)
	}

	err = db.QueryRow(`
SELECT
  (SELECT COUNT(1) FROM logs WHERE caffeine_mg < 0 OR price < 0) +
  (SELECT COUNT(1) FROM beans WHERE price < 0 OR total_weight_g < 0 OR current_weight_g < 0)
`).Scan(&report.NegativeAmounts)
	if err != nil {
		return nil, fmt.Errorf("count negative amounts: %w", err)
	}

	rows, err := db.Query(`SELECT key, value FROM app_config WHERE key IN (?, ?)`, configKeyProfile, configKeyWalletStats)
	if err != nil {
		return nil, fmt.Errorf("load config docs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config doc: %w", err)
		}
		var decoded map[string]any
		if err := json.Unmarshal([]byte(value), &decoded); err != nil {
			report.InvalidConfigDocs++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config docs: %w", err)
	}

	return report, nil
}

func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := copyFile(dbPath, outPath); err != nil {
		return BackupInfo{}, err
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	checksumFile := backupPath + ".sha256"
	if expected, err := os.ReadFile(checksumFile); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup directory: %w", err)
	}
	items := make([]BackupInfo, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat backup %s: %w", path, err)
		}
		item := BackupInfo{Path: path, CreatedAt: info.ModTime(), SizeBytes: info.Size()}
		if sum, err := os.ReadFile(path + ".sha256"); err == nil {
			item.Checksum = strings.TrimSpace(string(sum))
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination %s: %w", dst, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Sync()
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s for checksum: %w", path, err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
