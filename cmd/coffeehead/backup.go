package coffeehead

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/service"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot and restore the database file",
}

var backupOutDir string

// resolveBackupDir prefers the --dir flag, then the config file, then a
// backups/ directory next to the database.
func resolveBackupDir() (string, error) {
	if backupOutDir != "" {
		return backupOutDir, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.BackupDir != "" {
		return cfg.BackupDir, nil
	}
	path, err := resolveDBPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), "backups"), nil
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Copy the database to a timestamped backup with a checksum",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		dir, err := resolveBackupDir()
		if err != nil {
			return err
		}
		out := filepath.Join(dir, fmt.Sprintf("coffeehead-%s.db", time.Now().Format("20060102-150405")))
		info, err := service.CreateBackup(path, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s (%d bytes)\n", info.Path, info.SizeBytes)
		fmt.Fprintf(cmd.OutOrStdout(), "sha256 %s\n", info.Checksum)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveBackupDir()
		if err != nil {
			return err
		}
		items, err := service.ListBackups(dir)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No backups in %s\n", dir)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "CREATED\tSIZE\tPATH")
		for _, it := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", it.CreatedAt.Format("2006-01-02 15:04"), it.SizeBytes, it.Path)
		}
		return nil
	},
}

var backupForce bool

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore the database from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := service.RestoreBackup(args[0], path, backupForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", path, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCreateCmd.Flags().StringVar(&backupOutDir, "dir", "", "Backup directory")
	backupListCmd.Flags().StringVar(&backupOutDir, "dir", "", "Backup directory")
	backupRestoreCmd.Flags().BoolVar(&backupForce, "force", false, "Overwrite an existing database")
}
