package coffeehead

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/coffeehead/coffeehead-cli/internal/service"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export logs, beans, wallet stats and profile as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			doc, err := service.ExportSnapshot(sqldb)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("encode export document: %w", err)
			}
			data = append(data, '\n')

			if exportOut == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(exportOut, data, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d logs and %d beans to %s\n", len(*doc.Logs), len(*doc.Beans), exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a previously exported JSON document",
	Long: `Import a previously exported JSON document.

Each section present in the file (logs, beans, userStats, profile) replaces
the current data wholesale. Absent sections are left untouched. The document
is validated in full before anything is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		doc, err := service.ParseExportDocument(data)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.ImportSnapshot(sqldb, doc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d logs, %d beans", report.LogsReplaced, report.BeansReplaced)
			if report.StatsApplied {
				fmt.Fprint(cmd.OutOrStdout(), ", wallet stats")
			}
			if report.ProfileSet {
				fmt.Fprint(cmd.OutOrStdout(), ", profile")
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to a file instead of stdout")
}
