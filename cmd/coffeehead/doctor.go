package coffeehead

import (
	"database/sql"
	"fmt"

	"github.com/coffeehead/coffeehead-cli/internal/service"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the database for inconsistencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb)
			if err != nil {
				return err
			}
			if report.Clean() {
				fmt.Fprintln(cmd.OutOrStdout(), "No problems found")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dangling bean references: %d\n", report.DanglingBeanRefs)
			fmt.Fprintf(cmd.OutOrStdout(), "Overfilled bean bags:     %d\n", report.OverfilledBeans)
			fmt.Fprintf(cmd.OutOrStdout(), "Negative amounts:         %d\n", report.NegativeAmounts)
			fmt.Fprintf(cmd.OutOrStdout(), "Invalid config documents: %d\n", report.InvalidConfigDocs)
			return fmt.Errorf("doctor found problems")
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
