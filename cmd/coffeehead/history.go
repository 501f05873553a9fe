package coffeehead

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/service"
	"github.com/spf13/cobra"
)

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show daily cup history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.History(sqldb, time.Now(), historyDays)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s .. %s\n", report.FromDate, report.ToDate)
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tCUPS\tMG\tSPENT")
			for _, d := range report.Days {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%.0f\t%s%.1f\n", d.Date, d.Cups, d.CaffeineMg, currencySymbol(), d.Spent)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyDays, "days", 14, "Trailing window in days")
}
