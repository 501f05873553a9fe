package coffeehead

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/catalog"
	"github.com/coffeehead/coffeehead-cli/internal/service"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show active caffeine, today's intake and estimated sleep time",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			now := time.Now()
			summary, err := service.Status(sqldb, now)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Active caffeine: %.0f mg\n", summary.ActiveCaffeineMg)
			fmt.Fprintf(cmd.OutOrStdout(), "Today's intake:  %.0f / %.0f mg (%s)\n", summary.TodayIntakeMg, summary.DailyLimitMg, summary.LimitStatus)
			if summary.Sleep.ReadyNow {
				fmt.Fprintln(cmd.OutOrStdout(), "Est. sleep:      Ready to Sleep")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Est. sleep:      %s\n", summary.Sleep.At.Format("15:04"))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%q\n", catalog.Quote(now.YearDay()))
			return nil
		})
	},
}

var curveHours int

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the projected caffeine decay curve",
	RunE: func(cmd *cobra.Command, args []string) error {
		if curveHours <= 0 {
			return fmt.Errorf("--hours must be > 0")
		}
		return withDB(func(sqldb *sql.DB) error {
			logs, err := service.AllLogs(sqldb)
			if err != nil {
				return err
			}
			profile, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}

			halfLife := service.HalfLifeMinutes(profile)
			points := service.DecayCurve(logs, halfLife, time.Now(), curveHours)
			fmt.Fprintln(cmd.OutOrStdout(), "TIME\tMG")
			for _, p := range points {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.0f\n", p.At.Format("15:04"), p.Value)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd, curveCmd)
	curveCmd.Flags().IntVar(&curveHours, "hours", 24, "Hours to project forward")
}
