package coffeehead

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/service"
	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Budget, home-brew savings and goal progress",
}

var walletShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show this month's wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.Wallet(sqldb, time.Now())
			if err != nil {
				return err
			}
			cur := currencySymbol()

			fmt.Fprintf(cmd.OutOrStdout(), "Monthly spend: %s%.1f / %s%.0f (%.0f%% used)\n",
				cur, report.Budget.Spent, cur, report.Budget.Budget, report.Budget.PercentUsed)
			if report.Budget.OverBudget {
				fmt.Fprintln(cmd.OutOrStdout(), "Over budget!")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Benchmark:     %s%.1f per café cup (%s)\n",
				cur, report.Savings.BenchmarkPrice, report.Savings.BenchmarkSource)
			fmt.Fprintf(cmd.OutOrStdout(), "Home brews:    %d cups, %s%.1f spent this month\n",
				report.Savings.HomeCups, cur, report.Savings.MonthHomeCost)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved so far:  %s%.1f\n", cur, report.Savings.TotalSavings)
			fmt.Fprintf(cmd.OutOrStdout(), "Goal:          %s: %s%.1f / %s%.0f (%.1f%%)\n",
				report.Goal.Goal, cur, report.Goal.Accumulated, cur, report.Goal.TargetPrice, report.Goal.Percent)
			return nil
		})
	},
}

var (
	walletBudget    float64
	walletGoal      string
	walletGoalPrice float64
	walletBenchmark float64
	walletClearOver bool
)

var walletSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update budget, savings goal or benchmark override",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			stats, err := service.GetWalletStats(sqldb)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("budget") {
				stats.MonthlyBudget = walletBudget
			}
			if cmd.Flags().Changed("goal") {
				stats.SavingsGoal = walletGoal
			}
			if cmd.Flags().Changed("goal-price") {
				stats.GoalPrice = walletGoalPrice
			}
			if cmd.Flags().Changed("benchmark") {
				v := walletBenchmark
				stats.CafeBenchmark = &v
			}
			if walletClearOver {
				stats.CafeBenchmark = nil
			}
			if err := service.SaveWalletStats(sqldb, stats); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated wallet settings")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletShowCmd, walletSetCmd)

	walletSetCmd.Flags().Float64Var(&walletBudget, "budget", 0, "Monthly coffee budget")
	walletSetCmd.Flags().StringVar(&walletGoal, "goal", "", "Savings goal name")
	walletSetCmd.Flags().Float64Var(&walletGoalPrice, "goal-price", 0, "Savings goal price")
	walletSetCmd.Flags().Float64Var(&walletBenchmark, "benchmark", 0, "Manual café benchmark price")
	walletSetCmd.Flags().BoolVar(&walletClearOver, "clear-benchmark", false, "Remove the manual benchmark override")
}
