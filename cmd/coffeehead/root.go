package coffeehead

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "coffeehead",
	Short: "coffeehead tracks caffeine and coffee spending from your terminal",
	Long:  "coffeehead is a local-first coffee journal: log every cup, watch the caffeine decay curve, keep a bean warehouse, and track café spending against a savings goal.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to TOML config file")
}
