package coffeehead

import (
	"database/sql"
	"fmt"

	"github.com/coffeehead/coffeehead-cli/internal/model"
	"github.com/coffeehead/coffeehead-cli/internal/service"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the drinker profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			profile, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Name:             %s\n", profile.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Weight:           %.1f kg\n", profile.WeightKg)
			fmt.Fprintf(cmd.OutOrStdout(), "Height:           %.1f cm\n", profile.HeightCm)
			fmt.Fprintf(cmd.OutOrStdout(), "Sleep difficulty: %s\n", profile.SleepDifficulty)
			fmt.Fprintf(cmd.OutOrStdout(), "Daily limit:      %.0f mg\n", profile.DailyLimitMg)
			fmt.Fprintf(cmd.OutOrStdout(), "Half-life:        %.0f min\n", service.HalfLifeMinutes(profile))
			fmt.Fprintf(cmd.OutOrStdout(), "Recommended:      %.0f mg/day\n", service.RecommendedDailyLimitMg(profile))
			return nil
		})
	},
}

var (
	profileName   string
	profileWeight float64
	profileHeight float64
	profileSleep  string
	profileLimit  float64
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			profile, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				profile.Name = profileName
			}
			if cmd.Flags().Changed("weight") {
				profile.WeightKg = profileWeight
			}
			if cmd.Flags().Changed("height") {
				profile.HeightCm = profileHeight
			}
			if cmd.Flags().Changed("sleep") {
				profile.SleepDifficulty = model.SleepDifficulty(profileSleep)
			}
			if cmd.Flags().Changed("limit") {
				profile.DailyLimitMg = profileLimit
			}
			if err := service.SaveProfile(sqldb, profile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated profile. Recommended daily limit: %.0f mg\n",
				service.RecommendedDailyLimitMg(profile))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Body weight in kg")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().StringVar(&profileSleep, "sleep", "", "Sleep difficulty: Easy, Normal or Hard")
	profileSetCmd.Flags().Float64Var(&profileLimit, "limit", 0, "Daily caffeine limit in mg")
}
