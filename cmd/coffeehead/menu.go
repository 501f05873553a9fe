package coffeehead

import (
	"fmt"
	"strings"

	"github.com/coffeehead/coffeehead-cli/internal/catalog"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Browse brand menus and home presets",
}

var menuBrandsCmd = &cobra.Command{
	Use:   "brands [brand-id]",
	Short: "List brands, or one brand's best sellers",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tDRINKS")
			for _, b := range catalog.Brands() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\n", b.ID, b.Name, len(b.BestSellers))
			}
			return nil
		}

		brand, ok := catalog.BrandByID(args[0])
		if !ok {
			return fmt.Errorf("unknown brand %q", args[0])
		}
		cur := currencySymbol()
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", brand.Name)
		fmt.Fprintln(cmd.OutOrStdout(), "DRINK\tMG\tPRICE")
		for _, d := range brand.BestSellers {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.0f\t%s%.0f\n", d.Name, d.BaseCaffeine, cur, d.BasePrice)
		}
		return nil
	},
}

var menuPresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List home-brew presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cur := currencySymbol()
		fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tMG\tDOSE\tEXTRA")
		for _, p := range catalog.HomePresets() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f\t%.0fg\t%s%.0f\n",
				p.ID, p.Name, p.CaffeineMg, p.DefaultDoseG, cur, p.ExtraCost)
		}
		return nil
	},
}

var menuOriginsCmd = &cobra.Command{
	Use:   "origins",
	Short: "List common bean origins",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(catalog.Origins, "\n"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.AddCommand(menuBrandsCmd, menuPresetsCmd, menuOriginsCmd)
}
