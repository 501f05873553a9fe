package coffeehead

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/coffeehead/coffeehead-cli/internal/service"
	"github.com/spf13/cobra"
)

var beanCmd = &cobra.Command{
	Use:   "bean",
	Short: "Manage the bean warehouse",
}

var (
	beanName    string
	beanOrigin  string
	beanRoast   string
	beanWeight  float64
	beanPrice   float64
	beanFlavors string
	beanImage   string
)

var beanAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a bag of beans",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.AddBeanInput{
			Name:         beanName,
			Origin:       beanOrigin,
			RoastDate:    beanRoast,
			TotalWeightG: beanWeight,
			Price:        beanPrice,
			ImageRef:     beanImage,
		}
		if strings.TrimSpace(beanFlavors) != "" {
			in.FlavorProfile = strings.Split(beanFlavors, ",")
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddBean(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added bean %s (%.0fg) [%s]\n", in.Name, in.TotalWeightG, id)
			return nil
		})
	},
}

var (
	beanListAll      bool
	beanListArchived bool
)

var beanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bean bags with freshness",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if beanListArchived {
				beans, err := service.ListBeans(sqldb, service.ListBeansFilter{ArchivedOnly: true})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "NAME\tORIGIN\tBAGS")
				for _, g := range service.ArchivedGroups(beans) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\n", g.Bean.Name, g.Bean.Origin, g.Count)
				}
				return nil
			}

			beans, err := service.ListBeans(sqldb, service.ListBeansFilter{IncludeArchived: beanListAll})
			if err != nil {
				return err
			}
			now := time.Now()
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tORIGIN\tLEFT\tFRESHNESS\tOPENED")
			for _, b := range beans {
				opened := "-"
				if b.HasBeenOpened {
					opened = b.DateOpened
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.0f/%.0fg\t%s\t%s\n",
					b.ID, b.Name, b.Origin, b.CurrentWeightG, b.TotalWeightG, service.Freshness(b.RoastDate, now), opened)
			}
			return nil
		})
	},
}

var beanOpenCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open a bag (stamps the opening date, once)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.OpenBean(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened bean %s\n", args[0])
			return nil
		})
	},
}

var (
	beanUpdateID     string
	beanUpdateWeight float64
)

var beanUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Edit a bag, remaining weight included",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			bean, err := service.GetBean(sqldb, beanUpdateID)
			if err != nil {
				return err
			}
			if bean == nil {
				return fmt.Errorf("bean %s not found", beanUpdateID)
			}

			in := service.UpdateBeanInput{
				ID:             bean.ID,
				Name:           bean.Name,
				Origin:         bean.Origin,
				RoastDate:      bean.RoastDate,
				CurrentWeightG: bean.CurrentWeightG,
				Price:          bean.Price,
				ImageRef:       bean.ImageRef,
			}
			if cmd.Flags().Changed("name") {
				in.Name = beanName
			}
			if cmd.Flags().Changed("origin") {
				in.Origin = beanOrigin
			}
			if cmd.Flags().Changed("roast-date") {
				in.RoastDate = beanRoast
			}
			if cmd.Flags().Changed("weight") {
				in.CurrentWeightG = beanUpdateWeight
			}
			if cmd.Flags().Changed("price") {
				in.Price = beanPrice
			}
			if cmd.Flags().Changed("image") {
				in.ImageRef = beanImage
			}

			if err := service.UpdateBean(sqldb, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated bean %s\n", beanUpdateID)
			return nil
		})
	},
}

var beanArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Retire a depleted or abandoned bag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ArchiveBean(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived bean %s\n", args[0])
			return nil
		})
	},
}

var beanDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a bag permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteBean(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted bean %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(beanCmd)
	beanCmd.AddCommand(beanAddCmd, beanListCmd, beanOpenCmd, beanUpdateCmd, beanArchiveCmd, beanDeleteCmd)

	beanAddCmd.Flags().StringVar(&beanName, "name", "", "Bean name")
	beanAddCmd.Flags().StringVar(&beanOrigin, "origin", "", "Origin country or region")
	beanAddCmd.Flags().StringVar(&beanRoast, "roast-date", "", "Roast date YYYY-MM-DD (default today)")
	beanAddCmd.Flags().Float64Var(&beanWeight, "weight", 250, "Bag weight in grams")
	beanAddCmd.Flags().Float64Var(&beanPrice, "price", 0, "Price of the whole bag")
	beanAddCmd.Flags().StringVar(&beanFlavors, "flavors", "", "Comma-separated flavor notes")
	beanAddCmd.Flags().StringVar(&beanImage, "image", "", "Image path or reference")
	_ = beanAddCmd.MarkFlagRequired("name")

	beanListCmd.Flags().BoolVar(&beanListAll, "all", false, "Include archived bags")
	beanListCmd.Flags().BoolVar(&beanListArchived, "archived", false, "Show archived bags grouped by name")

	beanUpdateCmd.Flags().StringVar(&beanUpdateID, "id", "", "Bean id")
	beanUpdateCmd.Flags().StringVar(&beanName, "name", "", "Bean name")
	beanUpdateCmd.Flags().StringVar(&beanOrigin, "origin", "", "Origin")
	beanUpdateCmd.Flags().StringVar(&beanRoast, "roast-date", "", "Roast date YYYY-MM-DD")
	beanUpdateCmd.Flags().Float64Var(&beanUpdateWeight, "weight", 0, "Remaining weight in grams")
	beanUpdateCmd.Flags().Float64Var(&beanPrice, "price", 0, "Price of the whole bag")
	beanUpdateCmd.Flags().StringVar(&beanImage, "image", "", "Image path or reference")
	_ = beanUpdateCmd.MarkFlagRequired("id")
}
