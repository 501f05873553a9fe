package coffeehead

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/coffeehead/coffeehead-cli/internal/catalog"
	"github.com/coffeehead/coffeehead-cli/internal/model"
	"github.com/coffeehead/coffeehead-cli/internal/service"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record and manage coffee intake",
}

var (
	logName     string
	logCaffeine float64
	logPrice    float64
	logMode     string
	logBrandID  string
	logDrink    string
	logSize     string
	logMilk     string
	logIce      string
	logBeanID   string
	logPresetID string
	logDose     float64
	logNotes    string
	logAgo      int
	logDate     string
	logTime     string
)

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a cup of coffee",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := model.CoffeeMode(strings.ToUpper(strings.TrimSpace(logMode)))
		loggedAt, err := parseLoggedAt(logAgo, logDate, logTime)
		if err != nil {
			return err
		}

		in := service.CreateLogInput{
			Name:       logName,
			CaffeineMg: logCaffeine,
			Price:      logPrice,
			Mode:       mode,
			BrandID:    strings.TrimSpace(logBrandID),
			BeanID:     strings.TrimSpace(logBeanID),
			Size:       logSize,
			Milk:       logMilk,
			Ice:        logIce,
			Notes:      logNotes,
			LoggedAt:   loggedAt,
		}
		if cmd.Flags().Changed("dose") {
			if logDose <= 0 {
				return fmt.Errorf("--dose must be > 0 grams")
			}
			dose := logDose
			in.DoseGrams = &dose
		}

		return withDB(func(sqldb *sql.DB) error {
			if err := applyTemplates(cmd, sqldb, &in); err != nil {
				return err
			}
			id, err := service.CreateLog(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%s%.1f, %.0fmg caffeine) [%s]\n", in.Name, currencySymbol(), in.Price, in.CaffeineMg, id)

			profile, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			logs, err := service.AllLogs(sqldb)
			if err != nil {
				return err
			}
			intake := service.DailyIntakeMg(logs, loggedAt)
			switch service.IntakeLimitStatus(intake, profile.DailyLimitMg) {
			case service.LimitOver:
				fmt.Fprintf(cmd.OutOrStdout(), "Warning: today's intake %.0fmg is over your %.0fmg limit\n", intake, profile.DailyLimitMg)
			case service.LimitApproaching:
				fmt.Fprintf(cmd.OutOrStdout(), "Heads up: today's intake %.0fmg is approaching your %.0fmg limit\n", intake, profile.DailyLimitMg)
			}
			return nil
		})
	},
}

// applyTemplates fills name/caffeine/price from the brand menu or a home
// preset when not given explicitly. Explicit flags always win; templates are
// quick-entry sugar, not authority.
func applyTemplates(cmd *cobra.Command, sqldb *sql.DB, in *service.CreateLogInput) error {
	switch in.Mode {
	case model.ModeBrand:
		if in.BrandID == "" {
			return nil
		}
		brand, ok := catalog.BrandByID(in.BrandID)
		if !ok {
			return fmt.Errorf("unknown brand %q (see: coffeehead menu)", in.BrandID)
		}
		if strings.TrimSpace(logDrink) == "" {
			return nil
		}
		for _, item := range brand.BestSellers {
			if !strings.EqualFold(item.Name, strings.TrimSpace(logDrink)) {
				continue
			}
			caffeine, price := adjustForSize(item.BaseCaffeine, item.BasePrice, in.Size)
			if in.Name == "" {
				in.Name = item.Name
			}
			if !cmd.Flags().Changed("caffeine") {
				in.CaffeineMg = caffeine
			}
			if !cmd.Flags().Changed("price") {
				in.Price = price
			}
			return nil
		}
		return fmt.Errorf("brand %q has no drink %q (see: coffeehead menu %s)", brand.Name, logDrink, brand.ID)
	case model.ModeHome:
		if strings.TrimSpace(logPresetID) == "" {
			return nil
		}
		preset, ok := catalog.HomePresetByID(strings.TrimSpace(logPresetID))
		if !ok {
			return fmt.Errorf("unknown home preset %q (see: coffeehead menu)", logPresetID)
		}
		if in.Name == "" {
			in.Name = preset.Name
		}
		if !cmd.Flags().Changed("caffeine") {
			in.CaffeineMg = preset.CaffeineMg
		}
		if in.DoseGrams == nil {
			dose := preset.DefaultDoseG
			in.DoseGrams = &dose
		}
		if !cmd.Flags().Changed("price") {
			price, err := homeCupPrice(sqldb, in.BeanID, *in.DoseGrams, preset.ExtraCost)
			if err != nil {
				return err
			}
			in.Price = price
		}
	}
	return nil
}

// adjustForSize applies the menu's size deltas: small cups shed caffeine and
// a few units of price, large ones gain both.
func adjustForSize(caffeine, price float64, size string) (float64, float64) {
	switch strings.ToLower(strings.TrimSpace(size)) {
	case "small":
		return math.Round(caffeine * 0.8), math.Max(0, price-3)
	case "large":
		return math.Round(caffeine * 1.3), price + 5
	default:
		return caffeine, price
	}
}

// homeCupPrice prefills a brew's price from the referenced bag's own unit
// cost plus the preset's extras. This is entry-form convenience only; the
// savings engine prices history off the warehouse-wide average.
func homeCupPrice(sqldb *sql.DB, beanID string, dose, extraCost float64) (float64, error) {
	if beanID == "" {
		return extraCost, nil
	}
	bean, err := service.GetBean(sqldb, beanID)
	if err != nil {
		return 0, err
	}
	if bean == nil || bean.TotalWeightG <= 0 {
		return extraCost, nil
	}
	price := bean.Price/bean.TotalWeightG*dose + extraCost
	return math.Round(price*10) / 10, nil
}

var (
	listDate  string
	listFrom  string
	listTo    string
	listMode  string
	listBrand string
	listLimit int
)

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged cups",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := service.ListLogsFilter{
			Date:     listDate,
			FromDate: listFrom,
			ToDate:   listTo,
			BrandID:  listBrand,
			Limit:    listLimit,
		}
		if strings.TrimSpace(listMode) != "" {
			filter.Mode = model.CoffeeMode(strings.ToUpper(strings.TrimSpace(listMode)))
		}
		return withDB(func(sqldb *sql.DB) error {
			logs, err := service.ListLogs(sqldb, filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tWHEN\tNAME\tMODE\tMG\tPRICE")
			for _, l := range logs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%.0f\t%s%.1f\n",
					l.ID, l.LoggedAt.Format("2006-01-02 15:04"), l.Name, l.Mode, l.CaffeineMg, currencySymbol(), l.Price)
			}
			return nil
		})
	},
}

var (
	editID       string
	editName     string
	editCaffeine float64
	editPrice    float64
	editNotes    string
	editAgo      int
	editDate     string
	editTime     string
)

var logEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a logged cup in place",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			logs, err := service.ListLogs(sqldb, service.ListLogsFilter{})
			if err != nil {
				return err
			}
			var current *model.IntakeLog
			for i := range logs {
				if logs[i].ID == editID {
					current = &logs[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("log %s not found", editID)
			}

			in := service.UpdateLogInput{
				ID:         editID,
				Name:       current.Name,
				CaffeineMg: current.CaffeineMg,
				Price:      current.Price,
				Notes:      current.Notes,
				LoggedAt:   current.LoggedAt,
			}
			if cmd.Flags().Changed("name") {
				in.Name = editName
			}
			if cmd.Flags().Changed("caffeine") {
				in.CaffeineMg = editCaffeine
			}
			if cmd.Flags().Changed("price") {
				in.Price = editPrice
			}
			if cmd.Flags().Changed("notes") {
				in.Notes = editNotes
			}
			if cmd.Flags().Changed("ago") || cmd.Flags().Changed("date") || cmd.Flags().Changed("time") {
				loggedAt, err := parseLoggedAt(editAgo, editDate, editTime)
				if err != nil {
					return err
				}
				in.LoggedAt = loggedAt
			}

			if err := service.UpdateLog(sqldb, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated log %s\n", editID)
			return nil
		})
	},
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged cup (bean weight is not restored)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteLog(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted log %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logAddCmd, logListCmd, logEditCmd, logDeleteCmd)

	logAddCmd.Flags().StringVar(&logName, "name", "", "Drink name")
	logAddCmd.Flags().Float64Var(&logCaffeine, "caffeine", 0, "Caffeine in mg")
	logAddCmd.Flags().Float64Var(&logPrice, "price", 0, "Price paid for this cup")
	logAddCmd.Flags().StringVar(&logMode, "mode", "BRAND", "BRAND (café) or HOME (self-brewed)")
	logAddCmd.Flags().StringVar(&logBrandID, "brand", "", "Brand id for BRAND cups")
	logAddCmd.Flags().StringVar(&logDrink, "drink", "", "Best-seller name to prefill caffeine/price from the brand menu")
	logAddCmd.Flags().StringVar(&logSize, "size", "", "Cup size: Small, Medium or Large")
	logAddCmd.Flags().StringVar(&logMilk, "milk", "", "Milk choice")
	logAddCmd.Flags().StringVar(&logIce, "ice", "", "Ice choice")
	logAddCmd.Flags().StringVar(&logBeanID, "bean", "", "Bean bag id to draw from for HOME cups")
	logAddCmd.Flags().StringVar(&logPresetID, "preset", "", "Home preset id to prefill from (see: coffeehead menu)")
	logAddCmd.Flags().Float64Var(&logDose, "dose", 0, "Grams of beans used for HOME cups (default 18)")
	logAddCmd.Flags().StringVar(&logNotes, "notes", "", "Journal thoughts for this cup")
	logAddCmd.Flags().IntVar(&logAgo, "ago", 0, "Backdate by N minutes")
	logAddCmd.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD")
	logAddCmd.Flags().StringVar(&logTime, "time", "", "Time HH:MM")

	logListCmd.Flags().StringVar(&listDate, "date", "", "Only cups on date YYYY-MM-DD")
	logListCmd.Flags().StringVar(&listFrom, "from", "", "Range start YYYY-MM-DD")
	logListCmd.Flags().StringVar(&listTo, "to", "", "Range end YYYY-MM-DD (inclusive)")
	logListCmd.Flags().StringVar(&listMode, "mode", "", "Filter by mode: BRAND or HOME")
	logListCmd.Flags().StringVar(&listBrand, "brand", "", "Filter by brand id")
	logListCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum rows")

	logEditCmd.Flags().StringVar(&editID, "id", "", "Log id")
	logEditCmd.Flags().StringVar(&editName, "name", "", "Drink name")
	logEditCmd.Flags().Float64Var(&editCaffeine, "caffeine", 0, "Caffeine in mg")
	logEditCmd.Flags().Float64Var(&editPrice, "price", 0, "Price paid")
	logEditCmd.Flags().StringVar(&editNotes, "notes", "", "Journal thoughts")
	logEditCmd.Flags().IntVar(&editAgo, "ago", 0, "Re-date to N minutes ago")
	logEditCmd.Flags().StringVar(&editDate, "date", "", "Date YYYY-MM-DD")
	logEditCmd.Flags().StringVar(&editTime, "time", "", "Time HH:MM")
	_ = logEditCmd.MarkFlagRequired("id")
}
