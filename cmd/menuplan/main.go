package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"

	"menuplan/internal/app"
	"menuplan/internal/catalog"
	"menuplan/internal/classify"
	"menuplan/internal/config"
	"menuplan/internal/database"
	"menuplan/internal/nutrition"
	"menuplan/internal/planner"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	seed    int64

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "menuplan",
	Short: "Weekly meal-plan generator and nutrition analyzer",
	Long: `menuplan keeps a catalog of menu items with nutrition facts, generates
randomized five-day meal plans from it, and analyzes plan workbooks into
per-day nutrition totals. Unknown menu names are classified by an external
AI service and added to the catalog on the fly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// setup builds the application and returns a cleanup function for the
// resources it opened.
func setup(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var classifier classify.Classifier
	var closeClassifier func()
	switch cfg.ClassifierBackend {
	case config.BackendGemini:
		gemini, err := classify.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		classifier = gemini
		closeClassifier = func() { _ = gemini.Close() }
	default:
		classifier = classify.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}

	repo := catalog.NewRepository(db.SQL)
	analyzer := nutrition.NewAnalyzer(repo, classifier, logger.Sugar())

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	generator := planner.NewGenerator(rng)

	application := app.New(repo, classifier, analyzer, generator, cfg, logger.Sugar())
	cleanup := func() {
		if closeClassifier != nil {
			closeClassifier()
		}
		_ = db.Close()
	}
	return application, cleanup, nil
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a weekly meal plan and export it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		application, cleanup, err := setup(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		plan, path, err := application.GeneratePlan(ctx)
		if err != nil {
			return err
		}

		printPlan(cmd, plan)
		cmd.Printf("\nExported to %s\n", path)
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.xlsx>",
	Short: "Analyze the nutrition of a plan workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		application, cleanup, err := setup(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		records, totals, path, err := application.AnalyzeWorkbook(ctx, args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "Day\tSlot\tMenu\tCalories\tProtein\tFat\tCarbs\tSodium")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%.0f\n",
				rec.Day, rec.Slot, rec.Menu,
				rec.Nutrition.Calories, rec.Nutrition.Protein, rec.Nutrition.Fat,
				rec.Nutrition.Carbs, rec.Nutrition.Sodium)
		}
		fmt.Fprintln(w, "\nDay\tCalories\tProtein\tFat\tCarbs\tSodium")
		for _, t := range totals {
			fmt.Fprintf(w, "%s\t%.0f\t%.1f\t%.1f\t%.1f\t%.0f\n",
				t.Day, t.Total.Calories, t.Total.Protein, t.Total.Fat,
				t.Total.Carbs, t.Total.Sodium)
		}
		w.Flush()
		cmd.Printf("\nExported to %s\n", path)
		return nil
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Manage the menu catalog",
}

var menuAddCmd = &cobra.Command{
	Use:   "add <name>[,<name>...]",
	Short: "Classify menu names and add them to the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		application, cleanup, err := setup(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		added, err := application.AddMenus(ctx, splitMenuNames(args))
		if err != nil {
			return err
		}
		cmd.Printf("Added %d menus.\n", added)
		return nil
	},
}

var menuImportCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Add menu names from the Menu column of a workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		application, cleanup, err := setup(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		added, err := application.ImportMenuNames(ctx, args[0])
		if err != nil {
			return err
		}
		cmd.Printf("Added %d menus.\n", added)
		return nil
	},
}

var menuListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every menu in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		application, cleanup, err := setup(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		menus, err := application.ListMenus(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "Name\tCategory\tCalories\tProtein\tFat\tCarbs\tSodium")
		for _, m := range menus {
			fmt.Fprintf(w, "%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%.0f\n",
				m.Name, m.Category,
				m.Nutrition.Calories, m.Nutrition.Protein, m.Nutrition.Fat,
				m.Nutrition.Carbs, m.Nutrition.Sodium)
		}
		return w.Flush()
	},
}

var menuRemoveCmd = &cobra.Command{
	Use:   "rm <name>...",
	Short: "Remove menus from the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		application, cleanup, err := setup(ctx)
		if err != nil {
			return err
		}
		defer cleanup()
		return application.RemoveMenus(ctx, args)
	},
}

var menuSetCategoryCmd = &cobra.Command{
	Use:   "set-category <name> <category>",
	Short: "Change a menu's category (Soup, Main, Side, or Other)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		application, cleanup, err := setup(ctx)
		if err != nil {
			return err
		}
		defer cleanup()
		return application.SetCategory(ctx, args[0], catalog.ParseCategory(args[1]))
	},
}

var (
	nutritionFlags catalog.Nutrition

	menuSetNutritionCmd = &cobra.Command{
		Use:   "set-nutrition <name>",
		Short: "Replace a menu's nutrition facts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			application, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			return application.SetNutrition(ctx, args[0], nutritionFlags.Clamped())
		},
	}
)

// splitMenuNames accepts both space-separated arguments and comma-separated
// lists inside one argument.
func splitMenuNames(args []string) []string {
	var names []string
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if name := strings.TrimSpace(part); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

func printPlan(cmd *cobra.Command, plan planner.WeeklyPlan) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Day\tRice\tSoup\tMain\tSide1\tSide2\tOther")
	for _, day := range plan {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			day.Day,
			day.Meals[planner.SlotRice],
			day.Meals[planner.SlotSoup],
			day.Meals[planner.SlotMain],
			day.Meals[planner.SlotSide1],
			day.Meals[planner.SlotSide2],
			day.Meals[planner.SlotOther])
	}
	w.Flush()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 seeds from the clock)")

	menuSetNutritionCmd.Flags().Float64Var(&nutritionFlags.Calories, "calories", 0, "Calories per serving")
	menuSetNutritionCmd.Flags().Float64Var(&nutritionFlags.Protein, "protein", 0, "Protein in grams")
	menuSetNutritionCmd.Flags().Float64Var(&nutritionFlags.Fat, "fat", 0, "Fat in grams")
	menuSetNutritionCmd.Flags().Float64Var(&nutritionFlags.Carbs, "carbs", 0, "Carbs in grams")
	menuSetNutritionCmd.Flags().Float64Var(&nutritionFlags.Sodium, "sodium", 0, "Sodium in milligrams")

	menuCmd.AddCommand(menuAddCmd, menuImportCmd, menuListCmd, menuRemoveCmd, menuSetCategoryCmd, menuSetNutritionCmd)
	rootCmd.AddCommand(generateCmd, analyzeCmd, menuCmd)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
