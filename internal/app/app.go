// Package app wires the catalog, classifier, planner, and analyzer into the
// operations the CLI exposes.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"menuplan/internal/catalog"
	"menuplan/internal/classify"
	"menuplan/internal/config"
	"menuplan/internal/nutrition"
	"menuplan/internal/planner"
	"menuplan/internal/workbook"

	"go.uber.org/zap"
)

// App holds the application's dependencies.
type App struct {
	repo       *catalog.Repository
	classifier classify.Classifier
	analyzer   *nutrition.Analyzer
	generator  *planner.Generator
	cfg        *config.Config
	log        *zap.SugaredLogger
}

// New creates and initializes a new App instance.
func New(
	repo *catalog.Repository,
	classifier classify.Classifier,
	analyzer *nutrition.Analyzer,
	generator *planner.Generator,
	cfg *config.Config,
	log *zap.SugaredLogger,
) *App {
	return &App{
		repo:       repo,
		classifier: classifier,
		analyzer:   analyzer,
		generator:  generator,
		cfg:        cfg,
		log:        log,
	}
}

// GeneratePlan builds a weekly plan from the current catalog, analyzes it,
// and exports both to a dated workbook. Returns the plan and the export
// path.
func (a *App) GeneratePlan(ctx context.Context) (planner.WeeklyPlan, string, error) {
	menus, err := a.repo.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}

	plan, err := a.generator.Generate(menus)
	if err != nil {
		return nil, "", err
	}

	records, totals, err := a.analyzer.Analyze(ctx, plan)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("meal_plan_lunch_%s.xlsx", time.Now().Format("20060102"))
	path := filepath.Join(a.cfg.ExportDir, filename)
	if err := workbook.Export(path, plan, records, totals); err != nil {
		return nil, "", err
	}

	return plan, path, nil
}

// AnalyzeWorkbook imports a plan workbook, resolves its nutrition, and
// exports the analysis next to the other exports. Returns the records,
// daily totals, and the export path.
func (a *App) AnalyzeWorkbook(ctx context.Context, inPath string) ([]nutrition.Record, []nutrition.DailyTotal, string, error) {
	plan, err := workbook.Import(inPath)
	if err != nil {
		return nil, nil, "", err
	}

	records, totals, err := a.analyzer.Analyze(ctx, plan)
	if err != nil {
		return nil, nil, "", err
	}

	filename := fmt.Sprintf("nutrition_analysis_%s.xlsx", time.Now().Format("20060102_150405"))
	outPath := filepath.Join(a.cfg.ExportDir, filename)
	if err := workbook.Export(outPath, plan, records, totals); err != nil {
		return nil, nil, "", err
	}

	return records, totals, outPath, nil
}

// AddMenus classifies each name and inserts it into the catalog. Names
// already present are skipped, as are names whose classification or insert
// fails; failures are logged, never fatal to the batch. Returns the number
// of menus added.
func (a *App) AddMenus(ctx context.Context, names []string) (int, error) {
	existing, err := a.repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	known := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		known[item.Name] = struct{}{}
	}

	added := 0
	for _, name := range names {
		if _, ok := known[name]; ok {
			a.log.Infow("menu already in catalog", "menu", name)
			continue
		}

		item, err := a.classifier.Classify(ctx, name)
		if err != nil {
			a.log.Warnw("failed to classify menu", "menu", name, "error", err)
			continue
		}
		if err := a.repo.Insert(ctx, item); err != nil {
			a.log.Warnw("failed to insert menu", "menu", name, "error", err)
			continue
		}

		known[name] = struct{}{}
		added++
	}
	return added, nil
}

// ImportMenuNames bulk-adds menu names read from the "Menu" column of a
// workbook.
func (a *App) ImportMenuNames(ctx context.Context, path string) (int, error) {
	names, err := workbook.ReadMenuColumn(path)
	if err != nil {
		return 0, err
	}
	return a.AddMenus(ctx, names)
}

// ListMenus returns every catalog entry.
func (a *App) ListMenus(ctx context.Context) ([]catalog.MenuItem, error) {
	return a.repo.GetAll(ctx)
}

// SetCategory updates a menu's category.
func (a *App) SetCategory(ctx context.Context, name string, category catalog.Category) error {
	return a.repo.UpdateCategory(ctx, name, category)
}

// SetNutrition replaces a menu's nutrition facts.
func (a *App) SetNutrition(ctx context.Context, name string, n catalog.Nutrition) error {
	return a.repo.UpdateNutrition(ctx, name, n)
}

// RemoveMenus deletes the named menus from the catalog.
func (a *App) RemoveMenus(ctx context.Context, names []string) error {
	for _, name := range names {
		if err := a.repo.DeleteByName(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
