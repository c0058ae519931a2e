// Package nutrition aggregates per-day and per-plan nutrition facts for a
// normalized weekly plan, extending the catalog on the fly for unknown
// menu names.
package nutrition

import (
	"context"
	"fmt"
	"strings"

	"menuplan/internal/catalog"
	"menuplan/internal/classify"
	"menuplan/internal/planner"

	"go.uber.org/zap"
)

// Record is one resolved plan cell with its nutrition facts.
type Record struct {
	Day       planner.Weekday   `json:"day"`
	Slot      planner.Slot      `json:"slot"`
	Menu      string            `json:"menu"`
	Nutrition catalog.Nutrition `json:"nutrition"`
}

// DailyTotal sums each nutrient over one weekday's records.
type DailyTotal struct {
	Day   planner.Weekday   `json:"day"`
	Total catalog.Nutrition `json:"total"`
}

// Store is the slice of the catalog store the analyzer needs.
type Store interface {
	GetAll(ctx context.Context) ([]catalog.MenuItem, error)
	Insert(ctx context.Context, item catalog.MenuItem) error
}

// Analyzer resolves plan cells against the catalog, classifying and
// inserting unknown menus as it goes.
type Analyzer struct {
	store      Store
	classifier classify.Classifier
	log        *zap.SugaredLogger
}

// NewAnalyzer creates an Analyzer. A nil logger disables skip logging.
func NewAnalyzer(store Store, classifier classify.Classifier, log *zap.SugaredLogger) *Analyzer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Analyzer{store: store, classifier: classifier, log: log}
}

// Analyze walks the plan weekday by weekday, slot by slot, and emits one
// record per non-blank cell it can resolve. Rice carries no tracked
// nutrition and is excluded. Cells whose classification or insertion fails
// are skipped; a single bad cell never aborts the run.
func (a *Analyzer) Analyze(ctx context.Context, plan planner.WeeklyPlan) ([]Record, []DailyTotal, error) {
	snapshot, err := a.snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	// Output order is weekday-major then slot enumeration order, regardless
	// of how the incoming plan is ordered.
	mealsByDay := make(map[planner.Weekday]map[planner.Slot]string, len(plan))
	for _, day := range plan {
		mealsByDay[day.Day] = day.Meals
	}

	var records []Record
	for _, day := range planner.Weekdays {
		for _, slot := range planner.Slots {
			if slot == planner.SlotRice {
				continue
			}
			menuName := strings.TrimSpace(mealsByDay[day][slot])
			if menuName == "" {
				continue
			}

			item, ok := snapshot[menuName]
			if !ok {
				item, snapshot, err = a.resolveUnknown(ctx, menuName, snapshot)
				if err != nil {
					a.log.Warnw("skipping menu", "menu", menuName, "day", day, "error", err)
					continue
				}
			}

			records = append(records, Record{
				Day:       day,
				Slot:      slot,
				Menu:      menuName,
				Nutrition: item.Nutrition,
			})
		}
	}

	return records, dailyTotals(records), nil
}

// resolveUnknown classifies an unknown menu, inserts it, and re-reads the
// catalog so later cells see the new item.
func (a *Analyzer) resolveUnknown(ctx context.Context, menuName string, snapshot map[string]catalog.MenuItem) (catalog.MenuItem, map[string]catalog.MenuItem, error) {
	item, err := a.classifier.Classify(ctx, menuName)
	if err != nil {
		return catalog.MenuItem{}, snapshot, fmt.Errorf("classification failed: %w", err)
	}
	if err := a.store.Insert(ctx, item); err != nil {
		return catalog.MenuItem{}, snapshot, fmt.Errorf("catalog insert failed: %w", err)
	}

	refreshed, err := a.snapshot(ctx)
	if err != nil {
		return catalog.MenuItem{}, snapshot, fmt.Errorf("catalog refresh failed: %w", err)
	}
	resolved, ok := refreshed[menuName]
	if !ok {
		return catalog.MenuItem{}, refreshed, fmt.Errorf("menu %q missing after insert", menuName)
	}
	return resolved, refreshed, nil
}

func (a *Analyzer) snapshot(ctx context.Context) (map[string]catalog.MenuItem, error) {
	items, err := a.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	byName := make(map[string]catalog.MenuItem, len(items))
	for _, item := range items {
		byName[item.Name] = item
	}
	return byName, nil
}

// dailyTotals sums records per weekday. Weekdays with no records produce no
// totals row.
func dailyTotals(records []Record) []DailyTotal {
	sums := make(map[planner.Weekday]catalog.Nutrition)
	for _, rec := range records {
		sums[rec.Day] = sums[rec.Day].Add(rec.Nutrition)
	}

	var totals []DailyTotal
	for _, day := range planner.Weekdays {
		if total, ok := sums[day]; ok {
			totals = append(totals, DailyTotal{Day: day, Total: total})
		}
	}
	return totals
}
