// Package workbook is the xlsx boundary: it writes plans with their
// nutrition sheets and reads plans and menu lists back in.
package workbook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"menuplan/internal/nutrition"
	"menuplan/internal/planner"

	"github.com/xuri/excelize/v2"
)

// Recognized meal-period sheet names. Import accepts a workbook only when
// one of these is present (after trimming).
const (
	SheetLunch  = "Lunch"
	SheetDinner = "Dinner"
)

const (
	sheetNutrition   = "Nutrition Detail"
	sheetDailyTotals = "Daily Totals"
)

// ErrNoMealSheet is returned when an imported workbook contains neither a
// Lunch nor a Dinner sheet.
var ErrNoMealSheet = errors.New("no Lunch or Dinner sheet found")

// Export writes the plan and its analysis to an xlsx file. The filename
// hints which meal-period sheets to emit: "dinner" in the name adds a
// Dinner sheet, "lunch" (or neither word) adds a Lunch sheet. The Daily
// Totals sheet is only written when there are nutrition records.
func Export(path string, plan planner.WeeklyPlan, records []nutrition.Record, totals []nutrition.DailyTotal) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	planRows := stringRows(planner.ToSheet(plan))
	for _, sheet := range periodSheets(path) {
		if err := writeRows(f, sheet, planRows); err != nil {
			return err
		}
	}

	if err := writeRows(f, sheetNutrition, nutritionRows(records)); err != nil {
		return err
	}
	if len(records) > 0 {
		if err := writeRows(f, sheetDailyTotals, totalsRows(totals)); err != nil {
			return err
		}
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Import reads a plan from an xlsx file. The meal-period sheet's first
// column holds slot labels and its first row weekday labels; shape
// reconciliation is delegated to the planner normalizer.
func Import(path string) (planner.WeeklyPlan, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := findMealSheet(f)
	if sheet == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrNoMealSheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return planner.FromSheet(rows)
}

// ReadMenuColumn reads menu names from the first column of a workbook's
// first sheet. The column header must be "Menu"; blank cells are dropped.
func ReadMenuColumn(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 || strings.TrimSpace(rows[0][0]) != "Menu" {
		return nil, fmt.Errorf("first column of %s must have header \"Menu\"", path)
	}

	var names []string
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		if name := strings.TrimSpace(row[0]); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// periodSheets decides which meal-period sheets the filename asks for. A
// name mentioning neither period defaults to lunch.
func periodSheets(path string) []string {
	name := strings.ToLower(filepath.Base(path))
	var sheets []string
	if strings.Contains(name, "lunch") || !strings.Contains(name, "dinner") {
		sheets = append(sheets, SheetLunch)
	}
	if strings.Contains(name, "dinner") {
		sheets = append(sheets, SheetDinner)
	}
	return sheets
}

func findMealSheet(f *excelize.File) string {
	for _, sheet := range f.GetSheetList() {
		trimmed := strings.TrimSpace(sheet)
		if trimmed == SheetLunch || trimmed == SheetDinner {
			return sheet
		}
	}
	return ""
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+1, sheet, err)
		}
	}
	return nil
}

func stringRows(rows [][]string) [][]interface{} {
	out := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v
		}
		out = append(out, cells)
	}
	return out
}

func nutritionRows(records []nutrition.Record) [][]interface{} {
	rows := [][]interface{}{
		{"Day", "Slot", "Menu", "Calories", "Protein", "Fat", "Carbs", "Sodium"},
	}
	for _, rec := range records {
		rows = append(rows, []interface{}{
			string(rec.Day), string(rec.Slot), rec.Menu,
			rec.Nutrition.Calories, rec.Nutrition.Protein, rec.Nutrition.Fat,
			rec.Nutrition.Carbs, rec.Nutrition.Sodium,
		})
	}
	return rows
}

func totalsRows(totals []nutrition.DailyTotal) [][]interface{} {
	rows := [][]interface{}{
		{"Day", "Calories", "Protein", "Fat", "Carbs", "Sodium"},
	}
	for _, t := range totals {
		rows = append(rows, []interface{}{
			string(t.Day), t.Total.Calories, t.Total.Protein, t.Total.Fat,
			t.Total.Carbs, t.Total.Sodium,
		})
	}
	return rows
}
