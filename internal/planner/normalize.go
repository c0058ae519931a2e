package planner

import (
	"errors"
	"strings"
)

// ErrMissingWeekdayColumn is returned when an imported sheet has no
// recognizable weekday column after label trimming.
var ErrMissingWeekdayColumn = errors.New("no weekday column found")

// ToSheet renders a plan in the transposed spreadsheet shape: a header row
// of weekday labels, then one row per slot with the slot label in the first
// column. Every slot row is present even when all its cells are empty.
func ToSheet(plan WeeklyPlan) [][]string {
	byDay := make(map[Weekday]map[Slot]string, len(plan))
	for _, day := range plan {
		byDay[day.Day] = day.Meals
	}

	header := make([]string, 0, len(Weekdays)+1)
	header = append(header, "")
	for _, day := range Weekdays {
		header = append(header, string(day))
	}

	rows := [][]string{header}
	for _, slot := range Slots {
		row := make([]string, 0, len(Weekdays)+1)
		row = append(row, string(slot))
		for _, day := range Weekdays {
			row = append(row, byDay[day][slot])
		}
		rows = append(rows, row)
	}
	return rows
}

// FromSheet reconciles the transposed spreadsheet shape back into a
// canonical plan. The first row holds weekday labels, the first column slot
// labels; both are trimmed and matched exactly. Unrecognized rows and
// columns are dropped, missing cells normalize to the empty string.
func FromSheet(rows [][]string) (WeeklyPlan, error) {
	if len(rows) == 0 {
		return nil, ErrMissingWeekdayColumn
	}

	dayByColumn := make(map[int]Weekday)
	for col, label := range rows[0] {
		if col == 0 {
			continue
		}
		if day, ok := parseWeekday(strings.TrimSpace(label)); ok {
			dayByColumn[col] = day
		}
	}
	if len(dayByColumn) == 0 {
		return nil, ErrMissingWeekdayColumn
	}

	plan := NewWeeklyPlan()
	mealsByDay := make(map[Weekday]map[Slot]string, len(plan))
	for _, day := range plan {
		mealsByDay[day.Day] = day.Meals
	}

	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		slot, ok := parseSlot(strings.TrimSpace(row[0]))
		if !ok {
			continue
		}
		for col, day := range dayByColumn {
			value := ""
			if col < len(row) {
				value = row[col]
			}
			mealsByDay[day][slot] = value
		}
	}

	return plan, nil
}

func parseWeekday(label string) (Weekday, bool) {
	for _, day := range Weekdays {
		if label == string(day) {
			return day, true
		}
	}
	return "", false
}

func parseSlot(label string) (Slot, bool) {
	for _, slot := range Slots {
		if label == string(slot) {
			return slot, true
		}
	}
	return "", false
}
