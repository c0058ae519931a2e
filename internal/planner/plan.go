// Package planner builds weekly meal plans from a menu catalog and converts
// them between the canonical weekday-row shape and the transposed sheet
// shape used by spreadsheet import and export.
package planner

// Weekday is one of the five fixed plan days.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
)

// Weekdays lists the plan days in their fixed order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// Slot is a named position in a day's plan.
type Slot string

const (
	SlotRice  Slot = "Rice"
	SlotSoup  Slot = "Soup"
	SlotMain  Slot = "Main"
	SlotSide1 Slot = "Side1"
	SlotSide2 Slot = "Side2"
	SlotOther Slot = "Other"
)

// Slots lists every slot in its fixed enumeration order.
var Slots = []Slot{SlotRice, SlotSoup, SlotMain, SlotSide1, SlotSide2, SlotOther}

// RiceMenu is the fixed value for the rice slot. It is literal and does not
// depend on the catalog.
const RiceMenu = "Rice"

// DayPlan maps each slot to a menu name for one weekday. Empty slots hold
// the empty string.
type DayPlan struct {
	Day   Weekday         `json:"day"`
	Meals map[Slot]string `json:"meals"`
}

// WeeklyPlan is an ordered sequence of five day plans, Monday through
// Friday.
type WeeklyPlan []DayPlan

// NewWeeklyPlan returns a plan with all five days present and every slot
// empty.
func NewWeeklyPlan() WeeklyPlan {
	plan := make(WeeklyPlan, 0, len(Weekdays))
	for _, day := range Weekdays {
		meals := make(map[Slot]string, len(Slots))
		for _, slot := range Slots {
			meals[slot] = ""
		}
		plan = append(plan, DayPlan{Day: day, Meals: meals})
	}
	return plan
}
