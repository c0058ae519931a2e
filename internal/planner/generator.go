package planner

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"menuplan/internal/catalog"
)

// ErrEmptyCatalog is returned when a mandatory slot category has no items
// anywhere in the catalog.
var ErrEmptyCatalog = errors.New("catalog has no items for a mandatory category")

// otherProbability is the chance that a given day gets an extra menu in the
// Other slot.
const otherProbability = 0.2

var mandatoryCategories = []catalog.Category{
	catalog.CategorySoup,
	catalog.CategoryMain,
	catalog.CategorySide,
}

// Generator produces randomized weekly plans from a catalog snapshot.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator using the given random source. A nil rng
// seeds one from the clock; tests inject a seeded source for determinism.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Generate builds a five-day plan from the catalog snapshot. Selection is
// biased away from menus already placed earlier in the week; once a
// category's unused pool runs dry, repeats are allowed rather than failing.
func (g *Generator) Generate(menus []catalog.MenuItem) (WeeklyPlan, error) {
	for _, cat := range mandatoryCategories {
		if len(itemsOfCategory(menus, cat)) == 0 {
			return nil, fmt.Errorf("no %s items in catalog: %w", cat, ErrEmptyCatalog)
		}
	}

	plan := NewWeeklyPlan()
	used := make(map[string]struct{})

	for i := range plan {
		day := &plan[i]

		soup := g.pick(candidates(menus, catalog.CategorySoup, used))
		main := g.pick(candidates(menus, catalog.CategoryMain, used))

		sides := candidates(menus, catalog.CategorySide, used)
		side1 := g.pick(sides)
		side2 := g.pick(withoutName(sides, side1))

		day.Meals[SlotRice] = RiceMenu
		day.Meals[SlotSoup] = soup
		day.Meals[SlotMain] = main
		day.Meals[SlotSide1] = side1
		day.Meals[SlotSide2] = side2

		if g.rng.Float64() < otherProbability {
			day.Meals[SlotOther] = g.pick(otherCandidates(menus, used))
		}

		for _, slot := range Slots {
			if name := day.Meals[slot]; name != "" {
				used[name] = struct{}{}
			}
		}
	}

	return plan, nil
}

// pick draws one item uniformly at random, or "" when the pool is empty.
func (g *Generator) pick(items []catalog.MenuItem) string {
	if len(items) == 0 {
		return ""
	}
	return items[g.rng.Intn(len(items))].Name
}

// candidates returns the unused items of a category, falling back to every
// item of the category once the unused pool is exhausted. Repeats past that
// point are intentional degradation, not an error.
func candidates(menus []catalog.MenuItem, cat catalog.Category, used map[string]struct{}) []catalog.MenuItem {
	var unused []catalog.MenuItem
	for _, item := range itemsOfCategory(menus, cat) {
		if _, ok := used[item.Name]; !ok {
			unused = append(unused, item)
		}
	}
	if len(unused) > 0 {
		return unused
	}
	return itemsOfCategory(menus, cat)
}

// otherCandidates returns the unused items outside all mandatory categories.
// There is no fallback: an exhausted pool leaves the Other slot empty.
func otherCandidates(menus []catalog.MenuItem, used map[string]struct{}) []catalog.MenuItem {
	var items []catalog.MenuItem
	for _, item := range menus {
		if isMandatory(item.Category) {
			continue
		}
		if _, ok := used[item.Name]; ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

func itemsOfCategory(menus []catalog.MenuItem, cat catalog.Category) []catalog.MenuItem {
	var items []catalog.MenuItem
	for _, item := range menus {
		if item.Category == cat {
			items = append(items, item)
		}
	}
	return items
}

func withoutName(items []catalog.MenuItem, name string) []catalog.MenuItem {
	var rest []catalog.MenuItem
	for _, item := range items {
		if item.Name != name {
			rest = append(rest, item)
		}
	}
	return rest
}

func isMandatory(cat catalog.Category) bool {
	for _, m := range mandatoryCategories {
		if cat == m {
			return true
		}
	}
	return false
}
