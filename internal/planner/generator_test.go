package planner

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"menuplan/internal/catalog"
)

func testCatalog(soups, mains, sides, others int) []catalog.MenuItem {
	var items []catalog.MenuItem
	add := func(prefix string, cat catalog.Category, n int) {
		for i := 0; i < n; i++ {
			items = append(items, catalog.MenuItem{
				Name:     fmt.Sprintf("%s-%d", prefix, i),
				Category: cat,
			})
		}
	}
	add("soup", catalog.CategorySoup, soups)
	add("main", catalog.CategoryMain, mains)
	add("side", catalog.CategorySide, sides)
	add("other", catalog.CategoryOther, others)
	return items
}

func seededGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

func TestGenerateFillsMandatorySlots(t *testing.T) {
	g := seededGenerator(1)
	plan, err := g.Generate(testCatalog(5, 5, 10, 3))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(plan) != len(Weekdays) {
		t.Fatalf("Expected %d day plans, got %d", len(Weekdays), len(plan))
	}
	for i, day := range plan {
		if day.Day != Weekdays[i] {
			t.Errorf("Day %d: expected %s, got %s", i, Weekdays[i], day.Day)
		}
		if day.Meals[SlotRice] != RiceMenu {
			t.Errorf("%s: expected rice slot to be %q, got %q", day.Day, RiceMenu, day.Meals[SlotRice])
		}
		if day.Meals[SlotSoup] == "" {
			t.Errorf("%s: soup slot is empty", day.Day)
		}
		if day.Meals[SlotMain] == "" {
			t.Errorf("%s: main slot is empty", day.Day)
		}
	}
}

func TestGenerateDistinctSides(t *testing.T) {
	g := seededGenerator(2)
	plan, err := g.Generate(testCatalog(1, 1, 2, 0))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for _, day := range plan {
		side1, side2 := day.Meals[SlotSide1], day.Meals[SlotSide2]
		if side1 == "" || side2 == "" {
			t.Errorf("%s: expected both sides filled, got %q and %q", day.Day, side1, side2)
		}
		if side1 == side2 {
			t.Errorf("%s: side slots both hold %q", day.Day, side1)
		}
	}
}

func TestGenerateSingleSideLeavesSide2Empty(t *testing.T) {
	g := seededGenerator(3)
	plan, err := g.Generate(testCatalog(2, 2, 1, 0))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for _, day := range plan {
		if day.Meals[SlotSide1] != "side-0" {
			t.Errorf("%s: expected side-0 in Side1, got %q", day.Day, day.Meals[SlotSide1])
		}
		if day.Meals[SlotSide2] != "" {
			t.Errorf("%s: expected empty Side2, got %q", day.Day, day.Meals[SlotSide2])
		}
	}
}

func TestGenerateEmptyMandatoryCategory(t *testing.T) {
	g := seededGenerator(4)
	_, err := g.Generate(testCatalog(3, 0, 3, 0))
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("Expected ErrEmptyCatalog, got %v", err)
	}
}

func TestGenerateAvoidsRepeatsWhilePossible(t *testing.T) {
	// Enough items that no category pool runs dry during the week.
	g := seededGenerator(5)
	plan, err := g.Generate(testCatalog(5, 5, 10, 0))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	seen := make(map[string]Weekday)
	for _, day := range plan {
		for _, slot := range []Slot{SlotSoup, SlotMain, SlotSide1, SlotSide2} {
			name := day.Meals[slot]
			if name == "" {
				continue
			}
			if prev, ok := seen[name]; ok {
				t.Errorf("%q placed on both %s and %s", name, prev, day.Day)
			}
			seen[name] = day.Day
		}
	}
}

func TestGenerateRepeatsWhenCatalogSmall(t *testing.T) {
	// One soup for five days: repeats are the intended degradation.
	g := seededGenerator(6)
	plan, err := g.Generate(testCatalog(1, 1, 2, 0))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, day := range plan {
		if day.Meals[SlotSoup] != "soup-0" {
			t.Errorf("%s: expected soup-0, got %q", day.Day, day.Meals[SlotSoup])
		}
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	menus := testCatalog(4, 4, 6, 2)
	plan1, err := seededGenerator(42).Generate(menus)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	plan2, err := seededGenerator(42).Generate(menus)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !reflect.DeepEqual(plan1, plan2) {
		t.Error("Same seed produced different plans")
	}
}

func TestCandidatesFallsBackWhenExhausted(t *testing.T) {
	menus := testCatalog(2, 0, 0, 0)
	used := map[string]struct{}{"soup-0": {}}

	got := candidates(menus, catalog.CategorySoup, used)
	if len(got) != 1 || got[0].Name != "soup-1" {
		t.Fatalf("Expected only soup-1 as candidate, got %v", got)
	}

	used["soup-1"] = struct{}{}
	got = candidates(menus, catalog.CategorySoup, used)
	if len(got) != 2 {
		t.Fatalf("Expected fallback to all soups, got %v", got)
	}
}

func TestOtherCandidatesHaveNoFallback(t *testing.T) {
	menus := testCatalog(1, 1, 1, 1)
	used := map[string]struct{}{"other-0": {}}
	if got := otherCandidates(menus, used); len(got) != 0 {
		t.Fatalf("Expected empty pool once others are used, got %v", got)
	}
}
