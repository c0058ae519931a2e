package classify

import (
	"errors"
	"testing"

	"menuplan/internal/catalog"
)

func TestParseClassification(t *testing.T) {
	raw := `{"category": "Main", "nutrition": {"calories": 420, "protein": 30, "fat": 12, "carbs": 45, "sodium": 900}}`

	item, err := parseClassification("Chicken Curry", raw)
	if err != nil {
		t.Fatalf("parseClassification failed: %v", err)
	}
	if item.Name != "Chicken Curry" {
		t.Errorf("Expected name 'Chicken Curry', got %q", item.Name)
	}
	if item.Category != catalog.CategoryMain {
		t.Errorf("Expected Main category, got %s", item.Category)
	}
	want := catalog.Nutrition{Calories: 420, Protein: 30, Fat: 12, Carbs: 45, Sodium: 900}
	if item.Nutrition != want {
		t.Errorf("Nutrition %+v, want %+v", item.Nutrition, want)
	}
}

func TestParseClassificationExtractsWrappedJSON(t *testing.T) {
	raw := "Here is the analysis you asked for:\n" +
		`{"category": "side", "nutrition": {"calories": 50, "protein": 2, "fat": 1, "carbs": 8, "sodium": 300}}` +
		"\nLet me know if you need anything else."

	item, err := parseClassification("Kimchi", raw)
	if err != nil {
		t.Fatalf("parseClassification failed: %v", err)
	}
	if item.Category != catalog.CategorySide {
		t.Errorf("Expected Side category, got %s", item.Category)
	}
}

func TestParseClassificationUnknownCategoryIsOther(t *testing.T) {
	raw := `{"category": "Dessert", "nutrition": {"calories": 200, "protein": 3, "fat": 9, "carbs": 28, "sodium": 80}}`

	item, err := parseClassification("Cake", raw)
	if err != nil {
		t.Fatalf("parseClassification failed: %v", err)
	}
	if item.Category != catalog.CategoryOther {
		t.Errorf("Expected Other category, got %s", item.Category)
	}
}

func TestParseClassificationClampsNegatives(t *testing.T) {
	raw := `{"category": "Side", "nutrition": {"calories": -50, "protein": 2, "fat": 1, "carbs": 8, "sodium": 300}}`

	item, err := parseClassification("Kimchi", raw)
	if err != nil {
		t.Fatalf("parseClassification failed: %v", err)
	}
	if item.Nutrition.Calories != 0 {
		t.Errorf("Expected negative calories clamped to 0, got %v", item.Nutrition.Calories)
	}
}

func TestParseClassificationMalformed(t *testing.T) {
	cases := map[string]string{
		"NotJSON":          "the menu is probably a soup",
		"MissingCategory":  `{"nutrition": {"calories": 1, "protein": 1, "fat": 1, "carbs": 1, "sodium": 1}}`,
		"MissingNutrient":  `{"category": "Soup", "nutrition": {"calories": 1, "protein": 1, "fat": 1, "carbs": 1}}`,
		"MissingNutrition": `{"category": "Soup"}`,
		"BrokenJSON":       `{"category": "Soup", "nutrition": {`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := parseClassification("x", raw); !errors.Is(err, ErrMalformed) {
				t.Fatalf("Expected ErrMalformed, got %v", err)
			}
		})
	}
}
