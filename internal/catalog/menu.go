package catalog

import "strings"

// Category classifies a menu item. Anything outside the three slot
// categories is treated as CategoryOther.
type Category string

const (
	CategorySoup  Category = "Soup"
	CategoryMain  Category = "Main"
	CategorySide  Category = "Side"
	CategoryOther Category = "Other"
)

// ParseCategory maps a free-form category string onto one of the known
// categories. Matching is case-insensitive after trimming.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "soup":
		return CategorySoup
	case "main":
		return CategoryMain
	case "side":
		return CategorySide
	default:
		return CategoryOther
	}
}

// Nutrition holds the tracked nutrition facts for one menu item.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Sodium   float64 `json:"sodium"`
}

// Add returns the element-wise sum of two nutrition values.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Fat:      n.Fat + o.Fat,
		Carbs:    n.Carbs + o.Carbs,
		Sodium:   n.Sodium + o.Sodium,
	}
}

// Clamped returns a copy with negative values raised to zero. Nutrition
// facts coming back from the classification service are untrusted.
func (n Nutrition) Clamped() Nutrition {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		return v
	}
	return Nutrition{
		Calories: clamp(n.Calories),
		Protein:  clamp(n.Protein),
		Fat:      clamp(n.Fat),
		Carbs:    clamp(n.Carbs),
		Sodium:   clamp(n.Sodium),
	}
}

// MenuItem is a catalog entry. Name is the unique key across all store
// operations.
type MenuItem struct {
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Nutrition Nutrition `json:"nutrition"`
}
