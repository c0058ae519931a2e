// Package classify resolves a bare menu name into a category and nutrition
// facts via an external text-understanding service.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"menuplan/internal/catalog"
)

// Classification failures are distinguishable for callers that care, but the
// analyzer treats all three the same way: skip the item, keep going.
var (
	// ErrAuth indicates the service rejected our credentials.
	ErrAuth = errors.New("classification auth failure")
	// ErrService indicates a transport or server-side failure.
	ErrService = errors.New("classification service failure")
	// ErrMalformed indicates the service answered with something we could
	// not turn into a menu item.
	ErrMalformed = errors.New("malformed classification response")
)

// Classifier derives a menu item from a menu name.
type Classifier interface {
	Classify(ctx context.Context, menuName string) (catalog.MenuItem, error)
}

// systemPrompt is shared by all backends so they honor the same contract.
const systemPrompt = `Analyze the given menu item and classify it as JSON.
The response must be a JSON object with exactly this structure:
{
    "category": "Soup" | "Main" | "Side",
    "nutrition": {
        "calories": number,
        "protein": number,
        "fat": number,
        "carbs": number,
        "sodium": number
    }
}
Values are per typical single serving. Do not include any other text.`

type classificationPayload struct {
	Category  string `json:"category"`
	Nutrition struct {
		Calories *float64 `json:"calories"`
		Protein  *float64 `json:"protein"`
		Fat      *float64 `json:"fat"`
		Carbs    *float64 `json:"carbs"`
		Sodium   *float64 `json:"sodium"`
	} `json:"nutrition"`
}

// parseClassification turns a raw model response into a MenuItem. Models
// occasionally wrap the JSON in prose, so the outermost brace pair is
// extracted before unmarshalling.
func parseClassification(menuName, raw string) (catalog.MenuItem, error) {
	content := strings.TrimSpace(raw)
	if !strings.HasPrefix(content, "{") {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start < 0 || end < start {
			return catalog.MenuItem{}, fmt.Errorf("no JSON object in response: %w", ErrMalformed)
		}
		content = content[start : end+1]
	}

	var payload classificationPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return catalog.MenuItem{}, fmt.Errorf("failed to parse response JSON: %v: %w", err, ErrMalformed)
	}

	if payload.Category == "" {
		return catalog.MenuItem{}, fmt.Errorf("response missing category: %w", ErrMalformed)
	}
	required := map[string]*float64{
		"calories": payload.Nutrition.Calories,
		"protein":  payload.Nutrition.Protein,
		"fat":      payload.Nutrition.Fat,
		"carbs":    payload.Nutrition.Carbs,
		"sodium":   payload.Nutrition.Sodium,
	}
	for field, v := range required {
		if v == nil {
			return catalog.MenuItem{}, fmt.Errorf("response missing nutrition field %q: %w", field, ErrMalformed)
		}
	}

	nutrition := catalog.Nutrition{
		Calories: *payload.Nutrition.Calories,
		Protein:  *payload.Nutrition.Protein,
		Fat:      *payload.Nutrition.Fat,
		Carbs:    *payload.Nutrition.Carbs,
		Sodium:   *payload.Nutrition.Sodium,
	}

	return catalog.MenuItem{
		Name:      menuName,
		Category:  catalog.ParseCategory(payload.Category),
		Nutrition: nutrition.Clamped(),
	}, nil
}
