package classify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"menuplan/internal/catalog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiClient classifies menu names via the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a new Gemini-backed classifier. An empty model
// name selects the default.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"
	return &GeminiClient{client: client, model: model}, nil
}

// Classify sends the menu name to the model and parses the structured reply.
func (c *GeminiClient) Classify(ctx context.Context, menuName string) (catalog.MenuItem, error) {
	prompt := fmt.Sprintf("%s\n\nMenu item: %s", systemPrompt, menuName)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) &&
			(apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
			return catalog.MenuItem{}, fmt.Errorf("gemini auth rejected: %v: %w", err, ErrAuth)
		}
		return catalog.MenuItem{}, fmt.Errorf("failed to generate content: %v: %w", err, ErrService)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return catalog.MenuItem{}, fmt.Errorf("no content generated: %w", ErrMalformed)
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return catalog.MenuItem{}, fmt.Errorf("generated content is not text: %w", ErrMalformed)
	}

	return parseClassification(menuName, string(text))
}

// Close closes the underlying Gemini client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
