package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"menuplan/internal/catalog"
)

const (
	openaiAPIURL       = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel = "gpt-4o-mini"
)

// OpenAIClient classifies menu names via the OpenAI chat-completions API.
type OpenAIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI-backed classifier. An empty model
// selects the default.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: openaiAPIURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Classify sends the menu name to the model and parses the structured reply.
func (c *OpenAIClient) Classify(ctx context.Context, menuName string) (catalog.MenuItem, error) {
	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": menuName},
		},
		"temperature":     0.3,
		"max_tokens":      500,
		"response_format": map[string]string{"type": "json_object"},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return catalog.MenuItem{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return catalog.MenuItem{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return catalog.MenuItem{}, fmt.Errorf("failed to send request: %v: %w", err, ErrService)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return catalog.MenuItem{}, fmt.Errorf("openai api status=%d: %w", resp.StatusCode, ErrAuth)
	case resp.StatusCode != http.StatusOK:
		bodyBytes, _ := io.ReadAll(resp.Body)
		return catalog.MenuItem{}, fmt.Errorf("openai api status=%d body=%s: %w",
			resp.StatusCode, string(bodyBytes), ErrService)
	}

	var openaiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&openaiResp); err != nil {
		return catalog.MenuItem{}, fmt.Errorf("failed to decode response: %v: %w", err, ErrMalformed)
	}
	if len(openaiResp.Choices) == 0 {
		return catalog.MenuItem{}, fmt.Errorf("no content generated: %w", ErrMalformed)
	}

	return parseClassification(menuName, openaiResp.Choices[0].Message.Content)
}
