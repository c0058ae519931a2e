package classify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"menuplan/internal/catalog"
)

func testOpenAIClient(srv *httptest.Server) *OpenAIClient {
	c := NewOpenAIClient("test-key", "")
	c.baseURL = srv.URL
	return c
}

func completionResponse(content string) string {
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestOpenAIClassifySuccess(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionResponse(
			`{"category": "Soup", "nutrition": {"calories": 90, "protein": 4, "fat": 3, "carbs": 10, "sodium": 700}}`)))
	}))
	defer srv.Close()

	item, err := testOpenAIClient(srv).Classify(context.Background(), "Miso Soup")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
	if item.Category != catalog.CategorySoup {
		t.Errorf("Expected Soup category, got %s", item.Category)
	}
	if item.Nutrition.Calories != 90 {
		t.Errorf("Expected 90 calories, got %v", item.Nutrition.Calories)
	}
}

func TestOpenAIClassifyAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testOpenAIClient(srv).Classify(context.Background(), "Miso Soup")
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("Expected ErrAuth, got %v", err)
	}
}

func TestOpenAIClassifyServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testOpenAIClient(srv).Classify(context.Background(), "Miso Soup")
	if !errors.Is(err, ErrService) {
		t.Fatalf("Expected ErrService, got %v", err)
	}
}

func TestOpenAIClassifyTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := testOpenAIClient(srv).Classify(context.Background(), "Miso Soup")
	if !errors.Is(err, ErrService) {
		t.Fatalf("Expected ErrService, got %v", err)
	}
}

func TestOpenAIClassifyMalformedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionResponse("I am not sure what this dish is.")))
	}))
	defer srv.Close()

	_, err := testOpenAIClient(srv).Classify(context.Background(), "Miso Soup")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("Expected ErrMalformed, got %v", err)
	}
}

func TestOpenAIClassifyEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	_, err := testOpenAIClient(srv).Classify(context.Background(), "Miso Soup")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("Expected ErrMalformed, got %v", err)
	}
}

func TestOpenAIClassifySendsModelAndMessages(t *testing.T) {
	var req struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&req)
		w.Write([]byte(completionResponse(
			`{"category": "Main", "nutrition": {"calories": 1, "protein": 1, "fat": 1, "carbs": 1, "sodium": 1}}`)))
	}))
	defer srv.Close()

	c := NewOpenAIClient("k", "gpt-test")
	c.baseURL = srv.URL
	if _, err := c.Classify(context.Background(), "Bulgogi"); err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if req.Model != "gpt-test" {
		t.Errorf("Expected model override 'gpt-test', got %q", req.Model)
	}
	if len(req.Messages) != 2 || req.Messages[1].Content != "Bulgogi" {
		t.Errorf("Expected system+user messages with the menu name, got %+v", req.Messages)
	}
}
