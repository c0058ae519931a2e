package config

import (
	"fmt"
	"os"
)

// Classifier backends.
const (
	BackendOpenAI = "openai"
	BackendGemini = "gemini"
)

// Config holds the configuration for the application.
type Config struct {
	ClassifierBackend string
	OpenAIAPIKey      string
	OpenAIModel       string
	GeminiAPIKey      string
	GeminiModel       string

	DBPath    string
	ExportDir string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	backend := os.Getenv("CLASSIFIER_BACKEND")
	if backend == "" {
		backend = BackendOpenAI
	}

	cfg := &Config{
		ClassifierBackend: backend,
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       os.Getenv("OPENAI_MODEL"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       os.Getenv("GEMINI_MODEL"),
		DBPath:            os.Getenv("MEAL_DB_PATH"),
		ExportDir:         os.Getenv("EXPORT_DIR"),
	}

	switch backend {
	case BackendOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case BackendGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unknown classifier backend %q", backend)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = "data/meal.db"
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "exports"
	}

	return cfg, nil
}
