package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all environmentally dependent settings for the Bookmuse API.
// It is constructed once at startup and passed explicitly to every component
// that needs it; nothing reads the environment afterwards.
type Config struct {
	Port     int    `env:"BM_PORT" envDefault:"8080"`
	LogLevel string `env:"BM_LOG_LEVEL" envDefault:"info"`

	GeminiAPIKey    string `env:"BM_GEMINI_API_KEY"`
	OllamaHost      string `env:"BM_OLLAMA_HOST" envDefault:"http://localhost:11434"`
	OllamaModel     string `env:"BM_OLLAMA_MODEL" envDefault:"llama3"`
	UseLocalOnlyLLM bool   `env:"BM_USE_LOCAL_ONLY_LLM" envDefault:"false"`

	GoogleBooksBaseURL string `env:"BM_GOOGLE_BOOKS_BASE_URL" envDefault:"https://www.googleapis.com/books/v1/volumes"`
	GoogleBooksAPIKey  string `env:"BM_GOOGLE_BOOKS_API_KEY"`
	GoogleBooksRPS     int    `env:"BM_GOOGLE_BOOKS_RPS" envDefault:"5"`

	SQLitePath string `env:"BM_SQLITE_PATH" envDefault:"bookmuse.db"`

	RequestTimeoutSec int `env:"BM_REQUEST_TIMEOUT_SEC" envDefault:"30"`
}

// RequestTimeout is the per-request deadline for the discovery pipelines.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// Validate ensures that all required configuration is present and valid.
func (c *Config) Validate() error {
	if !c.UseLocalOnlyLLM && c.GeminiAPIKey == "" {
		return fmt.Errorf("BM_GEMINI_API_KEY is required when BM_USE_LOCAL_ONLY_LLM is false")
	}
	if c.GoogleBooksAPIKey == "" {
		return fmt.Errorf("BM_GOOGLE_BOOKS_API_KEY is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("BM_PORT must be between 1 and 65535")
	}
	if c.GoogleBooksRPS < 1 {
		return fmt.Errorf("BM_GOOGLE_BOOKS_RPS must be at least 1")
	}
	if c.RequestTimeoutSec < 1 {
		return fmt.Errorf("BM_REQUEST_TIMEOUT_SEC must be at least 1")
	}
	return nil
}

// Load reads settings from the environment (and an optional .env file).
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("[Config] Failed to parse config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[Config] Validation failed: %v", err)
	}
	return cfg
}
