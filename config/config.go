package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DataDir         string
	DatabaseURL     string
	LLMProvider     string
	DefaultModel    string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	SafetyEnabled   bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] No .env file found, using environment variables")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		DatabaseURL:     os.Getenv("DB_URL"),
		LLMProvider:     getEnv("LLM_PROVIDER", "openai"),
		DefaultModel:    getEnv("DEFAULT_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		SafetyEnabled:   getEnv("SAFETY_ENABLED", "true") != "false",
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
