package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	Environment string

	// Microsoft identity platform
	MicrosoftClientID     string
	MicrosoftClientSecret string
	MicrosoftTenantID     string
	MicrosoftRedirectURL  string
	Scopes                []string

	// Microsoft Graph
	GraphBaseURL string

	// Mailbox listing
	MaxPageSize int

	// OpenAI
	OpenAIAPIKey   string
	LLMModel       string
	LLMMaxTokens   int
	LLMTemperature float64
	LLMTimeoutSec  int

	// Session store
	RedisURL        string
	SessionTTLHours int

	// CORS
	AllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		MicrosoftClientID:     getEnv("MS_CLIENT_ID", ""),
		MicrosoftClientSecret: getEnv("MS_CLIENT_SECRET", ""),
		MicrosoftTenantID:     getEnv("MS_TENANT_ID", "common"),
		MicrosoftRedirectURL:  getEnv("MS_REDIRECT_URI", ""),
		Scopes: getEnvSlice("MS_SCOPES", []string{
			"Mail.Read", "Mail.ReadWrite", "Mail.Send", "User.Read", "offline_access",
		}),

		GraphBaseURL: getEnv("GRAPH_API_BASE_URL", "https://graph.microsoft.com/v1.0"),

		MaxPageSize: getEnvInt("MAX_PAGE_SIZE", 100),

		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		LLMModel:       getEnv("OPENAI_MODEL", "gpt-4o"),
		LLMMaxTokens:   getEnvInt("LLM_MAX_TOKENS", 2048),
		LLMTemperature: getEnvFloat("LLM_TEMPERATURE", 0.1),
		LLMTimeoutSec:  getEnvInt("LLM_TIMEOUT_SEC", 60),

		RedisURL:        getEnv("REDIS_URL", ""),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOUR", 24),

		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{
			"http://localhost:3000", "http://localhost:8000",
		}),
	}

	if cfg.MicrosoftClientID == "" || cfg.MicrosoftClientSecret == "" {
		return nil, fmt.Errorf("MS_CLIENT_ID and MS_CLIENT_SECRET are required")
	}
	if cfg.MicrosoftRedirectURL == "" {
		return nil, fmt.Errorf("MS_REDIRECT_URI is required")
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
