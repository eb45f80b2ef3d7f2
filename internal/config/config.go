package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"gokinet/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Advisor  AdvisorConfig
	Parse    ParseConfig
	LogLevel string `validate:"oneof=ERROR WARN INFO DEBUG"`
}

// AdvisorConfig holds LLM advisory settings. The advisor is optional;
// when disabled the heuristic suggester serves the same port.
type AdvisorConfig struct {
	Enabled        bool
	APIKey         string  `validate:"required_if=Enabled true"`
	BaseURL        string  `validate:"omitempty,url"`
	Model          string  `validate:"required_if=Enabled true"`
	MaxTokens      int     `validate:"gt=0"`
	Temperature    float64 `validate:"gte=0,lte=2"`
	TimeoutSeconds int     `validate:"gt=0"`
}

// ParseConfig holds upload parsing limits
type ParseConfig struct {
	MaxFileBytes  int64 `validate:"gte=0"`
	MaxSampleRows int   `validate:"gt=0"`
}

// Load reads configuration from the environment (and an optional .env
// file) and validates it.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg := &Config{
		Advisor: AdvisorConfig{
			Enabled:        getEnvBoolOrDefault("ADVISOR_ENABLED", false),
			APIKey:         os.Getenv("OPENAI_API_KEY"),
			BaseURL:        getEnvOrDefault("ADVISOR_BASE_URL", "https://api.openai.com/v1"),
			Model:          getEnvOrDefault("ADVISOR_MODEL", "gpt-4o-mini"),
			MaxTokens:      getEnvIntOrDefault("ADVISOR_MAX_TOKENS", 2000),
			Temperature:    getEnvFloatOrDefault("ADVISOR_TEMPERATURE", 0.2),
			TimeoutSeconds: getEnvIntOrDefault("ADVISOR_TIMEOUT_SECONDS", 60),
		},
		Parse: ParseConfig{
			MaxFileBytes:  getEnvInt64OrDefault("MAX_FILE_BYTES", 20<<20),
			MaxSampleRows: getEnvIntOrDefault("MAX_SAMPLE_ROWS", 20),
		},
		LogLevel: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}

	return cfg, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
