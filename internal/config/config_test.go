package config

import (
	"testing"

	"gokinet/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ADVISOR_ENABLED", "ADVISOR_BASE_URL", "MAX_SAMPLE_ROWS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults: %v", err)
	}

	if cfg.Advisor.Enabled {
		t.Error("advisor should default to disabled")
	}
	if cfg.Advisor.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL = %q", cfg.Advisor.BaseURL)
	}
	if cfg.Parse.MaxSampleRows != 20 {
		t.Errorf("MaxSampleRows = %d, want 20", cfg.Parse.MaxSampleRows)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q, want INFO", cfg.LogLevel)
	}
}

func TestLoadEnabledAdvisorRequiresKey(t *testing.T) {
	t.Setenv("ADVISOR_ENABLED", "true")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when advisor enabled without API key")
	}
	if errors.GetCode(err) != errors.CodeConfigInvalid {
		t.Errorf("code = %q, want CONFIG_INVALID", errors.GetCode(err))
	}
}

func TestLoadEnabledAdvisor(t *testing.T) {
	t.Setenv("ADVISOR_ENABLED", "true")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ADVISOR_MODEL", "gpt-4o")
	t.Setenv("ADVISOR_TIMEOUT_SECONDS", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Advisor.Enabled || cfg.Advisor.APIKey != "sk-test" {
		t.Errorf("advisor config = %+v", cfg.Advisor)
	}
	if cfg.Advisor.TimeoutSeconds != 15 {
		t.Errorf("TimeoutSeconds = %d, want 15", cfg.Advisor.TimeoutSeconds)
	}
}

func TestLoadRejectsBadBaseURL(t *testing.T) {
	t.Setenv("ADVISOR_BASE_URL", "not a url")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed base URL")
	}
}

func TestLoadNormalizesLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want DEBUG", cfg.LogLevel)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("ADVISOR_MAX_TOKENS", "many")
	t.Setenv("MAX_FILE_BYTES", "huge")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Advisor.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d, want default 2000", cfg.Advisor.MaxTokens)
	}
	if cfg.Parse.MaxFileBytes != 20<<20 {
		t.Errorf("MaxFileBytes = %d, want default", cfg.Parse.MaxFileBytes)
	}
}
