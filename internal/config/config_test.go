package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/saulo-duarte/smart-quiz/internal/config"
)

func TestFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "")
		t.Setenv("LLM_ALLOWED_MODELS", "")
		t.Setenv("ENABLE_AI_FEATURES", "")

		cfg := config.FromEnv()

		if cfg.LLM.Provider != "openai" {
			t.Errorf("expected default provider openai, got %q", cfg.LLM.Provider)
		}
		if cfg.LLM.DefaultModel != "gpt-3.5-turbo" {
			t.Errorf("unexpected default model %q", cfg.LLM.DefaultModel)
		}
		if len(cfg.LLM.AllowedModels) != 3 {
			t.Errorf("expected 3 allowed models, got %v", cfg.LLM.AllowedModels)
		}
		if !cfg.EnableAI {
			t.Error("AI features should be enabled by default")
		}
		if cfg.LLM.Retry.Attempts != 3 || cfg.LLM.Retry.BaseDelay != 2*time.Second {
			t.Errorf("unexpected retry defaults: %+v", cfg.LLM.Retry)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "Gemini")
		t.Setenv("GEMINI_API_KEY", "g-key")
		t.Setenv("LLM_ALLOWED_MODELS", " gemini-2.0-flash , ,gemini-1.5-pro")
		t.Setenv("ENABLE_AI_FEATURES", "false")
		t.Setenv("LLM_RETRY_ATTEMPTS", "not-a-number")

		cfg := config.FromEnv()

		if cfg.LLM.Provider != "gemini" {
			t.Errorf("provider should be lower-cased, got %q", cfg.LLM.Provider)
		}
		if cfg.LLM.APIKey != "g-key" {
			t.Errorf("expected provider specific api key, got %q", cfg.LLM.APIKey)
		}
		if len(cfg.LLM.AllowedModels) != 2 || cfg.LLM.AllowedModels[1] != "gemini-1.5-pro" {
			t.Errorf("unexpected allowed models %v", cfg.LLM.AllowedModels)
		}
		if cfg.EnableAI {
			t.Error("AI features should be disabled")
		}
		if cfg.LLM.Retry.Attempts != 3 {
			t.Errorf("invalid attempts should fall back to default, got %d", cfg.LLM.Retry.Attempts)
		}
	})
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
redis_url: ${TEST_REDIS_URL}
llm:
  default_model: gpt-4o
  retry:
    attempts: 5
    base_delay: 500ms
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TEST_REDIS_URL", "redis://cache:6379/2")
	t.Setenv("CONFIG_FILE", path)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RedisURL != "redis://cache:6379/2" {
		t.Errorf("env var in file was not expanded: %q", cfg.RedisURL)
	}
	if cfg.LLM.DefaultModel != "gpt-4o" {
		t.Errorf("unexpected default model %q", cfg.LLM.DefaultModel)
	}
	if cfg.LLM.Retry.Attempts != 5 || cfg.LLM.Retry.BaseDelay != 500*time.Millisecond {
		t.Errorf("unexpected retry config %+v", cfg.LLM.Retry)
	}
	if cfg.HTTPAddr == "" {
		t.Error("values absent from the file should keep their env defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
