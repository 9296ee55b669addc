package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr    string `yaml:"http_addr"`
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`

	DatabaseDSN string `yaml:"database_dsn"`
	RedisURL    string `yaml:"redis_url"`

	EnableAI      bool `yaml:"enable_ai"`
	EnableCaching bool `yaml:"enable_caching"`

	JWTSecret    string   `yaml:"jwt_secret"`
	AdminAPIKey  string   `yaml:"admin_api_key"`
	APIKeyHeader string   `yaml:"api_key_header"`
	CORSOrigins  []string `yaml:"cors_origins"`

	LLM LLMConfig `yaml:"llm"`
}

// LLMConfig selects the completion provider and the models callers may request.
type LLMConfig struct {
	Provider      string      `yaml:"provider"`
	APIKey        string      `yaml:"api_key"`
	BaseURL       string      `yaml:"base_url"`
	DefaultModel  string      `yaml:"default_model"`
	AllowedModels []string    `yaml:"allowed_models"`
	ScraperModel  string      `yaml:"scraper_model"`
	Retry         RetryConfig `yaml:"retry"`
}

type RetryConfig struct {
	Attempts  int           `yaml:"attempts"`
	BaseDelay time.Duration `yaml:"base_delay"`
	MaxDelay  time.Duration `yaml:"max_delay"`
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load reads the environment, then overlays CONFIG_FILE when it is set.
func Load() (Config, error) {
	cfg := FromEnv()

	path := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	if path == "" {
		return cfg, nil
	}
	if err := cfg.overlayFile(path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func FromEnv() Config {
	provider := strings.ToLower(envOr("LLM_PROVIDER", "openai"))
	defaultModel := envOr("LLM_DEFAULT_MODEL", "gpt-3.5-turbo")

	return Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		Environment:   envOr("ENVIRONMENT", "development"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		LogFormat:     envOr("LOG_FORMAT", "text"),
		DatabaseDSN:   envOr("DATABASE_DSN", ""),
		RedisURL:      envOr("REDIS_URL", "redis://localhost:6379/0"),
		EnableAI:      envBool("ENABLE_AI_FEATURES", true),
		EnableCaching: envBool("ENABLE_CACHING", true),
		JWTSecret:     envOr("JWT_SECRET", ""),
		AdminAPIKey:   envOr("ADMIN_API_KEY", ""),
		APIKeyHeader:  envOr("API_KEY_HEADER", "x-api-key"),
		CORSOrigins:   csvOr("CORS_ALLOWED_ORIGINS", "*"),
		LLM: LLMConfig{
			Provider:      provider,
			APIKey:        providerAPIKey(provider),
			BaseURL:       envOr("OPENAI_BASE_URL", ""),
			DefaultModel:  defaultModel,
			AllowedModels: csvOr("LLM_ALLOWED_MODELS", "gpt-4,gpt-4o,gpt-3.5-turbo"),
			ScraperModel:  envOr("SCRAPER_MODEL", defaultModel),
			Retry: RetryConfig{
				Attempts:  envInt("LLM_RETRY_ATTEMPTS", 3),
				BaseDelay: envDuration("LLM_RETRY_BASE", 2*time.Second),
				MaxDelay:  envDuration("LLM_RETRY_MAX", 10*time.Second),
			},
		},
	}
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func providerAPIKey(provider string) string {
	switch provider {
	case "gemini":
		return envOr("GEMINI_API_KEY", "")
	case "anthropic":
		return envOr("ANTHROPIC_API_KEY", "")
	default:
		return envOr("OPENAI_API_KEY", "")
	}
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	raw := envOr(k, def)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
