package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Generator providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Port string

	// Auth
	NexusdocAPIKey string

	// Report generation
	GeneratorProvider string
	GeminiAPIKey      string
	GeminiModel       string
	AnthropicAPIKey   string
	AnthropicModel    string
	GoogleSearch      bool
	GenerationTimeout time.Duration

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Request limits
	MaxBodyBytes int64

	// Rendering
	PreviewLimit int

	// Session state
	SessionTTL  time.Duration
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		NexusdocAPIKey: os.Getenv("NEXUSDOC_API_KEY"),

		GeneratorProvider: envOr("GENERATOR_PROVIDER", ProviderGemini),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:    envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		GoogleSearch:      envBool("GOOGLE_SEARCH", true),
		GenerationTimeout: envDuration("GENERATION_TIMEOUT", 5*time.Minute),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxBodyBytes: envInt64("MAX_BODY_BYTES", 4194304), // 4MB

		PreviewLimit: envInt("PREVIEW_LIMIT", 4096),

		SessionTTL:  envDuration("SESSION_TTL", 1*time.Hour),
		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 4194304
	}
	if cfg.PreviewLimit <= 0 {
		cfg.PreviewLimit = 4096
	}
	if cfg.GenerationTimeout <= 0 {
		cfg.GenerationTimeout = 5 * time.Minute
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

// Validate checks the settings the server needs. Rendering alone needs
// none of them, so the CLI skips this.
func (c Config) Validate() error {
	if c.NexusdocAPIKey == "" {
		return fmt.Errorf("NEXUSDOC_API_KEY is required")
	}
	return c.ValidateGenerator()
}

// ValidateGenerator checks the selected provider has credentials.
func (c Config) ValidateGenerator() error {
	switch c.GeneratorProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider %q", c.GeneratorProvider)
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for provider %q", c.GeneratorProvider)
		}
	default:
		return fmt.Errorf("GENERATOR_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderAnthropic, c.GeneratorProvider)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
