package generate

import (
	"github.com/dgallion1/nexusdoc/internal/config"
)

// FromConfig builds the generator for the configured provider.
func FromConfig(cfg config.Config) (Generator, error) {
	if err := cfg.ValidateGenerator(); err != nil {
		return nil, err
	}
	if cfg.GeneratorProvider == config.ProviderAnthropic {
		return NewClaude(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	}
	return NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GoogleSearch), nil
}
