// Package translate provides pluggable machine translation backends used
// to bring comments into English before sentiment scoring.
package translate

import (
	"context"
	"errors"
)

// Provider names accepted in translation settings.
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderCompatible = "compatible"
)

// Configuration errors returned by NewProvider.
var (
	ErrMissingAPIKey   = errors.New("api key is required")
	ErrMissingModel    = errors.New("model is required")
	ErrMissingBaseURL  = errors.New("base url is required for compatible providers")
	ErrInvalidProvider = errors.New("invalid provider")
)

// Provider is a machine translation backend.
type Provider interface {
	// Name returns the provider identifier.
	Name() string
	// Test sends a trivial request to verify connectivity and credentials.
	Test(ctx context.Context) (string, error)
	// Translate renders text into the target language given as an ISO code.
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Config selects and configures a translation backend.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// NewProvider builds a Provider from the config.
func NewProvider(cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, "")
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case ProviderCompatible:
		if cfg.BaseURL == "" {
			return nil, ErrMissingBaseURL
		}
		return NewCompatibleProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	default:
		return nil, ErrInvalidProvider
	}
}
