//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"citypulse/backend/internal/langdetect"
	"citypulse/backend/internal/metrics"
	"citypulse/backend/internal/translate"
)

var ErrTranslationNotConfigured = errors.New("translation provider not configured")

// TranslationService renders comment text in English using the provider
// configured in settings.
type TranslationService interface {
	// Translate blocks on the configured rate limit, then calls the
	// provider. It fails with ErrTranslationNotConfigured when no usable
	// provider is stored.
	Translate(ctx context.Context, text string) (string, error)
	// AutoEnabled reports whether submissions should be translated inline.
	AutoEnabled(ctx context.Context) bool
	// Configured reports whether a usable provider is stored.
	Configured(ctx context.Context) bool
}

type translationService struct {
	settings    SettingsService
	limiter     *translate.RateLimiter
	newProvider func(translate.Config) (translate.Provider, error)
}

func NewTranslationService(settings SettingsService, limiter *translate.RateLimiter) TranslationService {
	return &translationService{
		settings:    settings,
		limiter:     limiter,
		newProvider: translate.NewProvider,
	}
}

func (s *translationService) Translate(ctx context.Context, text string) (string, error) {
	cfg, _, err := s.settings.GetTranslationConfig(ctx)
	if err != nil {
		return "", err
	}
	if cfg.APIKey == "" || cfg.Model == "" {
		return "", ErrTranslationNotConfigured
	}

	provider, err := s.newProvider(cfg)
	if err != nil {
		return "", err
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	result, err := provider.Translate(ctx, text, langdetect.English)
	if err != nil {
		metrics.Translations.WithLabelValues("error").Inc()
		return "", fmt.Errorf("translate with %s: %w", provider.Name(), err)
	}

	result = strings.TrimSpace(result)
	if result == "" {
		metrics.Translations.WithLabelValues("error").Inc()
		return "", fmt.Errorf("translate with %s: empty response", provider.Name())
	}

	metrics.Translations.WithLabelValues("ok").Inc()
	return result, nil
}

func (s *translationService) AutoEnabled(ctx context.Context) bool {
	cfg, auto, err := s.settings.GetTranslationConfig(ctx)
	if err != nil {
		return false
	}
	return auto && cfg.APIKey != "" && cfg.Model != ""
}

func (s *translationService) Configured(ctx context.Context) bool {
	cfg, _, err := s.settings.GetTranslationConfig(ctx)
	if err != nil {
		return false
	}
	return cfg.APIKey != "" && cfg.Model != ""
}
