//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"citypulse/backend/internal/repository"
	"citypulse/backend/internal/translate"
	"citypulse/backend/pkg/logger"
)

// Settings keys for the translation provider.
const (
	keyTranslationProvider      = "translation.provider"
	keyTranslationAPIKey        = "translation.api_key"
	keyTranslationBaseURL       = "translation.base_url"
	keyTranslationModel         = "translation.model"
	keyTranslationAutoTranslate = "translation.auto_translate"
	keyTranslationRateLimit     = "translation.rate_limit"
)

// Settings keys for the public site.
const (
	keyGeneralAgencyName       = "general.agency_name"
	keyGeneralCommentMaxLength = "general.comment_max_length"
)

// Settings keys for the service alert feed. The http_ keys cache the
// validators of the last successful fetch for conditional requests.
const (
	keyAlertsFeedURL      = "alerts.feed_url"
	keyAlertsHTTPETag     = "alerts.http_etag"
	keyAlertsHTTPModified = "alerts.http_last_modified"
	keyAlertsLastError    = "alerts.last_error"
	keyAlertsLastRefresh  = "alerts.last_refresh"
)

// Defaults applied when a setting is absent.
const (
	DefaultAgencyName       = "CityPulse"
	DefaultCommentMaxLength = 1000
)

// TranslationSettings configures the machine translation provider. APIKey
// comes back masked from GetTranslationSettings; passing a masked key to
// SetTranslationSettings keeps the stored one.
type TranslationSettings struct {
	Provider      string
	APIKey        string
	BaseURL       string
	Model         string
	AutoTranslate bool
	RateLimit     int
}

// GeneralSettings holds site-wide options shown on the public pages.
type GeneralSettings struct {
	AgencyName       string
	CommentMaxLength int
}

// AlertSettings holds the service alert feed configuration. LastError and
// LastRefresh are read-only status fields maintained by the alert service.
type AlertSettings struct {
	FeedURL     string
	LastError   string
	LastRefresh string
}

type SettingsService interface {
	GetTranslationSettings(ctx context.Context) (*TranslationSettings, error)
	SetTranslationSettings(ctx context.Context, settings *TranslationSettings) error
	TestTranslation(ctx context.Context, provider, apiKey, baseURL, model string) (string, error)
	// GetTranslationConfig returns the stored provider configuration with the
	// raw API key, plus whether automatic translation is enabled. It is for
	// the translation pipeline, never for API responses.
	GetTranslationConfig(ctx context.Context) (translate.Config, bool, error)
	GetGeneralSettings(ctx context.Context) (*GeneralSettings, error)
	SetGeneralSettings(ctx context.Context, settings *GeneralSettings) error
	GetCommentMaxLength(ctx context.Context) int
	GetAlertSettings(ctx context.Context) (*AlertSettings, error)
	SetAlertSettings(ctx context.Context, settings *AlertSettings) error
}

type settingsService struct {
	repo    repository.SettingsRepository
	limiter *translate.RateLimiter
}

func NewSettingsService(repo repository.SettingsRepository, limiter *translate.RateLimiter) SettingsService {
	return &settingsService{repo: repo, limiter: limiter}
}

// translationConfig loads the stored provider configuration without masking.
func (s *settingsService) translationConfig(ctx context.Context) (translate.Config, bool, int, error) {
	cfg := translate.Config{Provider: translate.ProviderOpenAI}
	auto := true
	limit := translate.DefaultRateLimit

	stored, err := s.repo.GetByPrefix(ctx, "translation.")
	if err != nil {
		return cfg, false, limit, fmt.Errorf("load translation settings: %w", err)
	}
	for _, setting := range stored {
		switch setting.Key {
		case keyTranslationProvider:
			if setting.Value != "" {
				cfg.Provider = setting.Value
			}
		case keyTranslationAPIKey:
			cfg.APIKey = setting.Value
		case keyTranslationBaseURL:
			cfg.BaseURL = setting.Value
		case keyTranslationModel:
			cfg.Model = setting.Value
		case keyTranslationAutoTranslate:
			auto = setting.Value != "false"
		case keyTranslationRateLimit:
			if n, convErr := strconv.Atoi(setting.Value); convErr == nil && n > 0 {
				limit = n
			}
		}
	}
	return cfg, auto, limit, nil
}

func (s *settingsService) GetTranslationSettings(ctx context.Context) (*TranslationSettings, error) {
	cfg, auto, limit, err := s.translationConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &TranslationSettings{
		Provider:      cfg.Provider,
		APIKey:        maskAPIKey(cfg.APIKey),
		BaseURL:       cfg.BaseURL,
		Model:         cfg.Model,
		AutoTranslate: auto,
		RateLimit:     limit,
	}, nil
}

func (s *settingsService) SetTranslationSettings(ctx context.Context, settings *TranslationSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", ErrInvalid)
	}

	provider := strings.TrimSpace(settings.Provider)
	if provider == "" {
		provider = translate.ProviderOpenAI
	}

	apiKey := strings.TrimSpace(settings.APIKey)
	if isMaskedKey(apiKey) {
		stored, err := s.repo.Get(ctx, keyTranslationAPIKey)
		if err != nil {
			return fmt.Errorf("load stored api key: %w", err)
		}
		apiKey = ""
		if stored != nil {
			apiKey = stored.Value
		}
	}

	rateLimit := settings.RateLimit
	if rateLimit <= 0 {
		rateLimit = translate.DefaultRateLimit
	}

	values := map[string]string{
		keyTranslationProvider:      provider,
		keyTranslationAPIKey:        apiKey,
		keyTranslationBaseURL:       strings.TrimSpace(settings.BaseURL),
		keyTranslationModel:         strings.TrimSpace(settings.Model),
		keyTranslationAutoTranslate: strconv.FormatBool(settings.AutoTranslate),
		keyTranslationRateLimit:     strconv.Itoa(rateLimit),
	}
	for key, value := range values {
		if err := s.repo.Set(ctx, key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	if s.limiter != nil {
		s.limiter.SetLimit(rateLimit)
	}

	logger.Info("translation settings updated", "module", "service", "action", "save", "resource", "settings", "result", "ok", "provider", provider)
	return nil
}

func (s *settingsService) TestTranslation(ctx context.Context, provider, apiKey, baseURL, model string) (string, error) {
	apiKey = strings.TrimSpace(apiKey)
	if isMaskedKey(apiKey) {
		stored, err := s.repo.Get(ctx, keyTranslationAPIKey)
		if err != nil {
			return "", fmt.Errorf("load stored api key: %w", err)
		}
		apiKey = ""
		if stored != nil {
			apiKey = stored.Value
		}
	}

	p, err := translate.NewProvider(translate.Config{
		Provider: strings.TrimSpace(provider),
		APIKey:   apiKey,
		BaseURL:  strings.TrimSpace(baseURL),
		Model:    strings.TrimSpace(model),
	})
	if err != nil {
		return "", err
	}
	return p.Test(ctx)
}

func (s *settingsService) GetTranslationConfig(ctx context.Context) (translate.Config, bool, error) {
	cfg, auto, _, err := s.translationConfig(ctx)
	return cfg, auto, err
}

func (s *settingsService) GetGeneralSettings(ctx context.Context) (*GeneralSettings, error) {
	settings := &GeneralSettings{
		AgencyName:       DefaultAgencyName,
		CommentMaxLength: DefaultCommentMaxLength,
	}

	stored, err := s.repo.GetByPrefix(ctx, "general.")
	if err != nil {
		return nil, fmt.Errorf("load general settings: %w", err)
	}
	for _, setting := range stored {
		switch setting.Key {
		case keyGeneralAgencyName:
			if setting.Value != "" {
				settings.AgencyName = setting.Value
			}
		case keyGeneralCommentMaxLength:
			if n, convErr := strconv.Atoi(setting.Value); convErr == nil && n > 0 {
				settings.CommentMaxLength = n
			}
		}
	}
	return settings, nil
}

func (s *settingsService) SetGeneralSettings(ctx context.Context, settings *GeneralSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", ErrInvalid)
	}

	name := strings.TrimSpace(settings.AgencyName)
	if name == "" {
		name = DefaultAgencyName
	}
	maxLength := settings.CommentMaxLength
	if maxLength <= 0 {
		maxLength = DefaultCommentMaxLength
	}

	if err := s.repo.Set(ctx, keyGeneralAgencyName, name); err != nil {
		return fmt.Errorf("save %s: %w", keyGeneralAgencyName, err)
	}
	if err := s.repo.Set(ctx, keyGeneralCommentMaxLength, strconv.Itoa(maxLength)); err != nil {
		return fmt.Errorf("save %s: %w", keyGeneralCommentMaxLength, err)
	}
	return nil
}

// GetCommentMaxLength returns the submission length limit, falling back to
// the default when the setting is absent or unreadable.
func (s *settingsService) GetCommentMaxLength(ctx context.Context) int {
	setting, err := s.repo.Get(ctx, keyGeneralCommentMaxLength)
	if err != nil || setting == nil {
		return DefaultCommentMaxLength
	}
	n, err := strconv.Atoi(setting.Value)
	if err != nil || n <= 0 {
		return DefaultCommentMaxLength
	}
	return n
}

func (s *settingsService) GetAlertSettings(ctx context.Context) (*AlertSettings, error) {
	settings := &AlertSettings{}

	stored, err := s.repo.GetByPrefix(ctx, "alerts.")
	if err != nil {
		return nil, fmt.Errorf("load alert settings: %w", err)
	}
	for _, setting := range stored {
		switch setting.Key {
		case keyAlertsFeedURL:
			settings.FeedURL = setting.Value
		case keyAlertsLastError:
			settings.LastError = setting.Value
		case keyAlertsLastRefresh:
			settings.LastRefresh = setting.Value
		}
	}
	return settings, nil
}

func (s *settingsService) SetAlertSettings(ctx context.Context, settings *AlertSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", ErrInvalid)
	}

	feedURL := strings.TrimSpace(settings.FeedURL)
	if feedURL != "" && !isValidURL(feedURL) {
		return fmt.Errorf("%w: invalid feed url", ErrInvalid)
	}

	current, err := s.repo.Get(ctx, keyAlertsFeedURL)
	if err != nil {
		return fmt.Errorf("load %s: %w", keyAlertsFeedURL, err)
	}

	if err := s.repo.Set(ctx, keyAlertsFeedURL, feedURL); err != nil {
		return fmt.Errorf("save %s: %w", keyAlertsFeedURL, err)
	}

	// Validators from the previous feed would suppress the first fetch of
	// the new one.
	if current == nil || current.Value != feedURL {
		if _, err := s.repo.DeleteByPrefix(ctx, "alerts.http_"); err != nil {
			return fmt.Errorf("clear alert http validators: %w", err)
		}
	}
	return nil
}

// maskAPIKey hides the middle of a stored key for display.
func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// isMaskedKey reports whether the value is a masked key echoed back by the UI.
func isMaskedKey(key string) bool {
	return key != "" && strings.Contains(key, "*")
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
