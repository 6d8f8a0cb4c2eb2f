//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"citypulse/backend/internal/hashutil"
	"citypulse/backend/internal/metrics"
	"citypulse/backend/internal/model"
	"citypulse/backend/internal/repository"
	"citypulse/backend/pkg/logger"
	"citypulse/backend/pkg/sanitizer"
)

const alertFetchTimeout = 20 * time.Second

const (
	defaultAlertLimit = 20
	// maxStoredAlerts caps the alert table; Refresh prunes beyond it.
	maxStoredAlerts = 50
	alertUserAgent  = "CityPulse/1.0"
)

var (
	// ErrAlertsNotConfigured is returned when no alert feed URL is saved.
	ErrAlertsNotConfigured = errors.New("alert feed not configured")
	// ErrAlreadyRefreshing is returned when a refresh is still in flight.
	ErrAlreadyRefreshing = errors.New("alert refresh already in progress")
)

// AlertRefreshResult summarizes one pass over the alert feed.
type AlertRefreshResult struct {
	Created     int
	Skipped     int
	NotModified bool
}

type AlertService interface {
	List(ctx context.Context, limit int) ([]model.ServiceAlert, error)
	Refresh(ctx context.Context) (*AlertRefreshResult, error)
}

type alertService struct {
	alerts       repository.ServiceAlertRepository
	settings     repository.SettingsRepository
	httpClient   *http.Client
	mu           sync.Mutex
	isRefreshing bool
}

func NewAlertService(alerts repository.ServiceAlertRepository, settings repository.SettingsRepository, httpClient *http.Client) AlertService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: alertFetchTimeout}
	}
	return &alertService{
		alerts:     alerts,
		settings:   settings,
		httpClient: httpClient,
	}
}

func (s *alertService) List(ctx context.Context, limit int) ([]model.ServiceAlert, error) {
	if limit <= 0 {
		limit = defaultAlertLimit
	}
	if limit > maxStoredAlerts {
		limit = maxStoredAlerts
	}
	return s.alerts.List(ctx, limit)
}

func (s *alertService) Refresh(ctx context.Context) (*AlertRefreshResult, error) {
	s.mu.Lock()
	if s.isRefreshing {
		s.mu.Unlock()
		return nil, ErrAlreadyRefreshing
	}
	s.isRefreshing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isRefreshing = false
		s.mu.Unlock()
	}()

	feedURL, err := s.feedURL(ctx)
	if err != nil {
		return nil, err
	}
	if feedURL == "" {
		return nil, ErrAlertsNotConfigured
	}

	result, err := s.fetchAndStore(ctx, feedURL)
	if err != nil {
		// The stored error doubles as the dashboard status line.
		_ = s.settings.Set(ctx, keyAlertsLastError, err.Error())
		metrics.AlertRefreshes.WithLabelValues("error").Inc()
		logger.Error("alert refresh failed", "module", "service", "action", "refresh", "resource", "alert", "result", "failed", "url", feedURL, "error", err)
		return nil, err
	}

	_ = s.settings.Set(ctx, keyAlertsLastError, "")
	_ = s.settings.Set(ctx, keyAlertsLastRefresh, time.Now().UTC().Format(time.RFC3339))

	if result.NotModified {
		metrics.AlertRefreshes.WithLabelValues("not_modified").Inc()
		logger.Debug("alert feed not modified", "module", "service", "action", "refresh", "resource", "alert", "result", "skipped", "url", feedURL)
		return result, nil
	}

	metrics.AlertRefreshes.WithLabelValues("ok").Inc()
	logger.Info("alerts refreshed", "module", "service", "action", "refresh", "resource", "alert", "result", "ok", "url", feedURL, "created", result.Created, "skipped", result.Skipped)
	return result, nil
}

func (s *alertService) feedURL(ctx context.Context) (string, error) {
	setting, err := s.settings.Get(ctx, keyAlertsFeedURL)
	if err != nil {
		return "", fmt.Errorf("load alert feed url: %w", err)
	}
	if setting == nil {
		return "", nil
	}
	return strings.TrimSpace(setting.Value), nil
}

func (s *alertService) fetchAndStore(ctx context.Context, feedURL string) (*AlertRefreshResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", alertUserAgent)

	// Conditional GET
	if etag := s.storedValidator(ctx, keyAlertsHTTPETag); etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	if modified := s.storedValidator(ctx, keyAlertsHTTPModified); modified != "" {
		req.Header.Set("If-Modified-Since", modified)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return &AlertRefreshResult{NotModified: true}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrAlertFetch, resp.StatusCode)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlertFetch, err)
	}

	result := &AlertRefreshResult{}
	for _, item := range parsed.Items {
		alert := alertFromItem(item)
		if alert == nil {
			continue
		}
		created, err := s.alerts.Create(ctx, *alert)
		if err != nil {
			logger.Warn("save alert failed", "module", "service", "action", "save", "resource", "alert", "result", "failed", "error", err)
			continue
		}
		if created {
			result.Created++
		} else {
			result.Skipped++
		}
	}

	if _, err := s.alerts.Prune(ctx, maxStoredAlerts); err != nil {
		logger.Warn("prune alerts failed", "module", "service", "action", "delete", "resource", "alert", "result", "failed", "error", err)
	}

	s.storeValidators(ctx, resp)
	return result, nil
}

func (s *alertService) storedValidator(ctx context.Context, key string) string {
	setting, err := s.settings.Get(ctx, key)
	if err != nil || setting == nil {
		return ""
	}
	return setting.Value
}

// storeValidators keeps the response validators for the next conditional GET.
// Only non-empty values overwrite what is stored.
func (s *alertService) storeValidators(ctx context.Context, resp *http.Response) {
	if etag := strings.TrimSpace(resp.Header.Get("ETag")); etag != "" {
		_ = s.settings.Set(ctx, keyAlertsHTTPETag, etag)
	}
	if modified := strings.TrimSpace(resp.Header.Get("Last-Modified")); modified != "" {
		_ = s.settings.Set(ctx, keyAlertsHTTPModified, modified)
	}
}

// alertFromItem maps a parsed feed item onto a ServiceAlert. Items carrying
// neither a title nor a summary are dropped.
func alertFromItem(item *gofeed.Item) *model.ServiceAlert {
	title := strings.TrimSpace(item.Title)
	summary := sanitizer.StripTags(item.Description)
	if title == "" && summary == "" {
		return nil
	}

	alert := &model.ServiceAlert{
		Title:   title,
		Summary: summary,
		URL:     optionalString(item.Link),
	}
	if item.PublishedParsed != nil {
		t := item.PublishedParsed.UTC()
		alert.PublishedAt = &t
	} else if item.UpdatedParsed != nil {
		t := item.UpdatedParsed.UTC()
		alert.PublishedAt = &t
	}

	url := ""
	if alert.URL != nil {
		url = *alert.URL
	}
	alert.Hash = hashutil.AlertHash(url, title, summary)
	return alert
}
