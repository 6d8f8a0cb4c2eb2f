package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"citypulse/backend/internal/service"
)

// SettingsHandler handles application settings requests.
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// RegisterPublicRoutes registers the routes served without authentication.
func (h *SettingsHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/site", h.GetSiteInfo)
}

// RegisterRoutes registers the admin settings routes on the given group.
func (h *SettingsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/settings/translation", h.GetTranslationSettings)
	g.PUT("/settings/translation", h.UpdateTranslationSettings)
	g.POST("/settings/translation/test", h.TestTranslationSettings)
	g.GET("/settings/general", h.GetGeneralSettings)
	g.PUT("/settings/general", h.UpdateGeneralSettings)
	g.GET("/settings/alerts", h.GetAlertSettings)
	g.PUT("/settings/alerts", h.UpdateAlertSettings)
}

type translationSettingsRequest struct {
	Provider      string `json:"provider" validate:"omitempty,oneof=openai anthropic compatible"`
	APIKey        string `json:"apiKey"`
	BaseURL       string `json:"baseUrl" validate:"omitempty,url"`
	Model         string `json:"model"`
	AutoTranslate bool   `json:"autoTranslate"`
	RateLimit     int    `json:"rateLimit"`
}

type translationSettingsResponse struct {
	Provider      string `json:"provider"`
	APIKey        string `json:"apiKey"`
	BaseURL       string `json:"baseUrl,omitempty"`
	Model         string `json:"model"`
	AutoTranslate bool   `json:"autoTranslate"`
	RateLimit     int    `json:"rateLimit"`
}

type testTranslationRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
	BaseURL  string `json:"baseUrl"`
	Model    string `json:"model"`
}

type testTranslationResponse struct {
	Success bool   `json:"success"`
	Result  string `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

type generalSettingsRequest struct {
	AgencyName       string `json:"agencyName"`
	CommentMaxLength int    `json:"commentMaxLength"`
}

type generalSettingsResponse struct {
	AgencyName       string `json:"agencyName"`
	CommentMaxLength int    `json:"commentMaxLength"`
}

type alertSettingsRequest struct {
	FeedURL string `json:"feedUrl"`
}

type alertSettingsResponse struct {
	FeedURL     string `json:"feedUrl"`
	LastError   string `json:"lastError,omitempty"`
	LastRefresh string `json:"lastRefresh,omitempty"`
}

type siteInfoResponse struct {
	AgencyName       string `json:"agencyName"`
	CommentMaxLength int    `json:"commentMaxLength"`
}

func toTranslationSettingsResponse(settings *service.TranslationSettings) translationSettingsResponse {
	return translationSettingsResponse{
		Provider:      settings.Provider,
		APIKey:        settings.APIKey,
		BaseURL:       settings.BaseURL,
		Model:         settings.Model,
		AutoTranslate: settings.AutoTranslate,
		RateLimit:     settings.RateLimit,
	}
}

// GetSiteInfo returns the public form configuration.
func (h *SettingsHandler) GetSiteInfo(c echo.Context) error {
	settings, err := h.settingsService.GetGeneralSettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, siteInfoResponse{
		AgencyName:       settings.AgencyName,
		CommentMaxLength: settings.CommentMaxLength,
	})
}

// GetTranslationSettings returns the translation provider settings with the
// API key masked.
func (h *SettingsHandler) GetTranslationSettings(c echo.Context) error {
	settings, err := h.settingsService.GetTranslationSettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTranslationSettingsResponse(settings))
}

// UpdateTranslationSettings saves the translation provider settings and
// returns the stored state.
func (h *SettingsHandler) UpdateTranslationSettings(c echo.Context) error {
	var req translationSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
	}

	err := h.settingsService.SetTranslationSettings(c.Request().Context(), &service.TranslationSettings{
		Provider:      req.Provider,
		APIKey:        req.APIKey,
		BaseURL:       req.BaseURL,
		Model:         req.Model,
		AutoTranslate: req.AutoTranslate,
		RateLimit:     req.RateLimit,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	settings, err := h.settingsService.GetTranslationSettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTranslationSettingsResponse(settings))
}

// TestTranslationSettings runs a round trip through the given provider
// without persisting anything.
func (h *SettingsHandler) TestTranslationSettings(c echo.Context) error {
	var req testTranslationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	result, err := h.settingsService.TestTranslation(c.Request().Context(), req.Provider, req.APIKey, req.BaseURL, req.Model)
	if err != nil {
		return c.JSON(http.StatusOK, testTranslationResponse{Success: false, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, testTranslationResponse{Success: true, Result: result})
}

// GetGeneralSettings returns the agency settings.
func (h *SettingsHandler) GetGeneralSettings(c echo.Context) error {
	settings, err := h.settingsService.GetGeneralSettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, generalSettingsResponse{
		AgencyName:       settings.AgencyName,
		CommentMaxLength: settings.CommentMaxLength,
	})
}

// UpdateGeneralSettings saves the agency settings.
func (h *SettingsHandler) UpdateGeneralSettings(c echo.Context) error {
	var req generalSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	err := h.settingsService.SetGeneralSettings(c.Request().Context(), &service.GeneralSettings{
		AgencyName:       req.AgencyName,
		CommentMaxLength: req.CommentMaxLength,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	settings, err := h.settingsService.GetGeneralSettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, generalSettingsResponse{
		AgencyName:       settings.AgencyName,
		CommentMaxLength: settings.CommentMaxLength,
	})
}

// GetAlertSettings returns the alert feed settings and last refresh state.
func (h *SettingsHandler) GetAlertSettings(c echo.Context) error {
	settings, err := h.settingsService.GetAlertSettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, alertSettingsResponse{
		FeedURL:     settings.FeedURL,
		LastError:   settings.LastError,
		LastRefresh: settings.LastRefresh,
	})
}

// UpdateAlertSettings saves the alert feed URL.
func (h *SettingsHandler) UpdateAlertSettings(c echo.Context) error {
	var req alertSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	err := h.settingsService.SetAlertSettings(c.Request().Context(), &service.AlertSettings{
		FeedURL: req.FeedURL,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	settings, err := h.settingsService.GetAlertSettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, alertSettingsResponse{
		FeedURL:     settings.FeedURL,
		LastError:   settings.LastError,
		LastRefresh: settings.LastRefresh,
	})
}
