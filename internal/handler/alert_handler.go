package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"citypulse/backend/internal/model"
	"citypulse/backend/internal/service"
)

// AlertHandler handles service alert requests.
type AlertHandler struct {
	alertService service.AlertService
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService service.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// RegisterPublicRoutes registers the routes served without authentication.
func (h *AlertHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/alerts", h.List)
}

// RegisterRoutes registers the admin alert routes on the given group.
func (h *AlertHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/alerts/refresh", h.Refresh)
}

type alertResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	URL         *string `json:"url,omitempty"`
	PublishedAt *string `json:"publishedAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

type alertRefreshResponse struct {
	Created     int  `json:"created"`
	Skipped     int  `json:"skipped"`
	NotModified bool `json:"notModified"`
}

func toAlertResponse(alert *model.ServiceAlert) alertResponse {
	resp := alertResponse{
		ID:        alert.ID,
		Title:     alert.Title,
		Summary:   alert.Summary,
		URL:       alert.URL,
		CreatedAt: alert.CreatedAt.UTC().Format(time.RFC3339),
	}
	if alert.PublishedAt != nil {
		published := alert.PublishedAt.UTC().Format(time.RFC3339)
		resp.PublishedAt = &published
	}
	return resp
}

// List returns the most recent service alerts.
func (h *AlertHandler) List(c echo.Context) error {
	limit := intQueryParam(c, "limit", 0)

	alerts, err := h.alertService.List(c.Request().Context(), limit)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := make([]alertResponse, 0, len(alerts))
	for i := range alerts {
		resp = append(resp, toAlertResponse(&alerts[i]))
	}

	return c.JSON(http.StatusOK, resp)
}

// Refresh fetches the configured alert feed and stores new items.
func (h *AlertHandler) Refresh(c echo.Context) error {
	result, err := h.alertService.Refresh(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, alertRefreshResponse{
		Created:     result.Created,
		Skipped:     result.Skipped,
		NotModified: result.NotModified,
	})
}
