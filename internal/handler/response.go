package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"citypulse/backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeServiceError maps service-layer errors onto HTTP responses. Errors
// that carry user-facing detail keep their message; the rest collapse to a
// generic line so internals never leak.
func writeServiceError(c echo.Context, err error) error {
	var tooLong *service.CommentTooLongError
	switch {
	case errors.As(err, &tooLong):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: tooLong.Error()})
	case errors.Is(err, service.ErrAlertsNotConfigured),
		errors.Is(err, service.ErrTranslationNotConfigured):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	case errors.Is(err, service.ErrAlreadyRefreshing),
		errors.Is(err, service.ErrAnalysisRunning):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, errorResponse{Error: "conflict"})
	case errors.Is(err, service.ErrAlertFetch):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "alert feed fetch failed"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
