package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"citypulse/backend/internal/service"
)

const maxImportSize = 5 << 20

// ImportHandler handles CSV comment import requests.
type ImportHandler struct {
	importService service.ImportService
	taskService   service.TaskService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService service.ImportService, taskService service.TaskService) *ImportHandler {
	return &ImportHandler{importService: importService, taskService: taskService}
}

// RegisterRoutes registers import routes on the given group.
func (h *ImportHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/comments/import", h.Import)
	g.GET("/comments/import/status", h.GetStatus)
	g.DELETE("/comments/import", h.Cancel)
}

// Import accepts a CSV upload and starts a background import run. The file
// is parsed before the run starts, so format errors surface immediately.
func (h *ImportHandler) Import(c echo.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response().Writer, req.Body, maxImportSize)

	var reader io.Reader
	contentType := req.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/") {
		file, err := c.FormFile("file")
		if err != nil {
			if err == http.ErrMissingFile {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing file"})
			}
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		}
		if file.Size > maxImportSize {
			return c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
		}
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		}
		defer src.Close()
		reader = io.LimitReader(src, maxImportSize)
	} else {
		reader = io.LimitReader(req.Body, maxImportSize)
	}

	taskID, err := h.importService.Import(req.Context(), reader)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusAccepted, taskStartedResponse{TaskID: taskID})
}

// GetStatus returns the state of the current or most recent import run.
func (h *ImportHandler) GetStatus(c echo.Context) error {
	task := h.taskService.Get()
	if task == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "no import task"})
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Cancel stops a running import.
func (h *ImportHandler) Cancel(c echo.Context) error {
	cancelled := h.taskService.Cancel()
	return c.JSON(http.StatusOK, cancelResponse{Cancelled: cancelled})
}
