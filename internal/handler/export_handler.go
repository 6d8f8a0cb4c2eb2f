package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"citypulse/backend/internal/service"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler handles comment export downloads.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// RegisterRoutes registers export routes on the given group.
func (h *ExportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/export/comments", h.Export)
}

// Export streams all comments as a CSV or Excel attachment. The format
// query parameter selects the encoding and defaults to csv.
func (h *ExportHandler) Export(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}

	var buf bytes.Buffer
	var contentType string
	var err error

	switch format {
	case "csv":
		contentType = contentTypeCSV
		err = h.exportService.ExportCSV(c.Request().Context(), &buf)
	case "xlsx":
		contentType = contentTypeXLSX
		err = h.exportService.ExportExcel(c.Request().Context(), &buf)
	default:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unsupported export format"})
	}
	if err != nil {
		return writeServiceError(c, err)
	}

	filename := h.exportService.Filename(format)
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
