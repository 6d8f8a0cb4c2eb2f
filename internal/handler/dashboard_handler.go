package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"citypulse/backend/internal/service"
)

// DashboardHandler serves the aggregate views behind the admin dashboard.
type DashboardHandler struct {
	commentService service.CommentService
	chartService   service.ChartService
	alertService   service.AlertService
	taskService    service.TaskService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(commentService service.CommentService, chartService service.ChartService, alertService service.AlertService, taskService service.TaskService) *DashboardHandler {
	return &DashboardHandler{
		commentService: commentService,
		chartService:   chartService,
		alertService:   alertService,
		taskService:    taskService,
	}
}

// RegisterPublicRoutes registers the routes served without authentication.
// The comment form renders its live counters from the stats route.
func (h *DashboardHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/stats", h.GetStats)
}

// RegisterRoutes registers the admin dashboard routes on the given group.
func (h *DashboardHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.GetOverview)
	g.GET("/dashboard/stats", h.GetStats)
	g.GET("/dashboard/trend", h.GetTrend)
	g.GET("/dashboard/chart/bar", h.GetBarChart)
	g.GET("/dashboard/chart/pie", h.GetPieChart)
}

type statsResponse struct {
	Total           int     `json:"total"`
	Positive        int     `json:"positive"`
	Negative        int     `json:"negative"`
	Neutral         int     `json:"neutral"`
	AverageCompound float64 `json:"averageCompound"`
}

type trendPointResponse struct {
	Date     string `json:"date"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
}

type dashboardResponse struct {
	Stats               statsResponse     `json:"stats"`
	RecentComments      []commentResponse `json:"recentComments"`
	PendingTranslations int               `json:"pendingTranslations"`
	Analysis            *taskResponse     `json:"analysis,omitempty"`
	Alerts              []alertResponse   `json:"alerts"`
}

// GetOverview returns everything the admin landing page renders in one
// request: totals, the ten newest comments, the pending translation count,
// the state of the last reanalysis run, and recent service alerts.
func (h *DashboardHandler) GetOverview(c echo.Context) error {
	ctx := c.Request().Context()

	counts, err := h.commentService.Stats(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}

	recent, err := h.commentService.List(ctx, service.CommentListOptions{Page: 1, PerPage: 10})
	if err != nil {
		return writeServiceError(c, err)
	}

	pending, err := h.commentService.List(ctx, service.CommentListOptions{Pending: true, Page: 1, PerPage: 1})
	if err != nil {
		return writeServiceError(c, err)
	}

	alerts, err := h.alertService.List(ctx, 5)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := dashboardResponse{
		Stats: statsResponse{
			Total:           counts.Total,
			Positive:        counts.Positive,
			Negative:        counts.Negative,
			Neutral:         counts.Neutral,
			AverageCompound: counts.AverageCompound,
		},
		RecentComments:      make([]commentResponse, 0, len(recent.Comments)),
		PendingTranslations: pending.Total,
		Alerts:              make([]alertResponse, 0, len(alerts)),
	}
	for i := range recent.Comments {
		resp.RecentComments = append(resp.RecentComments, toCommentResponse(&recent.Comments[i]))
	}
	for i := range alerts {
		resp.Alerts = append(resp.Alerts, toAlertResponse(&alerts[i]))
	}
	if task := h.taskService.Get(); task != nil {
		taskResp := toTaskResponse(task)
		resp.Analysis = &taskResp
	}

	return c.JSON(http.StatusOK, resp)
}

// GetStats returns the label distribution across all comments.
func (h *DashboardHandler) GetStats(c echo.Context) error {
	counts, err := h.commentService.Stats(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, statsResponse{
		Total:           counts.Total,
		Positive:        counts.Positive,
		Negative:        counts.Negative,
		Neutral:         counts.Neutral,
		AverageCompound: counts.AverageCompound,
	})
}

// GetTrend returns per-day label counts for the requested window.
func (h *DashboardHandler) GetTrend(c echo.Context) error {
	days := intQueryParam(c, "days", 0)

	points, err := h.commentService.Trend(c.Request().Context(), days)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := make([]trendPointResponse, 0, len(points))
	for _, p := range points {
		resp = append(resp, trendPointResponse{
			Date:     p.Date,
			Positive: p.Positive,
			Negative: p.Negative,
			Neutral:  p.Neutral,
		})
	}

	return c.JSON(http.StatusOK, resp)
}

// GetBarChart renders the sentiment distribution as a PNG bar chart.
func (h *DashboardHandler) GetBarChart(c echo.Context) error {
	png, err := h.chartService.DistributionBar(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// GetPieChart renders the sentiment distribution as a PNG pie chart.
func (h *DashboardHandler) GetPieChart(c echo.Context) error {
	png, err := h.chartService.DistributionPie(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
