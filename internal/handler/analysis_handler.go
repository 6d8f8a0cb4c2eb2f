package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"citypulse/backend/internal/service"
)

// AnalysisHandler handles sentiment reanalysis requests.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	taskService     service.TaskService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService, taskService service.TaskService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, taskService: taskService}
}

// RegisterRoutes registers analysis routes on the given group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/analysis/reanalyze", h.Start)
	g.GET("/analysis/reanalyze/status", h.GetStatus)
	g.DELETE("/analysis/reanalyze", h.Cancel)
}

type taskStartedResponse struct {
	TaskID string `json:"taskId"`
}

type taskResultResponse struct {
	Processed  int `json:"processed"`
	Translated int `json:"translated"`
	Relabeled  int `json:"relabeled"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

type taskResponse struct {
	ID      string              `json:"id"`
	Status  string              `json:"status"`
	Total   int                 `json:"total"`
	Current int                 `json:"current"`
	Item    string              `json:"item,omitempty"`
	Error   string              `json:"error,omitempty"`
	Result  *taskResultResponse `json:"result,omitempty"`
}

type cancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

func toTaskResponse(task *service.Task) taskResponse {
	resp := taskResponse{
		ID:      task.ID,
		Status:  task.Status,
		Total:   task.Total,
		Current: task.Current,
		Item:    task.Item,
		Error:   task.Error,
	}
	if task.Result != nil {
		resp.Result = &taskResultResponse{
			Processed:  task.Result.Processed,
			Translated: task.Result.Translated,
			Relabeled:  task.Result.Relabeled,
			Skipped:    task.Result.Skipped,
			Failed:     task.Result.Failed,
		}
	}
	return resp
}

// Start kicks off a full reanalysis of all stored comments.
func (h *AnalysisHandler) Start(c echo.Context) error {
	taskID, err := h.analysisService.ReanalyzeAll(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusAccepted, taskStartedResponse{TaskID: taskID})
}

// GetStatus returns the state of the current or most recent reanalysis run.
func (h *AnalysisHandler) GetStatus(c echo.Context) error {
	task := h.taskService.Get()
	if task == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "no reanalysis task"})
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Cancel stops a running reanalysis.
func (h *AnalysisHandler) Cancel(c echo.Context) error {
	cancelled := h.taskService.Cancel()
	return c.JSON(http.StatusOK, cancelResponse{Cancelled: cancelled})
}
