package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"citypulse/backend/internal/model"
	"citypulse/backend/internal/service"
)

// CommentHandler handles comment submission and administration requests.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterPublicRoutes registers the routes served without authentication.
// Route middleware, such as the submit rate limiter, applies to the form
// endpoint only.
func (h *CommentHandler) RegisterPublicRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/comments", h.Submit, m...)
}

// RegisterRoutes registers the admin comment routes on the given group.
func (h *CommentHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/comments", h.List)
	g.GET("/comments/:id", h.Get)
	g.DELETE("/comments/:id", h.Delete)
}

type submitCommentRequest struct {
	Name  string `json:"name" validate:"omitempty,max=120"`
	Email string `json:"email" validate:"omitempty,email"`
	Text  string `json:"text"`
}

type commentResponse struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Email              *string `json:"email,omitempty"`
	Text               string  `json:"text"`
	TranslatedText     *string `json:"translatedText,omitempty"`
	Language           string  `json:"language"`
	ScoreNegative      float64 `json:"scoreNegative"`
	ScoreNeutral       float64 `json:"scoreNeutral"`
	ScorePositive      float64 `json:"scorePositive"`
	ScoreCompound      float64 `json:"scoreCompound"`
	Label              string  `json:"label"`
	TranslationPending bool    `json:"translationPending,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

type commentListResponse struct {
	Comments []commentResponse `json:"comments"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"perPage"`
}

func toCommentResponse(comment *model.Comment) commentResponse {
	return commentResponse{
		ID:                 comment.ID,
		Name:               comment.SubmitterName,
		Email:              comment.SubmitterEmail,
		Text:               comment.Text,
		TranslatedText:     comment.TranslatedText,
		Language:           comment.Language,
		ScoreNegative:      comment.ScoreNegative,
		ScoreNeutral:       comment.ScoreNeutral,
		ScorePositive:      comment.ScorePositive,
		ScoreCompound:      comment.ScoreCompound,
		Label:              comment.Label,
		TranslationPending: comment.TranslationPending,
		CreatedAt:          comment.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Submit accepts a new rider comment from the public form.
func (h *CommentHandler) Submit(c echo.Context) error {
	var req submitCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
	}

	comment, err := h.commentService.Submit(c.Request().Context(), service.SubmitCommentInput{
		Name:  req.Name,
		Email: req.Email,
		Text:  req.Text,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// List returns a page of comments filtered by label, search text, and
// pending translation state.
func (h *CommentHandler) List(c echo.Context) error {
	opts := service.CommentListOptions{
		Label:   c.QueryParam("label"),
		Search:  c.QueryParam("search"),
		Pending: c.QueryParam("pending") == "true",
		Page:    intQueryParam(c, "page", 0),
		PerPage: intQueryParam(c, "perPage", 0),
	}

	page, err := h.commentService.List(c.Request().Context(), opts)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := commentListResponse{
		Comments: make([]commentResponse, 0, len(page.Comments)),
		Total:    page.Total,
		Page:     page.Page,
		PerPage:  page.PerPage,
	}
	for i := range page.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(&page.Comments[i]))
	}

	return c.JSON(http.StatusOK, resp)
}

// Get returns a single comment by ID.
func (h *CommentHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid comment ID"})
	}

	comment, err := h.commentService.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toCommentResponse(comment))
}

// Delete removes a comment.
func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid comment ID"})
	}

	if err := h.commentService.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
