//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"citypulse/backend/internal/langdetect"
	"citypulse/backend/internal/metrics"
	"citypulse/backend/internal/model"
	"citypulse/backend/internal/repository"
	"citypulse/backend/internal/sentiment"
	"citypulse/backend/pkg/logger"
	"citypulse/backend/pkg/sanitizer"
)

// AnonymousName is stored when a submission carries no name.
const AnonymousName = "Anonymous"

const (
	DefaultPerPage = 20
	maxPerPage     = 100
)

const (
	DefaultTrendDays = 30
	maxTrendDays     = 365
)

// SubmitCommentInput is a public comment submission. Name and Email are
// optional.
type SubmitCommentInput struct {
	Name  string
	Email string
	Text  string
}

// CommentListOptions filters and paginates the admin comment list. Label and
// Search are ignored when empty; Pending restricts to comments awaiting
// translation.
type CommentListOptions struct {
	Label   string
	Search  string
	Pending bool
	Page    int
	PerPage int
}

// CommentPage is one page of comments plus the total count for the filter.
type CommentPage struct {
	Comments []model.Comment
	Total    int
	Page     int
	PerPage  int
}

type CommentService interface {
	Submit(ctx context.Context, input SubmitCommentInput) (*model.Comment, error)
	Get(ctx context.Context, id int64) (*model.Comment, error)
	List(ctx context.Context, opts CommentListOptions) (*CommentPage, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*repository.LabelCounts, error)
	Trend(ctx context.Context, days int) ([]repository.TrendPoint, error)
}

type commentService struct {
	comments   repository.CommentRepository
	settings   SettingsService
	translator TranslationService
	scorer     sentiment.Scorer
}

func NewCommentService(comments repository.CommentRepository, settings SettingsService, translator TranslationService, scorer sentiment.Scorer) CommentService {
	return &commentService{
		comments:   comments,
		settings:   settings,
		translator: translator,
		scorer:     scorer,
	}
}

// Submit stores a comment with exactly one sentiment label. Non-English text
// is translated first when a provider is configured and auto-translation is
// on; otherwise the original text is scored and the comment is marked
// pending so the translation can be retried later.
func (s *commentService) Submit(ctx context.Context, input SubmitCommentInput) (*model.Comment, error) {
	text := sanitizer.PlainText(input.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrInvalid)
	}

	limit := DefaultCommentMaxLength
	if s.settings != nil {
		limit = s.settings.GetCommentMaxLength(ctx)
	}
	if utf8.RuneCountInString(text) > limit {
		return nil, &CommentTooLongError{Limit: limit}
	}

	name := sanitizer.PlainText(input.Name)
	if name == "" {
		name = AnonymousName
	}

	comment := model.Comment{
		SubmitterName:  name,
		SubmitterEmail: optionalString(sanitizer.PlainText(input.Email)),
		Text:           text,
	}

	lang, _ := langdetect.Detect(text)
	comment.Language = lang

	scoreText := text
	if langdetect.NeedsTranslation(lang) {
		if s.translator != nil && s.translator.AutoEnabled(ctx) {
			translated, err := s.translator.Translate(ctx, text)
			if err != nil {
				logger.Warn("inline translation failed", "module", "service", "action", "translate", "resource", "comment", "result", "failed", "language", lang, "error", err)
				comment.TranslationPending = true
			} else {
				comment.TranslatedText = &translated
				scoreText = translated
			}
		} else {
			comment.TranslationPending = true
		}
	}

	scores := s.scorer.Score(scoreText)
	comment.ScoreNegative = scores.Negative
	comment.ScoreNeutral = scores.Neutral
	comment.ScorePositive = scores.Positive
	comment.ScoreCompound = scores.Compound
	comment.Label = sentiment.Classify(scores.Compound)

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("save comment: %w", err)
	}

	metrics.CommentSubmissions.WithLabelValues(created.Label).Inc()
	logger.Info("comment submitted", "module", "service", "action", "create", "resource", "comment", "result", "ok", "id", created.ID, "label", created.Label, "language", created.Language, "pending", created.TranslationPending)
	return created, nil
}

func (s *commentService) Get(ctx context.Context, id int64) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	return comment, nil
}

func (s *commentService) List(ctx context.Context, opts CommentListOptions) (*CommentPage, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	filter := repository.CommentListFilter{
		PendingOnly: opts.Pending,
		Limit:       perPage,
		Offset:      (page - 1) * perPage,
	}
	if label := strings.TrimSpace(opts.Label); label != "" {
		if label != model.LabelPositive && label != model.LabelNegative && label != model.LabelNeutral {
			return nil, fmt.Errorf("%w: unknown label %q", ErrInvalid, label)
		}
		filter.Label = &label
	}
	if search := strings.TrimSpace(opts.Search); search != "" {
		filter.Search = &search
	}

	comments, err := s.comments.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	total, err := s.comments.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	return &CommentPage{Comments: comments, Total: total, Page: page, PerPage: perPage}, nil
}

func (s *commentService) Delete(ctx context.Context, id int64) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	logger.Info("comment deleted", "module", "service", "action", "delete", "resource", "comment", "result", "ok", "id", id)
	return nil
}

func (s *commentService) Stats(ctx context.Context) (*repository.LabelCounts, error) {
	counts, err := s.comments.CountByLabel(ctx)
	if err != nil {
		return nil, fmt.Errorf("count comments by label: %w", err)
	}
	return counts, nil
}

func (s *commentService) Trend(ctx context.Context, days int) ([]repository.TrendPoint, error) {
	if days < 1 {
		days = DefaultTrendDays
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}
	points, err := s.comments.TrendDaily(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("comment trend: %w", err)
	}
	return points, nil
}

// optionalString converts a trimmed string to a pointer, nil when empty.
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
