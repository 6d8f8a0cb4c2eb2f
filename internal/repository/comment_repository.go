//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"citypulse/backend/internal/model"
	"citypulse/backend/pkg/snowflake"
)

// CommentListFilter narrows comment listings. A nil field means the
// dimension is not filtered.
type CommentListFilter struct {
	Label       *string
	Search      *string
	PendingOnly bool
	Limit       int
	Offset      int
}

// AnalysisUpdate carries recomputed sentiment fields for a stored comment.
type AnalysisUpdate struct {
	TranslatedText     *string
	Language           string
	ScoreNegative      float64
	ScoreNeutral       float64
	ScorePositive      float64
	ScoreCompound      float64
	Label              string
	TranslationPending bool
}

// LabelCounts aggregates stored comments per sentiment label.
type LabelCounts struct {
	Total           int
	Positive        int
	Negative        int
	Neutral         int
	AverageCompound float64
}

// TrendPoint is one day of the label breakdown, Date in YYYY-MM-DD.
type TrendPoint struct {
	Date     string
	Positive int
	Negative int
	Neutral  int
}

// CommentRepository defines the interface for comment storage.
type CommentRepository interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	List(ctx context.Context, filter CommentListFilter) ([]model.Comment, error)
	Count(ctx context.Context, filter CommentListFilter) (int, error)
	ListPending(ctx context.Context, limit int) ([]model.Comment, error)
	UpdateAnalysis(ctx context.Context, id int64, update AnalysisUpdate) error
	Delete(ctx context.Context, id int64) error
	CountByLabel(ctx context.Context) (*LabelCounts, error)
	TrendDaily(ctx context.Context, days int) ([]TrendPoint, error)
}

type commentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `id, submitter_name, submitter_email, text, translated_text, language,
	score_negative, score_neutral, score_positive, score_compound, label, translation_pending,
	created_at, updated_at`

// Create inserts a new comment and returns it with ID and timestamps set.
func (r *commentRepository) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	if comment.ID == 0 {
		comment.ID = snowflake.NextID()
	}
	now := time.Now().UTC()
	nowStr := now.Format(time.RFC3339)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (`+commentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, comment.ID, comment.SubmitterName, nullableString(comment.SubmitterEmail), comment.Text,
		nullableString(comment.TranslatedText), comment.Language,
		comment.ScoreNegative, comment.ScoreNeutral, comment.ScorePositive, comment.ScoreCompound,
		comment.Label, boolToInt(comment.TranslationPending), nowStr, nowStr)
	if err != nil {
		return nil, err
	}

	comment.CreatedAt = now
	comment.UpdatedAt = now
	return &comment, nil
}

// GetByID retrieves a comment by ID. Missing rows return (nil, nil).
func (r *commentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = ?`, id)

	c, err := scanComment(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// List retrieves comments matching the filter, newest first.
func (r *commentRepository) List(ctx context.Context, filter CommentListFilter) ([]model.Comment, error) {
	where, args := commentFilterClause(filter)
	query := `SELECT ` + commentColumns + ` FROM comments` + where + ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectComments(rows)
}

// Count counts comments matching the filter, ignoring Limit and Offset.
func (r *commentRepository) Count(ctx context.Context, filter CommentListFilter) (int, error) {
	where, args := commentFilterClause(filter)

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments`+where, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListPending retrieves comments awaiting translation, oldest first so
// retries drain the backlog in submission order.
func (r *commentRepository) ListPending(ctx context.Context, limit int) ([]model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE translation_pending = 1 ORDER BY created_at ASC, id ASC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectComments(rows)
}

// UpdateAnalysis replaces the sentiment fields of a stored comment.
func (r *commentRepository) UpdateAnalysis(ctx context.Context, id int64, update AnalysisUpdate) error {
	now := time.Now().UTC().Format(time.RFC3339)
	result, err := r.db.ExecContext(ctx, `
		UPDATE comments
		SET translated_text = ?, language = ?, score_negative = ?, score_neutral = ?,
			score_positive = ?, score_compound = ?, label = ?, translation_pending = ?, updated_at = ?
		WHERE id = ?
	`, nullableString(update.TranslatedText), update.Language, update.ScoreNegative, update.ScoreNeutral,
		update.ScorePositive, update.ScoreCompound, update.Label, boolToInt(update.TranslationPending), now, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a comment by ID.
func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByLabel aggregates totals per label over all stored comments.
func (r *commentRepository) CountByLabel(ctx context.Context) (*LabelCounts, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN label = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN label = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN label = ? THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(score_compound), 0)
		FROM comments
	`, model.LabelPositive, model.LabelNegative, model.LabelNeutral)

	var counts LabelCounts
	if err := row.Scan(&counts.Total, &counts.Positive, &counts.Negative, &counts.Neutral, &counts.AverageCompound); err != nil {
		return nil, err
	}
	return &counts, nil
}

// TrendDaily returns the per-day label breakdown for the last N days,
// including today. Days without comments produce no point.
func (r *commentRepository) TrendDaily(ctx context.Context, days int) ([]TrendPoint, error) {
	if days < 1 {
		days = 1
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -(days - 1)).Format("2006-01-02")

	rows, err := r.db.QueryContext(ctx, `
		SELECT substr(created_at, 1, 10) AS day,
			SUM(CASE WHEN label = ? THEN 1 ELSE 0 END),
			SUM(CASE WHEN label = ? THEN 1 ELSE 0 END),
			SUM(CASE WHEN label = ? THEN 1 ELSE 0 END)
		FROM comments
		WHERE created_at >= ?
		GROUP BY day
		ORDER BY day
	`, model.LabelPositive, model.LabelNegative, model.LabelNeutral, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Date, &p.Positive, &p.Negative, &p.Neutral); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func scanComment(scan func(dest ...interface{}) error) (*model.Comment, error) {
	var c model.Comment
	var pending int
	var createdAt, updatedAt string
	if err := scan(&c.ID, &c.SubmitterName, &c.SubmitterEmail, &c.Text, &c.TranslatedText, &c.Language,
		&c.ScoreNegative, &c.ScoreNeutral, &c.ScorePositive, &c.ScoreCompound, &c.Label, &pending,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	c.TranslationPending = pending == 1
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &c, nil
}

func collectComments(rows *sql.Rows) ([]model.Comment, error) {
	var comments []model.Comment
	for rows.Next() {
		c, err := scanComment(rows.Scan)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

func commentFilterClause(filter CommentListFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filter.Label != nil && *filter.Label != "" {
		conds = append(conds, `label = ?`)
		args = append(args, *filter.Label)
	}
	if filter.PendingOnly {
		conds = append(conds, `translation_pending = 1`)
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		conds = append(conds, `id IN (SELECT rowid FROM comments_fts WHERE comments_fts MATCH ?)`)
		args = append(args, ftsQuery(*filter.Search))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ftsQuery quotes user input as a single FTS5 phrase so MATCH operators in
// the input cannot change the query.
func ftsQuery(input string) string {
	return `"` + strings.ReplaceAll(strings.TrimSpace(input), `"`, `""`) + `"`
}
