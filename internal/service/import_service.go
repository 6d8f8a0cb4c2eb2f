//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"citypulse/backend/pkg/logger"
)

// maxImportRows caps one CSV upload. Larger files should be split.
const maxImportRows = 1000

// ImportService ingests comment batches uploaded as CSV. Rows run through
// the same submission pipeline as the public form, so imported comments are
// sanitized, language-detected, and scored like any other.
type ImportService interface {
	Import(ctx context.Context, r io.Reader) (string, error)
}

type importService struct {
	submitter CommentService
	tasks     TaskService
}

// NewImportService creates an import service reporting progress through
// tasks. The task service must not be shared with other task producers.
func NewImportService(submitter CommentService, tasks TaskService) ImportService {
	return &importService{submitter: submitter, tasks: tasks}
}

type importRow struct {
	name  string
	email string
	text  string
}

// Import parses the upload synchronously, then processes the rows in the
// background. The returned ID identifies the tracking task.
func (s *importService) Import(ctx context.Context, r io.Reader) (string, error) {
	rows, err := parseCommentCSV(r)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("%w: no data rows", ErrInvalid)
	}

	id, taskCtx := s.tasks.Start(len(rows))
	logger.Info("comment import started", "module", "service", "action", "import", "resource", "comment", "result", "ok", "task_id", id, "rows", len(rows))

	go s.run(taskCtx, rows)
	return id, nil
}

func (s *importService) run(ctx context.Context, rows []importRow) {
	var result TaskResult
	for i, row := range rows {
		if ctx.Err() != nil {
			logger.Info("comment import cancelled", "module", "service", "action", "import", "resource", "comment", "result", "cancelled", "processed", result.Processed)
			return
		}
		s.tasks.Update(i+1, snippet(row.text))

		_, err := s.submitter.Submit(ctx, SubmitCommentInput{Name: row.name, Email: row.email, Text: row.text})
		switch {
		case err == nil:
			result.Processed++
		case errors.Is(err, ErrInvalid):
			// Blank or over-long rows are expected in hand-built files.
			result.Skipped++
		case ctx.Err() != nil:
			// Superseded mid-submit; the new run owns the task now.
			return
		default:
			result.Failed++
			logger.Warn("import comment failed", "module", "service", "action", "import", "resource", "comment", "result", "failed", "row", i+1, "error", err)
		}
	}

	s.tasks.Complete(result)
	logger.Info("comment import completed", "module", "service", "action", "import", "resource", "comment", "result", "ok", "processed", result.Processed, "skipped", result.Skipped, "failed", result.Failed)
}

// parseCommentCSV reads the upload into rows. The header is matched
// case-insensitively; only a comment column is required.
func parseCommentCSV(r io.Reader) ([]importRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: empty or unreadable csv", ErrInvalid)
	}

	textCol, nameCol, emailCol := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "comment", "text", "comment_text":
			if textCol == -1 {
				textCol = i
			}
		case "name", "submitter_name":
			nameCol = i
		case "email", "submitter_email":
			emailCol = i
		}
	}
	if textCol == -1 {
		return nil, fmt.Errorf("%w: no comment column in header", ErrInvalid)
	}

	var rows []importRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		if len(rows) == maxImportRows {
			return nil, fmt.Errorf("%w: more than %d data rows", ErrInvalid, maxImportRows)
		}
		rows = append(rows, importRow{
			name:  field(record, nameCol),
			email: field(record, emailCol),
			text:  field(record, textCol),
		})
	}
	return rows, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
