//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"citypulse/backend/internal/model"
	"citypulse/backend/internal/repository"
	"citypulse/backend/pkg/logger"
)

const exportSheetName = "Comments"

// exportHeader is the column order shared by the CSV and Excel exports.
var exportHeader = []string{
	"ID", "Submitted At", "Name", "Email", "Language",
	"Comment", "Translated Comment",
	"Negative", "Neutral", "Positive", "Compound", "Label",
}

// ExportService writes the stored comments to downloadable files.
type ExportService interface {
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportExcel(ctx context.Context, w io.Writer) error
	Filename(format string) string
}

type exportService struct {
	comments repository.CommentRepository
}

func NewExportService(comments repository.CommentRepository) ExportService {
	return &exportService{comments: comments}
}

// ExportCSV streams all comments as CSV, newest first.
func (s *exportService) ExportCSV(ctx context.Context, w io.Writer) error {
	comments, err := s.comments.List(ctx, repository.CommentListFilter{})
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, comment := range comments {
		if err := writer.Write(commentRow(comment)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	logger.Info("comments exported", "module", "service", "action", "export", "resource", "comment", "result", "ok", "format", "csv", "count", len(comments))
	return nil
}

// ExportExcel writes all comments into a single-sheet workbook, newest first.
func (s *exportService) ExportExcel(ctx context.Context, w io.Writer) error {
	comments, err := s.comments.List(ctx, repository.CommentListFilter{})
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write excel header: %w", err)
	}

	for i, comment := range comments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excel cell name: %w", err)
		}
		row := commentRow(comment)
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return fmt.Errorf("write excel row: %w", err)
		}
	}

	// Comment columns need room; the defaults truncate badly.
	if err := f.SetColWidth(exportSheetName, "F", "G", 60); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	logger.Info("comments exported", "module", "service", "action", "export", "resource", "comment", "result", "ok", "format", "xlsx", "count", len(comments))
	return nil
}

// Filename returns a dated download name, e.g. comments_citypulse_20260825.csv.
func (s *exportService) Filename(format string) string {
	return fmt.Sprintf("comments_citypulse_%s.%s", time.Now().UTC().Format("20060102"), format)
}

func commentRow(comment model.Comment) []string {
	email := ""
	if comment.SubmitterEmail != nil {
		email = *comment.SubmitterEmail
	}
	translated := ""
	if comment.TranslatedText != nil {
		translated = *comment.TranslatedText
	}
	return []string{
		strconv.FormatInt(comment.ID, 10),
		comment.CreatedAt.UTC().Format(time.RFC3339),
		comment.SubmitterName,
		email,
		comment.Language,
		comment.Text,
		translated,
		formatScore(comment.ScoreNegative),
		formatScore(comment.ScoreNeutral),
		formatScore(comment.ScorePositive),
		formatScore(comment.ScoreCompound),
		comment.Label,
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
