package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"citypulse/backend/internal/model"
	"citypulse/backend/internal/repository"
	"citypulse/backend/internal/repository/testutil"
	"citypulse/backend/internal/service"
)

func TestExportService_ExportCSV(t *testing.T) {
	t.Parallel()

	database := testutil.NewTestDB(t)
	email := "rosa@example.com"
	translated := "The bus is always late"
	testutil.SeedComment(t, database, model.Comment{
		SubmitterName:  "Rosa",
		SubmitterEmail: &email,
		Text:           "El autobús siempre llega tarde",
		TranslatedText: &translated,
		Language:       "spa",
		ScoreNegative:  0.4,
		ScoreCompound:  -0.5,
		Label:          model.LabelNegative,
		CreatedAt:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	testutil.SeedComment(t, database, model.Comment{
		Text:          "Great new schedule",
		Language:      "eng",
		ScorePositive: 0.6,
		ScoreCompound: 0.7,
		Label:         model.LabelPositive,
		CreatedAt:     time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	})

	svc := service.NewExportService(repository.NewCommentRepository(database))

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, "ID", records[0][0])
	require.Equal(t, "Label", records[0][11])

	// Newest first.
	require.Equal(t, "Great new schedule", records[1][5])
	require.Equal(t, "positive", records[1][11])
	require.Empty(t, records[1][3])

	require.Equal(t, "Rosa", records[2][2])
	require.Equal(t, "rosa@example.com", records[2][3])
	require.Equal(t, "spa", records[2][4])
	require.Equal(t, "The bus is always late", records[2][6])
	require.Equal(t, "-0.5000", records[2][10])
}

func TestExportService_ExportExcel(t *testing.T) {
	t.Parallel()

	database := testutil.NewTestDB(t)
	testutil.SeedComment(t, database, model.Comment{
		SubmitterName: "Jordan",
		Text:          "The tram was spotless today",
		Language:      "eng",
		ScorePositive: 0.5,
		ScoreCompound: 0.6,
		Label:         model.LabelPositive,
	})

	svc := service.NewExportService(repository.NewCommentRepository(database))

	var buf bytes.Buffer
	require.NoError(t, svc.ExportExcel(context.Background(), &buf))

	workbook, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Comments")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Submitted At", rows[0][1])
	require.Equal(t, "Jordan", rows[1][2])
	require.Equal(t, "The tram was spotless today", rows[1][5])
	require.Equal(t, "positive", rows[1][11])
}

func TestExportService_Filename(t *testing.T) {
	t.Parallel()

	svc := service.NewExportService(nil)
	name := svc.Filename("csv")
	require.Contains(t, name, "comments_citypulse_")
	require.Regexp(t, `comments_citypulse_\d{8}\.csv$`, name)
}
