package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"citypulse/backend/internal/service"
)

const sampleCommentCSV = `Name,Email,COMMENT
Rosa,rosa@example.com,The bus is always on time
,,The station is filthy and unsafe at night
Lee,lee@example.com,
`

func newImportFixture(t *testing.T) (service.ImportService, service.TaskService, service.CommentService) {
	t.Helper()

	submitter, _ := newCommentFixture(t, &translatorStub{})
	tasks := service.NewTaskService()
	return service.NewImportService(submitter, tasks), tasks, submitter
}

func TestImportService_Import(t *testing.T) {
	t.Parallel()

	svc, tasks, submitter := newImportFixture(t)

	id, err := svc.Import(context.Background(), strings.NewReader(sampleCommentCSV))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	task := waitForTask(t, tasks, service.TaskStatusDone)
	require.Equal(t, id, task.ID)
	require.NotNil(t, task.Result)
	require.Equal(t, 2, task.Result.Processed)
	require.Equal(t, 1, task.Result.Skipped)
	require.Zero(t, task.Result.Failed)

	page, err := submitter.List(context.Background(), service.CommentListOptions{})
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)
	for _, comment := range page.Comments {
		require.Contains(t, []string{"positive", "negative", "neutral"}, comment.Label)
	}
}

func TestImportService_Import_NoCommentColumn(t *testing.T) {
	t.Parallel()

	svc, _, _ := newImportFixture(t)
	_, err := svc.Import(context.Background(), strings.NewReader("Feedback,Date\nGreat service,2026-01-01\n"))
	require.ErrorIs(t, err, service.ErrInvalid)
	require.ErrorContains(t, err, "no comment column")
}

func TestImportService_Import_NoDataRows(t *testing.T) {
	t.Parallel()

	svc, _, _ := newImportFixture(t)
	_, err := svc.Import(context.Background(), strings.NewReader("comment\n"))
	require.ErrorIs(t, err, service.ErrInvalid)
	require.ErrorContains(t, err, "no data rows")
}

func TestImportService_Import_TooManyRows(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("comment\n")
	for i := 0; i <= 1000; i++ {
		b.WriteString("a comment\n")
	}

	svc, _, _ := newImportFixture(t)
	_, err := svc.Import(context.Background(), strings.NewReader(b.String()))
	require.ErrorIs(t, err, service.ErrInvalid)
	require.ErrorContains(t, err, "more than 1000 data rows")
}

func TestImportService_Import_ColumnAliases(t *testing.T) {
	t.Parallel()

	svc, tasks, submitter := newImportFixture(t)

	_, err := svc.Import(context.Background(), strings.NewReader("submitter_name,text\nMia,Too crowded to board at rush hour\n"))
	require.NoError(t, err)

	task := waitForTask(t, tasks, service.TaskStatusDone)
	require.Equal(t, 1, task.Result.Processed)

	page, err := submitter.List(context.Background(), service.CommentListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	require.Equal(t, "Mia", page.Comments[0].SubmitterName)
}
