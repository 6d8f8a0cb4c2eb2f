package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"citypulse/backend/internal/model"
	"citypulse/backend/internal/repository"
	"citypulse/backend/internal/repository/testutil"
	"citypulse/backend/internal/sentiment"
	"citypulse/backend/internal/service"

	"github.com/stretchr/testify/require"
)

func newAnalysisFixture(t *testing.T, translator service.TranslationService) (service.AnalysisService, service.TaskService, repository.CommentRepository, *sql.DB) {
	t.Helper()

	database := testutil.NewTestDB(t)
	comments := repository.NewCommentRepository(database)
	tasks := service.NewTaskService()
	svc := service.NewAnalysisService(comments, translator, sentiment.NewScorer(), tasks)
	return svc, tasks, comments, database
}

func waitForTask(t *testing.T, tasks service.TaskService, status string) *service.Task {
	t.Helper()

	require.Eventually(t, func() bool {
		task := tasks.Get()
		return task != nil && task.Status == status
	}, 5*time.Second, 10*time.Millisecond)
	return tasks.Get()
}

func TestAnalysisService_ReanalyzeAll(t *testing.T) {
	t.Parallel()

	translator := &translatorStub{
		auto:       true,
		configured: true,
		result:     "The bus service is terrible and always arrives late",
	}
	svc, tasks, comments, database := newAnalysisFixture(t, translator)
	mislabeled := testutil.SeedComment(t, database, model.Comment{
		Text:  "The new express bus is excellent and always on time",
		Label: model.LabelNeutral,
	})
	pending := testutil.SeedComment(t, database, model.Comment{
		Text:               "El autobus siempre llega tarde",
		Language:           "spa",
		TranslationPending: true,
	})

	id, err := svc.ReanalyzeAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	task := waitForTask(t, tasks, "done")
	require.NotNil(t, task.Result)
	require.Equal(t, 2, task.Result.Processed)
	require.Equal(t, 1, task.Result.Translated)
	require.Zero(t, task.Result.Failed)

	relabeled, err := comments.GetByID(context.Background(), mislabeled)
	require.NoError(t, err)
	require.Equal(t, model.LabelPositive, relabeled.Label)
	require.Equal(t, "eng", relabeled.Language)

	translated, err := comments.GetByID(context.Background(), pending)
	require.NoError(t, err)
	require.False(t, translated.TranslationPending)
	require.NotNil(t, translated.TranslatedText)
	require.Equal(t, translator.result, *translated.TranslatedText)
	require.Equal(t, model.LabelNegative, translated.Label)
}

func TestAnalysisService_ReanalyzeAll_AlreadyRunning(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newAnalysisFixture(t, &translatorStub{})
	service.SetAnalysisServiceRunning(svc, true)

	_, err := svc.ReanalyzeAll(context.Background())
	require.ErrorIs(t, err, service.ErrAnalysisRunning)
}

func TestAnalysisService_ReanalyzePending(t *testing.T) {
	t.Parallel()

	translator := &translatorStub{
		auto:       true,
		configured: true,
		result:     "The bus service is terrible and always arrives late",
	}
	svc, _, comments, database := newAnalysisFixture(t, translator)
	testutil.SeedComment(t, database, model.Comment{
		Text:               "El autobus siempre llega tarde",
		Language:           "spa",
		TranslationPending: true,
	})
	testutil.SeedComment(t, database, model.Comment{
		Text:               "El metro esta muy sucio por las mananas",
		Language:           "spa",
		TranslationPending: true,
	})
	testutil.SeedComment(t, database, model.Comment{
		Text:  "The station is clean",
		Label: model.LabelPositive,
	})

	processed, err := svc.ReanalyzePending(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, processed)
	require.Equal(t, 2, translator.calls)

	remaining, err := comments.ListPending(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, remaining)
}

func TestAnalysisService_ReanalyzePending_NotConfigured(t *testing.T) {
	t.Parallel()

	translator := &translatorStub{configured: false}
	svc, _, comments, database := newAnalysisFixture(t, translator)
	testutil.SeedComment(t, database, model.Comment{
		Text:               "El autobus siempre llega tarde",
		Language:           "spa",
		TranslationPending: true,
	})

	processed, err := svc.ReanalyzePending(context.Background())
	require.NoError(t, err)
	require.Zero(t, processed)
	require.Zero(t, translator.calls)

	remaining, err := comments.ListPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	require.Equal(t, "short", service.Snippet("short"))

	long := service.Snippet("El servicio de autobuses es terrible y siempre llega tarde por la manana")
	require.Len(t, []rune(long), 63)
	require.Contains(t, long, "...")
}
