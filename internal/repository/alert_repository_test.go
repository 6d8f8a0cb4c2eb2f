package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"citypulse/backend/internal/hashutil"
	"citypulse/backend/internal/model"
	"citypulse/backend/internal/repository"
	"citypulse/backend/internal/repository/testutil"
)

func TestServiceAlertRepository_Create_Dedup(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewServiceAlertRepository(db)
	ctx := context.Background()

	url := "https://transit.example.com/alerts/17"
	alert := model.ServiceAlert{
		Hash:    hashutil.AlertHash(url, "Line 3 detour", "Construction on Main St"),
		Title:   "Line 3 detour",
		Summary: "Construction on Main St",
		URL:     &url,
	}

	created, err := repo.Create(ctx, alert)
	require.NoError(t, err)
	require.True(t, created)

	// Same hash again is ignored
	alert.ID = 0
	created, err = repo.Create(ctx, alert)
	require.NoError(t, err)
	require.False(t, created)

	alerts, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	require.Equal(t, "Line 3 detour", alerts[0].Title)
	require.Equal(t, url, *alerts[0].URL)
}

func TestServiceAlertRepository_List_Order(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewServiceAlertRepository(db)
	ctx := context.Background()

	older := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)

	testutil.SeedAlert(t, db, model.ServiceAlert{Title: "Old alert", PublishedAt: &older})
	testutil.SeedAlert(t, db, model.ServiceAlert{Title: "New alert", PublishedAt: &newer})
	// No publication date, falls back to ingestion time (now)
	testutil.SeedAlert(t, db, model.ServiceAlert{Title: "Undated alert"})

	alerts, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	require.Equal(t, "Undated alert", alerts[0].Title)
	require.Equal(t, "New alert", alerts[1].Title)
	require.Equal(t, "Old alert", alerts[2].Title)
	require.True(t, alerts[1].PublishedAt.Equal(newer))

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
}

func TestServiceAlertRepository_Prune(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewServiceAlertRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		published := base.AddDate(0, 0, i)
		testutil.SeedAlert(t, db, model.ServiceAlert{
			Title:       "Alert",
			Summary:     published.Format("2006-01-02"),
			PublishedAt: &published,
		})
	}

	removed, err := repo.Prune(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, int64(2), removed)

	alerts, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	// The newest three survive
	require.Equal(t, "2025-02-05", alerts[0].Summary)
	require.Equal(t, "2025-02-03", alerts[2].Summary)

	// Pruning below the row count again removes nothing
	removed, err = repo.Prune(ctx, 10)
	require.NoError(t, err)
	require.Zero(t, removed)
}
