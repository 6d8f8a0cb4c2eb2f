package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"citypulse/backend/internal/repository"
	"citypulse/backend/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestSettingsRepository_Set_Insert(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	err := repo.Set(ctx, "test.key", "test value")
	require.NoError(t, err)

	// Verify insertion
	setting, err := repo.Get(ctx, "test.key")
	require.NoError(t, err)
	require.NotNil(t, setting)
	require.Equal(t, "test.key", setting.Key)
	require.Equal(t, "test value", setting.Value)
	require.False(t, setting.UpdatedAt.IsZero())
}

func TestSettingsRepository_Set_Update(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	// Initial insertion
	testutil.SeedSetting(t, db, "test.key", "initial value")

	// Update the value
	err := repo.Set(ctx, "test.key", "updated value")
	require.NoError(t, err)

	// Verify update
	setting, err := repo.Get(ctx, "test.key")
	require.NoError(t, err)
	require.Equal(t, "updated value", setting.Value)
}

func TestSettingsRepository_Get_Success(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	testutil.SeedSetting(t, db, "translation.provider", "openai")

	setting, err := repo.Get(ctx, "translation.provider")
	require.NoError(t, err)
	require.NotNil(t, setting)
	require.Equal(t, "translation.provider", setting.Key)
	require.Equal(t, "openai", setting.Value)
}

func TestSettingsRepository_Get_NotFound(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	setting, err := repo.Get(ctx, "nonexistent.key")
	require.NoError(t, err)
	require.Nil(t, setting)
}

func TestSettingsRepository_GetByPrefix_Success(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	// Seed multiple settings with different prefixes
	testutil.SeedSetting(t, db, "translation.provider", "openai")
	testutil.SeedSetting(t, db, "translation.api_key", "sk-test123")
	testutil.SeedSetting(t, db, "translation.model", "gpt-4o-mini")
	testutil.SeedSetting(t, db, "general.agency_name", "Metro Transit")

	// Get all settings with "translation." prefix
	settings, err := repo.GetByPrefix(ctx, "translation.")
	require.NoError(t, err)
	require.Len(t, settings, 3)

	// Verify all returned keys have the prefix
	for _, s := range settings {
		require.True(t, len(s.Key) >= 12 && s.Key[:12] == "translation.", "expected key with prefix 'translation.', got %s", s.Key)
	}
}

func TestSettingsRepository_Delete_Success(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	testutil.SeedSetting(t, db, "test.key", "test value")

	// Delete the setting
	err := repo.Delete(ctx, "test.key")
	require.NoError(t, err)

	// Verify deletion
	setting, err := repo.Get(ctx, "test.key")
	require.NoError(t, err)
	require.Nil(t, setting)
}

func TestSettingsRepository_Delete_NotFound(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	err := repo.Delete(ctx, "nonexistent.key")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSettingsRepository_DeleteByPrefix(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	testutil.SeedSetting(t, db, "alerts.http_etag", `"abc123"`)
	testutil.SeedSetting(t, db, "alerts.http_last_modified", "Mon, 02 Jan 2006 15:04:05 GMT")
	testutil.SeedSetting(t, db, "alerts.feed_url", "https://transit.example.com/alerts.xml")

	removed, err := repo.DeleteByPrefix(ctx, "alerts.http_")
	require.NoError(t, err)
	require.Equal(t, int64(2), removed)

	// The feed URL setting is untouched
	setting, err := repo.Get(ctx, "alerts.feed_url")
	require.NoError(t, err)
	require.NotNil(t, setting)

	removed, err = repo.DeleteByPrefix(ctx, "alerts.http_")
	require.NoError(t, err)
	require.Zero(t, removed)
}
