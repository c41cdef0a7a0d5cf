package settings

import (
	"context"
	"database/sql"
	"testing"

	"github.com/blendbooks/blend/pkg/keyval"
	"github.com/blendbooks/blend/pkg/migrations"
	"github.com/blendbooks/blend/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestSettingsDefaults(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))

	current, err := svc.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultUserSettings(), current)
}

func TestUpdatePersistsAcrossServices(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	lang := "de"
	perPage := 5
	_, err := svc.Update(ctx, UpdateSettingsOptions{
		NativeLanguage:   &lang,
		SentencesPerPage: &perPage,
	})
	require.NoError(t, err)

	// A fresh service over the same database sees the saved settings.
	reloaded, err := NewService(db).Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "de", reloaded.NativeLanguage)
	assert.Equal(t, 5, reloaded.SentencesPerPage)
	assert.True(t, reloaded.ShowTranslation)
}

func TestStoredSettingsMergedOverDefaults(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	// A partial blob from an older version only has some fields.
	kv := keyval.NewService(db)
	require.NoError(t, kv.Set(ctx, settingsKey, `{"darkMode":true}`))

	current, err := NewService(db).Settings(ctx)
	require.NoError(t, err)
	assert.True(t, current.DarkMode)
	assert.Equal(t, models.DefaultSentencesPerPage, current.SentencesPerPage)
	assert.Equal(t, "en", current.NativeLanguage)
}

func TestMalformedStoredSettingsFallBackToDefaults(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	kv := keyval.NewService(db)
	require.NoError(t, kv.Set(ctx, settingsKey, "{nope"))

	current, err := NewService(db).Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultUserSettings(), current)
}

func TestToggleShowTranslation(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	ctx := context.Background()

	first, err := svc.ToggleShowTranslation(ctx)
	require.NoError(t, err)
	assert.False(t, first.ShowTranslation)

	second, err := svc.ToggleShowTranslation(ctx)
	require.NoError(t, err)
	assert.True(t, second.ShowTranslation)
}

func TestSubscribeNotifiedOnChange(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	ctx := context.Background()

	var seen []models.UserSettings
	unsubscribe := svc.Subscribe(func(s models.UserSettings) {
		seen = append(seen, s)
	})

	_, err := svc.ToggleDarkMode(ctx)
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.True(t, seen[0].DarkMode)

	unsubscribe()

	_, err = svc.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.Len(t, seen, 1)
}

func TestReset(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	ctx := context.Background()

	lang := "es"
	_, err := svc.Update(ctx, UpdateSettingsOptions{NativeLanguage: &lang})
	require.NoError(t, err)

	restored, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultUserSettings(), restored)
}
