package library

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blendbooks/blend/pkg/catalog"
	"github.com/blendbooks/blend/pkg/config"
	"github.com/blendbooks/blend/pkg/errcodes"
	"github.com/blendbooks/blend/pkg/migrations"
	"github.com/blendbooks/blend/pkg/progress"
	"github.com/blendbooks/blend/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var fixtures = map[string]string{
	"/books.json": `[
		{"id": "gulliver", "title": "Gulliver", "targetLanguage": "es", "nativeLanguage": "en",
		 "path": "content/gulliver/book.json", "coverImage": "covers/gulliver.jpg", "description": "Travels."},
		{"id": "sherlock", "title": "Sherlock Holmes", "translations": [
			{"code": "es", "name": "Spanish", "title": "Sherlock Holmes (ES)", "chaptersPath": "content/sherlock/es/chapters.json"},
			{"code": "fr", "name": "French", "title": "Sherlock Holmes (FR)", "chaptersPath": "content/sherlock/fr/chapters.json"},
			{"code": "en", "name": "English", "title": "Sherlock Holmes", "chaptersPath": "content/sherlock/en/chapters.json"}
		]}
	]`,

	"/content/sherlock/es/chapters.json": `[
		{"id": "sherlock-es-1", "title": "Capítulo 1", "path": "content/sherlock/es/1.json"},
		{"id": "sherlock-es-2", "title": "Capítulo 2", "path": "content/sherlock/es/2.json"}
	]`,
}

type testEnv struct {
	libraryService  *Service
	progressService *progress.Service
	settingsService *settings.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := fixtures[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	client := catalog.NewClient(&config.Config{
		CatalogBaseURL:      srv.URL,
		CatalogFetchTimeout: 5 * time.Second,
	})
	cache := catalog.NewCache(client)
	settingsService := settings.NewService(db)

	return &testEnv{
		libraryService:  NewService(db, client, cache, settingsService),
		progressService: progress.NewService(db),
		settingsService: settingsService,
	}
}

func TestBooks(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	// Halfway through Gulliver.
	require.NoError(t, env.progressService.SetProgressPoint(ctx, "gulliver", 4, 10))

	books, err := env.libraryService.Books(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)

	gulliver := books[0]
	assert.Equal(t, "gulliver", gulliver.ID)
	assert.Equal(t, "/covers/covers/gulliver.jpg", gulliver.CoverURL)
	assert.False(t, gulliver.HasChapters)
	assert.Equal(t, 50, gulliver.Percentage)
	assert.False(t, gulliver.IsComplete)

	sherlock := books[1]
	assert.True(t, sherlock.HasChapters)
	assert.Equal(t, []string{"es", "fr", "en"}, sherlock.Languages)
}

func TestChapters(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.progressService.SetProgressPoint(ctx, "sherlock-es-1", 9, 10))

	chapters, err := env.libraryService.Chapters(ctx, "sherlock", "es")
	require.NoError(t, err)
	require.Len(t, chapters, 2)

	assert.Equal(t, "sherlock-es-1", chapters[0].ID)
	assert.Equal(t, 100, chapters[0].Percentage)
	assert.True(t, chapters[0].IsComplete)
	assert.Equal(t, 0, chapters[1].Percentage)
	assert.False(t, chapters[1].IsComplete)
}

func TestChaptersUnknownLanguage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.libraryService.Chapters(context.Background(), "sherlock", "de")
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "translation_missing", codeErr.Code)
}

func TestLanguagesExcludesNative(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	view, err := env.libraryService.Languages(context.Background(), "sherlock")
	require.NoError(t, err)

	assert.Equal(t, "en", view.NativeLanguage)
	assert.Equal(t, "English", view.NativeLanguageName)
	require.Len(t, view.Options, 2)
	assert.Equal(t, "es", view.Options[0].Code)
	assert.Equal(t, "fr", view.Options[1].Code)
}

func TestProgressRollUp(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.progressService.CompleteChapter(ctx, "sherlock-es-1", 10))

	book, err := env.libraryService.Progress(ctx, "sherlock", "es")
	require.NoError(t, err)
	assert.False(t, book.IsComplete)
	assert.Len(t, book.Chapters, 1)

	require.NoError(t, env.progressService.CompleteChapter(ctx, "sherlock-es-2", 10))

	book, err = env.libraryService.Progress(ctx, "sherlock", "es")
	require.NoError(t, err)
	assert.True(t, book.IsComplete)
}

func TestUnknownBook(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.libraryService.Books(context.Background())
	require.NoError(t, err)

	_, err = env.libraryService.Languages(context.Background(), "missing")
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
}
