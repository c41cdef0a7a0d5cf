package resolver

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
	"github.com/blendbooks/blend/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// fixtures maps content paths to the JSON the test upstream serves. Missing
// paths 404; an entry with an empty value 500s to simulate a broken asset.
var fixtures = map[string]string{
	"/books.json": `[
		{"id": "dracula", "title": "Dracula", "translations": [
			{"code": "es", "name": "Spanish", "title": "Drácula", "chaptersPath": "content/dracula/es/chapters.json"}
		]},
		{"id": "sherlock", "title": "Sherlock Holmes", "translations": [
			{"code": "es", "name": "Spanish", "title": "Sherlock Holmes (ES)", "chaptersPath": "content/sherlock/es/chapters.json"},
			{"code": "en", "name": "English", "title": "Sherlock Holmes", "chaptersPath": "content/sherlock/en/chapters.json"}
		]},
		{"id": "quijote", "title": "Don Quijote", "translations": [
			{"code": "es", "name": "Spanish", "title": "Don Quijote", "chaptersPath": "content/quijote/es/chapters.json"}
		]},
		{"id": "emma", "title": "Emma", "translations": [
			{"code": "es", "name": "Spanish", "title": "Emma (ES)", "chaptersPath": "content/emma/es/chapters.json"},
			{"code": "en", "name": "English", "title": "Emma", "chaptersPath": "content/emma/en/chapters.json"}
		]},
		{"id": "gulliver", "title": "Gulliver", "targetLanguage": "es", "nativeLanguage": "en", "path": "content/gulliver/book.json"},
		{"id": "legacy", "title": "Legacy Reader", "hasChapters": true, "chaptersPath": "content/legacy/chapters.json"}
	]`,

	// Dracula's chapter list is broken so the search has to skip it.
	"/content/dracula/es/chapters.json": "",

	"/content/sherlock/es/chapters.json": `[
		{"id": "sherlock-es-1", "title": "Capítulo 1", "path": "content/sherlock/es/1.json"},
		{"id": "sherlock-es-2", "title": "Capítulo 2", "path": "content/sherlock/es/2.json"}
	]`,
	"/content/sherlock/en/chapters.json": `[
		{"id": "sherlock-en-1", "title": "Chapter 1", "path": "content/sherlock/en/1.json"},
		{"id": "sherlock-en-2", "title": "Chapter 2", "path": "content/sherlock/en/2.json"}
	]`,
	"/content/sherlock/es/1.json": `{"sentences": [
		{"index": 0, "sentence": "Uno."},
		{"index": 1, "sentence": "Dos."},
		{"index": 2, "sentence": "Tres."}
	]}`,
	"/content/sherlock/en/1.json": `{"sentences": [
		{"index": 0, "sentence": "One."},
		{"index": 1, "sentence": "Two."}
	]}`,

	"/content/quijote/es/chapters.json": `[
		{"id": "quijote-es-1", "title": "Capítulo 1", "path": "content/quijote/es/1.json"}
	]`,

	// Emma's English chapter ids don't follow the composite shape, so the
	// native edition has to be matched by position.
	"/content/emma/es/chapters.json": `[
		{"id": "emma-es-1", "title": "Capítulo 1", "path": "content/emma/es/1.json"}
	]`,
	"/content/emma/en/chapters.json": `[
		{"id": "emma-chapter-one", "title": "Chapter 1", "path": "content/emma/en/1.json"}
	]`,
	"/content/emma/es/1.json": `{"sentences": [{"index": 0, "sentence": "Hola."}]}`,
	"/content/emma/en/1.json": `{"sentences": [{"index": 0, "sentence": "Hello."}]}`,

	"/content/gulliver/book.json": `{
		"id": "gulliver",
		"title": "Gulliver",
		"targetLanguage": "es",
		"nativeLanguage": "en",
		"pages": [{"pageNumber": 1, "sentences": [{"target": "Hola.", "native": "Hello."}]}]
	}`,

	"/content/legacy/chapters.json": `[
		{"id": "legacy-ch1", "title": "Chapter 1", "path": "content/legacy/ch1.json"},
		{"id": "legacy-ch2", "title": "Chapter 2", "path": "content/legacy/ch2.json"}
	]`,
	"/content/legacy/ch1.json": `{
		"id": "legacy-ch1",
		"title": "Legacy Reader - Chapter 1",
		"targetLanguage": "es",
		"nativeLanguage": "en",
		"pages": [{"pageNumber": 1, "sentences": [{"target": "Adiós.", "native": "Goodbye."}]}]
	}`,
}

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

func newTestResolver(t *testing.T) (*Service, *settings.Service) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := fixtures[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if body == "" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := catalog.NewClient(&config.Config{
		CatalogBaseURL:      srv.URL,
		CatalogFetchTimeout: 5 * time.Second,
	})
	settingsService := settings.NewService(newTestDB(t))

	return NewService(client, catalog.NewCache(client), settingsService), settingsService
}

func TestResolveTopLevelBook(t *testing.T) {
	t.Parallel()

	svc, _ := newTestResolver(t)

	book, err := svc.ResolveDocument(context.Background(), "gulliver")
	require.NoError(t, err)
	assert.Equal(t, "gulliver", book.ID)
	assert.Equal(t, 1, book.TotalPages())
}

func TestResolveCompositeChapter(t *testing.T) {
	t.Parallel()

	svc, _ := newTestResolver(t)

	book, err := svc.ResolveDocument(context.Background(), "sherlock-es-1")
	require.NoError(t, err)

	assert.Equal(t, "sherlock-es-1", book.ID)
	assert.Equal(t, "Sherlock Holmes (ES) - Chapter 1", book.Title)
	assert.Equal(t, "es", book.TargetLanguage)
	assert.Equal(t, "en", book.NativeLanguage)

	// Three target sentences, two native: the shorter edition is padded.
	require.Equal(t, 1, book.TotalPages())
	sentences := book.Pages[0].Sentences
	require.Len(t, sentences, 3)
	assert.Equal(t, "Uno.", sentences[0].Target)
	assert.Equal(t, "One.", sentences[0].Native)
	assert.Equal(t, "Tres.", sentences[2].Target)
	assert.Equal(t, "", sentences[2].Native)
}

func TestResolveCompositePaging(t *testing.T) {
	t.Parallel()

	svc, settingsService := newTestResolver(t)
	ctx := context.Background()

	two := 2
	_, err := settingsService.Update(ctx, settings.UpdateSettingsOptions{SentencesPerPage: &two})
	require.NoError(t, err)

	book, err := svc.ResolveDocument(ctx, "sherlock-es-1")
	require.NoError(t, err)

	require.Equal(t, 2, book.TotalPages())
	assert.Equal(t, 1, book.Pages[0].PageNumber)
	assert.Len(t, book.Pages[0].Sentences, 2)
	assert.Equal(t, 2, book.Pages[1].PageNumber)
	assert.Len(t, book.Pages[1].Sentences, 1)
}

func TestResolveCompositeFallsBackToPosition(t *testing.T) {
	t.Parallel()

	svc, _ := newTestResolver(t)

	book, err := svc.ResolveDocument(context.Background(), "emma-es-1")
	require.NoError(t, err)
	require.Equal(t, 1, book.TotalPages())
	assert.Equal(t, "Hello.", book.Pages[0].Sentences[0].Native)
}

func TestResolveCompositeTranslationMissing(t *testing.T) {
	t.Parallel()

	svc, _ := newTestResolver(t)

	_, err := svc.ResolveDocument(context.Background(), "quijote-es-1")
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "translation_missing", codeErr.Code)
}

func TestResolveLegacyFlatChapter(t *testing.T) {
	t.Parallel()

	svc, _ := newTestResolver(t)

	book, err := svc.ResolveDocument(context.Background(), "legacy-ch1")
	require.NoError(t, err)
	assert.Equal(t, "legacy-ch1", book.ID)
	assert.Equal(t, "Goodbye.", book.Pages[0].Sentences[0].Native)
}

func TestResolveUnknownDocument(t *testing.T) {
	t.Parallel()

	svc, _ := newTestResolver(t)

	_, err := svc.ResolveDocument(context.Background(), "no-such-book")
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
}

func TestChapterContext(t *testing.T) {
	t.Parallel()

	svc, _ := newTestResolver(t)
	ctx := context.Background()

	chapterCtx, err := svc.ChapterContext(ctx, "sherlock-es-1")
	require.NoError(t, err)
	assert.True(t, chapterCtx.IsChapterContext)
	assert.Equal(t, "sherlock", chapterCtx.ParentBookID)
	assert.Equal(t, "es", chapterCtx.ParentLanguage)
	assert.Equal(t, "sherlock-es-2", chapterCtx.NextChapterID)

	// Last chapter has no successor.
	chapterCtx, err = svc.ChapterContext(ctx, "sherlock-es-2")
	require.NoError(t, err)
	assert.True(t, chapterCtx.IsChapterContext)
	assert.Equal(t, "", chapterCtx.NextChapterID)

	// A plain book id is not a chapter.
	chapterCtx, err = svc.ChapterContext(ctx, "gulliver")
	require.NoError(t, err)
	assert.False(t, chapterCtx.IsChapterContext)
}

func TestChapterContextLegacyFlatChapter(t *testing.T) {
	t.Parallel()

	svc, _ := newTestResolver(t)
	ctx := context.Background()

	chapterCtx, err := svc.ChapterContext(ctx, "legacy-ch1")
	require.NoError(t, err)
	assert.True(t, chapterCtx.IsChapterContext)
	assert.Equal(t, "legacy", chapterCtx.ParentBookID)
	assert.Equal(t, "legacy-ch2", chapterCtx.NextChapterID)

	chapterCtx, err = svc.ChapterContext(ctx, "legacy-ch2")
	require.NoError(t, err)
	assert.True(t, chapterCtx.IsChapterContext)
	assert.Equal(t, "", chapterCtx.NextChapterID)
}
