package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blendbooks/blend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&config.Config{
		CatalogBaseURL:      srv.URL,
		CatalogFetchTimeout: 5 * time.Second,
	})
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/books.json", r.URL.Path)
		w.Write([]byte(`[
			{"id": "sherlock", "title": "Sherlock Holmes", "language": "es"},
			{"id": "dracula", "title": "Dracula", "language": "fr"}
		]`))
	}))

	books, err := client.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "sherlock", books[0].ID)
	assert.Equal(t, "Dracula", books[1].Title)
}

func TestChapterContent(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/content/sherlock/es/chapter1.json", r.URL.Path)
		w.Write([]byte(`{"sentences": [
			{"index": 0, "sentence": "Hola."},
			{"index": 1, "sentence": "Adiós."}
		]}`))
	}))

	content, err := client.ChapterContent(context.Background(), "content/sherlock/es/chapter1.json")
	require.NoError(t, err)
	require.Len(t, content.Sentences, 2)
	assert.Equal(t, "Hola.", content.Sentences[0].Sentence)
}

func TestFetchNotOK(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.Catalog(context.Background())
	assert.Error(t, err)
}

func TestFetchMalformedJSON(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))

	_, err := client.Book(context.Background(), "content/sherlock/book.json")
	assert.Error(t, err)
}

func TestCacheRefresh(t *testing.T) {
	t.Parallel()

	var calls int64
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`[{"id": "sherlock", "title": "Sherlock Holmes"}]`))
	}))

	cache := NewCache(client)
	ctx := context.Background()

	// First read fetches; second read serves the snapshot.
	books, err := cache.Books(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)

	_, err = cache.Books(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))

	_, err = cache.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestCacheKeepsSnapshotOnFailedRefresh(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"id": "sherlock", "title": "Sherlock Holmes"}]`))
	}))

	cache := NewCache(client)
	ctx := context.Background()

	_, err := cache.Books(ctx)
	require.NoError(t, err)

	fail.Store(true)
	_, err = cache.Refresh(ctx)
	require.Error(t, err)

	books, err := cache.Books(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}
