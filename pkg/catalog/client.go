package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/blendbooks/blend/pkg/config"
	"github.com/blendbooks/blend/pkg/models"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// Client fetches the pre-authored content assets: the book catalog, chapter
// lists, full books, and raw per-language chapter content. All content is
// static JSON served relative to the configured base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.CatalogBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.CatalogFetchTimeout,
		},
	}
}

// Catalog fetches the book catalog.
func (c *Client) Catalog(ctx context.Context) ([]models.BookMetadata, error) {
	var books []models.BookMetadata
	if err := c.fetchJSON(ctx, "books.json", &books); err != nil {
		return nil, err
	}
	return books, nil
}

// ChapterList fetches the chapter list at the given content path.
func (c *Client) ChapterList(ctx context.Context, path string) ([]models.ChapterMetadata, error) {
	var chapters []models.ChapterMetadata
	if err := c.fetchJSON(ctx, path, &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}

// Book fetches a ready-made book at the given content path.
func (c *Client) Book(ctx context.Context, path string) (*models.Book, error) {
	book := &models.Book{}
	if err := c.fetchJSON(ctx, path, book); err != nil {
		return nil, err
	}
	return book, nil
}

// ChapterContent fetches raw sentence-level chapter content at the given
// content path.
func (c *Client) ChapterContent(ctx context.Context, path string) (*models.ChapterContent, error) {
	content := &models.ChapterContent{}
	if err := c.fetchJSON(ctx, path, content); err != nil {
		return nil, err
	}
	return content, nil
}

// FetchBytes fetches a raw asset (e.g. a cover image) at the given path.
func (c *Client) FetchBytes(ctx context.Context, path string) ([]byte, error) {
	body, err := c.fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read asset body: %s", path)
	}
	return data, nil
}

func (c *Client) fetchJSON(ctx context.Context, path string, dest interface{}) error {
	body, err := c.fetch(ctx, path)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dest); err != nil {
		return errors.Wrapf(err, "failed to decode content asset: %s", path)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path string) (io.ReadCloser, error) {
	url := c.baseURL + "/" + strings.TrimPrefix(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch content asset: %s", path)
	}

	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, errors.WithStack(fmt.Errorf("unexpected status %d fetching content asset: %s", res.StatusCode, path))
	}

	return res.Body, nil
}
