package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/blendbooks/blend/pkg/models"
)

// Cache holds the most recently fetched catalog snapshot. The background
// worker refreshes it periodically; readers fall back to fetching on demand
// when no snapshot exists yet.
type Cache struct {
	client *Client

	mu        sync.RWMutex
	books     []models.BookMetadata
	fetchedAt time.Time
}

func NewCache(client *Client) *Cache {
	return &Cache{client: client}
}

// Books returns the cached catalog, fetching it first if the cache is empty.
func (c *Cache) Books(ctx context.Context) ([]models.BookMetadata, error) {
	c.mu.RLock()
	books := c.books
	c.mu.RUnlock()

	if books != nil {
		return books, nil
	}

	return c.Refresh(ctx)
}

// Refresh fetches the catalog and replaces the snapshot. On failure the
// previous snapshot is kept.
func (c *Cache) Refresh(ctx context.Context) ([]models.BookMetadata, error) {
	books, err := c.client.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.books = books
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	return books, nil
}

// FetchedAt returns when the snapshot was last refreshed.
func (c *Cache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}
