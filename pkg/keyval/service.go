package keyval

import (
	"context"
	"database/sql"
	"time"

	"github.com/blendbooks/blend/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

// Service is the generic key-value persistence behind preferences, progress,
// settings, and theme. Keys map one-to-one onto rows of the store table, so
// distinct keys never collide and the same key always lands in the same slot.
type Service struct {
	db  *bun.DB
	log logger.Logger
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db, log: logger.New()}
}

// Get returns the stored value for key, or nil when the key has never been
// set. Missing keys are not an error.
func (svc *Service) Get(ctx context.Context, key string) (*string, error) {
	entry := &models.StoreEntry{}
	err := svc.db.NewSelect().
		Model(entry).
		Where("key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}

	return &entry.Value, nil
}

// Set upserts the value for key. The write is committed before Set returns,
// so a Get in the same process always observes the latest Set.
func (svc *Service) Set(ctx context.Context, key, value string) error {
	now := time.Now()
	entry := &models.StoreEntry{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := svc.db.NewInsert().
		Model(entry).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return errors.WithStack(err)
}

// GetJSON unmarshals the stored value for key into dest and reports whether a
// usable value was found. Corrupt stored JSON is treated as absent, never
// surfaced to the caller.
func (svc *Service) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	value, err := svc.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if value == nil {
		return false, nil
	}

	if err := json.Unmarshal([]byte(*value), dest); err != nil {
		svc.log.Err(err).Warn("discarding malformed stored value", logger.Data{"key": key})
		return false, nil
	}

	return true, nil
}

// SetJSON marshals v and stores it under key.
func (svc *Service) SetJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.WithStack(err)
	}
	return svc.Set(ctx, key, string(data))
}
