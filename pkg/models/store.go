package models

import (
	"time"

	"github.com/uptrace/bun"
)

// StoreEntry is one row of the generic key-value store backing preferences,
// progress, settings, and theme.
type StoreEntry struct {
	bun.BaseModel `bun:"table:store,alias:s"`

	Key       string    `bun:",pk" json:"key"`
	Value     string    `bun:",notnull" json:"value"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
}
