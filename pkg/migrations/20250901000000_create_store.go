package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		// Single key-value table backing the preference, progress, settings,
		// and theme stores. Keys are namespaced by prefix (slider-<id>,
		// maintain-translation-<id>, book-progress-<id>, book-reader-settings,
		// theme).
		_, err := db.Exec(`
			CREATE TABLE store (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("DROP TABLE IF EXISTS store")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
