package postgres

import (
	"context"
	_ "embed"

	"tradejournal/pkg/errors"
)

//go:embed schema.sql
var schemaSQL string

// Bootstrap applies the schema. Every statement is idempotent, so
// running it on an already-initialized database is a no-op.
func Bootstrap(ctx context.Context, db DBTX) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}
