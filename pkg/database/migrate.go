package database

import (
	"context"
	"database/sql"
	_ "embed"

	"github.com/pkg/errors"
)

//go:embed schema.sql
var schema string

func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "applying schema")
	}
	return nil
}
