package database

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// SQLiteDriver is a sqlite3 driver with a unicode-aware lower() replacement,
// since the builtin LOWER only folds ASCII.
const SQLiteDriver = "sqlite3_solar"

func init() {
	sql.Register(SQLiteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("unicode_lower", strings.ToLower, true)
		},
	})
}

func EnsureDataDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// sqliteDSN maps ":memory:" to a uniquely named shared-cache database so that
// every pooled connection sees the same tables.
func sqliteDSN(path string) string {
	if path != ":memory:" {
		return path
	}
	return "file:solar-" + uuid.NewString() + "?mode=memory&cache=shared"
}

// OpenSQLite opens (creating if needed) the sqlite file at path and applies
// the schema.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := EnsureDataDir(path); err != nil {
			return nil, errors.Wrap(err, "ensuring data dir")
		}
	}

	db, err := sql.Open(SQLiteDriver, sqliteDSN(path))
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite")
	}

	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "setting journal mode")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "pinging sqlite")
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	grip.Info(message.Fields{
		"message": "sqlite store opened",
		"path":    path,
	})
	return db, nil
}
