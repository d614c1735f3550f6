package bodies

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"solarapi/pkg/models"
)

// SQLiteStore keeps one JSON document per row and filters with json_extract.
type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

// buildFindSQL builds the SELECT for f. The name match lowercases both sides
// with unicode_lower (registered by the database package) and escapes LIKE
// wildcards so the parameter is matched literally.
func buildFindSQL(f Filter, limit int) (string, []any) {
	var where []string
	var args []any

	if f.ID != "" {
		where = append(where, "id = ?")
		args = append(args, f.ID)
	}
	if f.BodyType != "" {
		where = append(where, "json_extract(doc, '$.bodyType') = ?")
		args = append(args, f.BodyType)
	}
	if f.EnglishName != "" {
		where = append(where, "json_extract(doc, '$.englishName') = ?")
		args = append(args, f.EnglishName)
	}
	if f.IsPlanet != nil {
		where = append(where, "json_extract(doc, '$.isPlanet') = ?")
		if *f.IsPlanet {
			args = append(args, 1)
		} else {
			args = append(args, 0)
		}
	}
	if f.NameContains != "" {
		where = append(where, `unicode_lower(json_extract(doc, '$.name')) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(f.NameContains))+"%")
	}

	sqlStr := "SELECT doc FROM bodies"
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}
	sqlStr += " ORDER BY rowid"
	if limit > 0 {
		sqlStr += " LIMIT ?"
		args = append(args, limit)
	}
	return sqlStr, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func (s *SQLiteStore) FindAll(ctx context.Context, f Filter) ([]models.CelestialBody, error) {
	sqlStr, args := buildFindSQL(f, 0)

	rows, err := s.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, storeErr("find bodies", err)
	}
	defer rows.Close()

	out := []models.CelestialBody{}
	for rows.Next() {
		b, err := scanBody(rows)
		if err != nil {
			return nil, storeErr("scan body", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate bodies", err)
	}
	return out, nil
}

func (s *SQLiteStore) FindOne(ctx context.Context, f Filter) (*models.CelestialBody, error) {
	sqlStr, args := buildFindSQL(f, 1)

	b, err := scanBody(s.DB.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("find body", err)
	}
	return &b, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return storeErr("ping", s.DB.PingContext(ctx))
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBody(row scanner) (models.CelestialBody, error) {
	var doc string
	if err := row.Scan(&doc); err != nil {
		return models.CelestialBody{}, err
	}

	var b models.CelestialBody
	if err := json.Unmarshal([]byte(doc), &b); err != nil {
		return models.CelestialBody{}, errors.Wrap(err, "decoding stored document")
	}
	b.Normalize()
	return b, nil
}

// UpsertAll writes bodies in one transaction, replacing existing documents
// with the same id.
func (s *SQLiteStore) UpsertAll(ctx context.Context, bodies []models.CelestialBody) (int, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, storeErr("begin tx", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bodies (id, doc)
		VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  doc = excluded.doc,
		  updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`)
	if err != nil {
		return 0, storeErr("prepare upsert", err)
	}
	defer stmt.Close()

	for _, b := range bodies {
		if b.ID == "" {
			return 0, errors.New("body without id")
		}
		doc, err := json.Marshal(b)
		if err != nil {
			return 0, errors.Wrapf(err, "encoding body '%s'", b.ID)
		}
		if _, err := stmt.ExecContext(ctx, b.ID, string(doc)); err != nil {
			return 0, storeErr("upsert body "+b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, storeErr("commit", err)
	}
	return len(bodies), nil
}
