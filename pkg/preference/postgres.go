package preference

import (
	"context"
	"embed"
	"errors"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/folio/pkg/resolver"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the goose migrations for the Postgres backend, rooted
// at the migration files.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// DB is the subset of *pgxpool.Pool the Postgres backend uses.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	selectPreference = `SELECT value FROM language_preferences WHERE visitor_id = $1 AND key = $2`
	upsertPreference = `INSERT INTO language_preferences (visitor_id, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (visitor_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

// Postgres keeps preferences in the language_preferences table.
type Postgres struct {
	db DB
}

func NewPostgres(db DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) For(visitorID string) resolver.Store {
	return postgresStore{db: p.db, visitor: visitorID}
}

type postgresStore struct {
	db      DB
	visitor string
}

func (s postgresStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRow(ctx, selectPreference, s.visitor, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", resolver.ErrNotFound
	}
	return value, err
}

func (s postgresStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.Exec(ctx, upsertPreference, s.visitor, key, value)
	return err
}
