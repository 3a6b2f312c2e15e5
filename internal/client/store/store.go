// Package store opens the local SQLite database and wires the repositories
// the client keeps its durable state in.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/sujeetunbeatable/liorea-cli/internal/client/migrations"
	"github.com/sujeetunbeatable/liorea-cli/internal/client/repositories/metadata"
	"github.com/sujeetunbeatable/liorea-cli/internal/client/repositories/outbox"
)

// Store bundles the opened database and its repositories.
type Store struct {
	DB       *sql.DB
	Metadata metadata.Repository
	Outbox   outbox.Repository
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if necessary) the database at dsn, migrates it, and
// returns the repositories bound to it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
		Outbox:   outbox.NewSQLiteRepository(db),
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}
