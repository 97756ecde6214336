package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies the embedded SQL migrations via goose.
func (db *DB) Migrate(ctx context.Context) error {
	// The pool owns the connections; sqlDB is left for it to reclaim on Close.
	sqlDB := stdlib.OpenDBFromPool(db.pool)

	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Migrate runs migrations when the store is backed by PostgreSQL. Memory
// stores need none.
func Migrate(ctx context.Context, store Store) error {
	database, ok := store.(*DB)
	if !ok {
		return nil
	}
	return database.Migrate(ctx)
}
