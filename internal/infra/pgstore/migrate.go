package pgstore

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"sort"

	"slotbook/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate applies every *.sql file in files that is not yet recorded in schema_migrations,
// in lexical order, one transaction per file. It returns the versions it applied.
func Migrate(ctx context.Context, pool *pgxpool.Pool, files fs.FS) ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, errs.Wrap(err, "failed to list migrations")
	}
	sort.Strings(names)

	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return nil, errs.Wrap(err, "failed to create schema_migrations")
	}

	var applied []string
	for _, name := range names {
		ok, err := applyMigration(ctx, pool, files, name)
		if err != nil {
			return applied, err
		}
		if ok {
			slog.Info("migration applied", "version", name)
			applied = append(applied, name)
		}
	}
	return applied, nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, files fs.FS, name string) (bool, error) {
	body, err := fs.ReadFile(files, name)
	if err != nil {
		return false, errs.Wrapf(err, "failed to read migration %s", name)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback migration", "version", name, "error", rbErr.Error())
		}
	}()

	// Serializes concurrent migrators.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('slotbook.migrate'))`); err != nil {
		return false, errs.Wrap(err, "failed to lock migrations")
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, name).Scan(&exists); err != nil {
		return false, errs.Wrapf(err, "failed to check migration %s", name)
	}
	if exists {
		return false, nil
	}

	// No arguments, so pgx sends the file over the simple protocol and multiple statements are allowed.
	if _, err := tx.Exec(ctx, string(body)); err != nil {
		return false, errs.Wrapf(err, "migration %s failed", name)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
		return false, errs.Wrapf(err, "failed to record migration %s", name)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, errs.Mark(err, errTransactionCommit)
	}
	return true, nil
}
