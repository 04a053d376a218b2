// Package postgres implements the repositories on PostgreSQL through a pgx
// connection pool. The schema lives in the top-level migrations directory.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"biceppump/backend/internal/repository"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// New creates a connection pool and checks that the database answers.
func New(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return pool, nil
}

// NewStore connects to dsn and returns the repositories backed by the pool.
func NewStore(ctx context.Context, dsn string) (*repository.Store, error) {
	pool, err := New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return repository.NewStore(
		NewUserRepository(pool),
		NewWorkoutRepository(pool),
		NewExerciseRepository(pool),
		func(context.Context) error {
			pool.Close()
			return nil
		},
	), nil
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dsn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
