// Package postgres is the PostgreSQL implementation of domain.Database.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/msomdec/projecthub/internal/domain"
	"github.com/msomdec/projecthub/internal/repository/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// Postgres SQLSTATE codes.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type PoolConfig struct {
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetimeS int
}

// DB is a Postgres-backed domain.Database.
type DB struct {
	pool     *sql.DB
	accounts *AccountRepository
	projects *ProjectRepository
}

var _ domain.Database = (*DB)(nil)

// New opens a connection pool and verifies it with a ping.
func New(ctx context.Context, databaseURL string, pool PoolConfig) (*DB, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open: %w", err)
	}

	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeS) * time.Second)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &DB{
		pool:     sqlDB,
		accounts: NewAccountRepository(sqlDB),
		projects: NewProjectRepository(sqlDB),
	}, nil
}

// Migrate applies the embedded goose migrations.
func (d *DB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("postgres.Migrate: %w", err)
	}
	if err := goose.UpContext(ctx, d.pool, "."); err != nil {
		return fmt.Errorf("postgres.Migrate: %w", err)
	}
	return nil
}

func (d *DB) Accounts() domain.AccountRepository { return d.accounts }

func (d *DB) Projects() domain.ProjectRepository { return d.projects }

func (d *DB) Close() error { return d.pool.Close() }

// Conn exposes the pool for tests and tooling.
func (d *DB) Conn() *sql.DB { return d.pool }

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

type scanner interface {
	Scan(dest ...any) error
}
