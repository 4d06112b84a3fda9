package domain

import "context"

// Database is a storage backend. SQLite and Postgres each own their
// migration files and strategy; callers only see the repositories.
type Database interface {
	Migrate(ctx context.Context) error
	Accounts() AccountRepository
	Projects() ProjectRepository
	Close() error
}
