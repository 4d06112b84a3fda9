package migrations_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/msomdec/projecthub/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Each new connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestFiles_Ordered(t *testing.T) {
	files, err := migrations.Files()
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	want := []string{"0001_create_accounts.sql", "0002_create_projects.sql"}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, files)
		}
	}
}

func TestRun(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("Run: %v", err)
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO accounts (username, password_hash) VALUES (?, ?)`, "tester", "hash")
	if err != nil {
		t.Fatalf("insert into accounts: %v", err)
	}

	pending, err := migrations.Pending(ctx, db)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending migrations, got %v", pending)
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 migration records, got %d", count)
	}
}

func TestSchema_SuperuserCheck(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("Run: %v", err)
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO accounts (username, password_hash, is_superuser, is_staff, is_active)
		 VALUES ('root', 'hash', 1, 0, 1)`)
	if err == nil {
		t.Fatal("expected CHECK constraint to reject a superuser without is_staff")
	}
}
