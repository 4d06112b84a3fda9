package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/msomdec/projecthub/internal/domain"
	"github.com/msomdec/projecthub/internal/repository/sqlite"
)

// closeCounter wraps a Database and counts Close calls.
type closeCounter struct {
	domain.Database
	closes int
}

func (c *closeCounter) Close() error {
	c.closes++
	return c.Database.Close()
}

func TestMigrateOrClose_ClosesOnFailure(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "conflict.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	// An untracked table with the same name makes the first migration fail.
	if _, err := db.SqlDB.Exec(`CREATE TABLE accounts (id INTEGER PRIMARY KEY)`); err != nil {
		t.Fatalf("create conflicting table: %v", err)
	}

	wrapped := &closeCounter{Database: db}
	if err := migrateOrClose(context.Background(), wrapped); err == nil {
		t.Fatal("expected migration error")
	}
	if wrapped.closes != 1 {
		t.Fatalf("expected database to be closed once, got %d", wrapped.closes)
	}
	if err := db.SqlDB.Ping(); err == nil {
		t.Fatal("expected ping on a closed database to fail")
	}
}

func TestMigrateOrClose_KeepsOpenOnSuccess(t *testing.T) {
	db, err := sqlite.New(filepath.Join(t.TempDir(), "ok.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	wrapped := &closeCounter{Database: db}
	t.Cleanup(func() { db.Close() })

	if err := migrateOrClose(context.Background(), wrapped); err != nil {
		t.Fatalf("migrateOrClose: %v", err)
	}
	if wrapped.closes != 0 {
		t.Fatalf("expected database to stay open, got %d closes", wrapped.closes)
	}
	if _, err := db.Accounts().Count(context.Background()); err != nil {
		t.Fatalf("Count: %v", err)
	}
}
