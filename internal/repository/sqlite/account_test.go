package sqlite_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/msomdec/projecthub/internal/domain"
	"github.com/msomdec/projecthub/internal/repository/sqlite"
)

func newAccount(username, email string) *domain.Account {
	return &domain.Account{
		Username:     username,
		FirstName:    "First",
		LastName:     "Last",
		Email:        email,
		PasswordHash: "hash",
	}
}

func TestAccountRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)
	ctx := context.Background()

	a := newAccount("tester", "test@example.com")
	a.IsActive = true
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("expected account ID to be set after create")
	}
	if a.DateJoined.IsZero() {
		t.Fatal("expected DateJoined to be set")
	}

	found, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Username != "tester" || found.Email != "test@example.com" || !found.IsActive || found.IsStaff {
		t.Fatalf("unexpected account: %+v", found)
	}
	if found.PasswordHash != "hash" {
		t.Fatalf("expected stored hash, got %q", found.PasswordHash)
	}
}

func TestAccountRepository_Create_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, newAccount("dup", "one@example.com")); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	err := repo.Create(ctx, newAccount("dup", "two@example.com"))
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 account, got %d", n)
	}
}

func TestAccountRepository_Create_DuplicateEmailAllowed(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)
	ctx := context.Background()

	for _, username := range []string{"alpha", "bravo"} {
		if err := repo.Create(ctx, newAccount(username, "shared@example.com")); err != nil {
			t.Fatalf("Create %s: %v", username, err)
		}
	}

	found, err := repo.ListByEmail(ctx, "shared@example.com")
	if err != nil {
		t.Fatalf("ListByEmail: %v", err)
	}
	if len(found) != 2 || found[0].Username != "alpha" || found[1].Username != "bravo" {
		t.Fatalf("unexpected accounts: %+v", found)
	}
}

func TestAccountRepository_Create_Concurrent(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = repo.Create(ctx, newAccount("racer", "racer@example.com"))
		}()
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrDuplicateUsername):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != workers-1 {
		t.Fatalf("expected 1 success and %d duplicates, got %d and %d", workers-1, ok, dup)
	}
}

func TestAccountRepository_GetByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)
	ctx := context.Background()

	a := newAccount("byname", "byname@example.com")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.GetByUsername(ctx, "byname")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if found.ID != a.ID {
		t.Fatalf("expected id %d, got %d", a.ID, found.ID)
	}

	if _, err := repo.GetByUsername(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)

	_, err := repo.GetByID(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewAccountRepository(db)
	ctx := context.Background()

	a := newAccount("gone", "gone@example.com")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
