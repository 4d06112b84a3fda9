package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/msomdec/projecthub/internal/domain"
)

// missingAccounts is an AccountRepository that never finds anyone.
type missingAccounts struct {
	domain.AccountRepository
	lookups int
}

func (m *missingAccounts) GetByUsername(context.Context, string) (*domain.Account, error) {
	m.lookups++
	return nil, domain.ErrNotFound
}

func TestAuthenticate_UnknownUserComparesDummyHash(t *testing.T) {
	repo := &missingAccounts{}
	svc := NewAccountService(repo, 5)

	_, err := svc.Authenticate(context.Background(), "ghost", "Testpass123#")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if repo.lookups != 1 {
		t.Fatalf("expected 1 lookup, got %d", repo.lookups)
	}

	// The dummy hash must cost as much as a real one.
	cost, err := bcrypt.Cost(svc.dummyHash())
	if err != nil {
		t.Fatalf("dummy hash is not a bcrypt hash: %v", err)
	}
	if cost != 5 {
		t.Fatalf("expected dummy hash cost 5, got %d", cost)
	}
	if err := bcrypt.CompareHashAndPassword(svc.dummyHash(), []byte("Testpass123#")); err == nil {
		t.Fatal("dummy hash must not match any real password")
	}
}
