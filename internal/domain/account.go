package domain

import (
	"context"
	"strings"
	"time"
)

// Account represents a registered user of the application.
type Account struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	Email        string // normalized form
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	DateJoined   time.Time
}

// String returns the account holder's full name.
func (a *Account) String() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// AccountRepository defines persistence operations for accounts.
//
// Create must enforce username uniqueness atomically (a unique index) and
// report a violation as ErrDuplicateUsername. Email is not unique.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	ListByEmail(ctx context.Context, email string) ([]Account, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}
