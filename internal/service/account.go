package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/msomdec/projecthub/internal/domain"
	"github.com/msomdec/projecthub/internal/email"
	"github.com/msomdec/projecthub/internal/logging"
	"golang.org/x/crypto/bcrypt"
)

// AccountFields are the profile attributes supplied alongside the credentials.
type AccountFields struct {
	FirstName string
	LastName  string
	IsActive  bool
}

// SuperuserFields are the attributes for CreateSuperuser. A nil flag means
// "use the default", which is true for all three.
type SuperuserFields struct {
	FirstName   string
	LastName    string
	IsStaff     *bool
	IsSuperuser *bool
	IsActive    *bool
}

// AccountService creates, looks up and authenticates accounts. It holds no
// mutable state and is safe for concurrent use; username uniqueness is
// arbitrated by the repository.
type AccountService struct {
	accounts   domain.AccountRepository
	bcryptCost int
	validate   *validator.Validate
	// dummyHash is compared against for unknown usernames so that
	// Authenticate takes as long as for a real account.
	dummyHash  func() []byte
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts domain.AccountRepository, bcryptCost int) *AccountService {
	return &AccountService{
		accounts:   accounts,
		bcryptCost: bcryptCost,
		validate:   newValidator(),
		dummyHash:  sync.OnceValue(func() []byte {
			hash, _ := bcrypt.GenerateFromPassword([]byte("projecthub-unknown-account"), bcryptCost)
			return hash
		}),
	}
}

// CreateAccount validates the input, normalizes the email, hashes the
// password and stores a new account. Nothing is stored when any step fails.
func (s *AccountService) CreateAccount(ctx context.Context, username, emailAddr, password string, fields AccountFields) (*domain.Account, error) {
	return s.create(ctx, &domain.Account{
		Username:  username,
		Email:     emailAddr,
		FirstName: fields.FirstName,
		LastName:  fields.LastName,
		IsActive:  fields.IsActive,
	}, password)
}

// CreateSuperuser creates an active staff superuser. Passing any of the
// privilege flags as false is an operator error and fails with
// domain.ErrInvalidPrivilegeEscalation.
func (s *AccountService) CreateSuperuser(ctx context.Context, username, emailAddr, password string, fields SuperuserFields) (*domain.Account, error) {
	for _, flag := range []*bool{fields.IsStaff, fields.IsSuperuser, fields.IsActive} {
		if flag != nil && !*flag {
			return nil, domain.ErrInvalidPrivilegeEscalation
		}
	}

	return s.create(ctx, &domain.Account{
		Username:    username,
		Email:       emailAddr,
		FirstName:   fields.FirstName,
		LastName:    fields.LastName,
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
	}, password)
}

func (s *AccountService) create(ctx context.Context, acct *domain.Account, password string) (*domain.Account, error) {
	acct.FirstName = strings.TrimSpace(acct.FirstName)
	acct.LastName = strings.TrimSpace(acct.LastName)
	if acct.FirstName == "" {
		return nil, domain.ErrMissingFirstName
	}
	if acct.LastName == "" {
		return nil, domain.ErrMissingLastName
	}

	normalized, err := email.Normalize(acct.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidEmail, err)
	}
	if err := s.validate.Var(normalized, "max=254,email"); err != nil {
		return nil, domain.ErrInvalidEmail
	}
	acct.Email = normalized

	err = validateStruct(s.validate, accountInput{
		Username:  acct.Username,
		FirstName: acct.FirstName,
		LastName:  acct.LastName,
	})
	if err != nil {
		return nil, err
	}

	if err := validatePassword(password, acct.Username, acct.Email, acct.FirstName, acct.LastName); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	acct.PasswordHash = string(hash)

	if err := s.accounts.Create(ctx, acct); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	logging.FromContext(ctx).Info("account created",
		"account_id", acct.ID,
		"username", acct.Username,
		"email_domain", email.Domain(acct.Email),
		"is_superuser", acct.IsSuperuser,
	)
	return acct, nil
}

// Authenticate verifies a username and password. Unknown users and wrong
// passwords both yield domain.ErrUnauthorized.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	acct, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(password))
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !acct.IsActive {
		return nil, domain.ErrInactiveAccount
	}
	return acct, nil
}

// GetByID retrieves an account by its ID.
func (s *AccountService) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

// FindByEmail returns every account whose stored address matches the
// normalized form of addr.
func (s *AccountService) FindByEmail(ctx context.Context, addr string) ([]domain.Account, error) {
	normalized, err := email.Normalize(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidEmail, err)
	}
	return s.accounts.ListByEmail(ctx, normalized)
}

// DeleteAccount removes an account. It fails with domain.ErrAccountProtected
// while projects still reference the account.
func (s *AccountService) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
