package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/projecthub/internal/domain"
)

const accountColumns = `id, username, first_name, last_name, email, password_hash,
	is_active, is_staff, is_superuser, date_joined`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO accounts (username, first_name, last_name, email, password_hash,
		                       is_active, is_staff, is_superuser)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, date_joined`,
		a.Username, a.FirstName, a.LastName, a.Email, a.PasswordHash,
		a.IsActive, a.IsStaff, a.IsSuperuser,
	).Scan(&a.ID, &a.DateJoined)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByUsername: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByUsername: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) ListByEmail(ctx context.Context, email string) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1 ORDER BY id`, email)
	if err != nil {
		return nil, fmt.Errorf("ListByEmail: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByEmail: scan: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrAccountProtected
		}
		return fmt.Errorf("Delete: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanAccount(s scanner) (*domain.Account, error) {
	var a domain.Account
	err := s.Scan(
		&a.ID, &a.Username, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash,
		&a.IsActive, &a.IsStaff, &a.IsSuperuser, &a.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
