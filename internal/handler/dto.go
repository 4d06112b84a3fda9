package handler

import (
	"time"

	"github.com/msomdec/projecthub/internal/domain"
)

// RegisterRequest is the body of POST /api/accounts/register.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// AccountDTO is the public JSON representation of an account. It never
// carries the password hash.
type AccountDTO struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsActive   bool   `json:"is_active"`
	DateJoined string `json:"date_joined,omitempty"`
}

func toAccountDTO(a *domain.Account) AccountDTO {
	dto := AccountDTO{
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		IsActive:  a.IsActive,
	}
	if !a.DateJoined.IsZero() {
		dto.DateJoined = a.DateJoined.Format(time.RFC3339)
	}
	return dto
}
