package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound                   = errors.New("not found")
	ErrInvalidInput               = errors.New("invalid input")
	ErrUnauthorized               = errors.New("unauthorized")
	ErrMissingFirstName           = errors.New("first name must be set")
	ErrMissingLastName            = errors.New("last name must be set")
	ErrInvalidEmail               = errors.New("invalid email address")
	ErrDuplicateUsername          = errors.New("username already exists")
	ErrInvalidPrivilegeEscalation = errors.New("superuser must have is_staff, is_superuser and is_active set")
	ErrInactiveAccount            = errors.New("account is inactive")
	ErrAccountProtected           = errors.New("account is referenced by projects")
)

// ValidationError reports a constraint violation on a single input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// ValidationErrors collects every field that failed validation in one pass.
type ValidationErrors []*ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (ve ValidationErrors) Unwrap() []error {
	errs := make([]error, len(ve))
	for i, e := range ve {
		errs[i] = e
	}
	return errs
}

// Fields returns the offending field names mapped to their reasons.
func (ve ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(ve))
	for _, e := range ve {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Reason
		}
	}
	return out
}
