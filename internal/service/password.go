package service

import (
	"strings"
	"unicode"

	"github.com/msomdec/projecthub/internal/domain"
)

const (
	minPasswordLength = 8
	// bcrypt only reads the first 72 bytes.
	maxPasswordBytes = 72
)

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "passw0rd": {},
	"12345678": {}, "123456789": {}, "1234567890": {}, "qwerty123": {},
	"qwertyuiop": {}, "iloveyou": {}, "admin123": {}, "welcome1": {},
	"letmein1": {}, "aaaaaaa1": {}, "abc12345": {}, "football1": {},
	"sunshine1": {}, "princess1": {}, "monkey123": {}, "dragon123": {},
}

// validatePassword applies the password policy. Attributes are other values
// of the same account; the password must not contain or be contained by any
// of them.
func validatePassword(password string, attrs ...string) error {
	fail := func(reason string) error {
		return domain.ValidationErrors{{Field: "password", Reason: reason}}
	}

	if len([]rune(password)) < minPasswordLength {
		return fail("This password is too short. It must contain at least 8 characters.")
	}
	if len(password) > maxPasswordBytes {
		return fail("This password is too long. It must contain at most 72 bytes.")
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	switch {
	case !upper:
		return fail("The password must contain at least one uppercase letter.")
	case !lower:
		return fail("The password must contain at least one lowercase letter.")
	case !digit:
		return fail("The password must contain at least one digit.")
	case !special:
		return fail("The password must contain at least one special character.")
	}

	folded := strings.ToLower(password)
	if _, ok := commonPasswords[folded]; ok {
		return fail("This password is too common.")
	}
	for _, attr := range attrs {
		attr = strings.ToLower(attr)
		if len(attr) < 3 {
			continue
		}
		if strings.Contains(folded, attr) || strings.Contains(attr, folded) {
			return fail("The password is too similar to your personal information.")
		}
	}
	return nil
}
