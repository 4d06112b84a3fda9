package handler

import (
	"errors"
	"net/http"

	"github.com/msomdec/projecthub/internal/domain"
	"github.com/msomdec/projecthub/internal/logging"
	"github.com/msomdec/projecthub/internal/service"
)

// Field messages for the registration endpoint.
const (
	msgMissingFirstName  = "First name must be set"
	msgMissingLastName   = "Last name must be set"
	msgInvalidEmail      = "Enter a valid email address."
	msgDuplicateUsername = "A user with that username already exists."
	msgPasswordMismatch  = "The two password fields didn't match."
	msgRequired          = "This field is required."
)

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accounts     *service.AccountService
	autoActivate bool
}

// NewAccountHandler creates a new AccountHandler. When autoActivate is set,
// registered accounts are active immediately.
func NewAccountHandler(accounts *service.AccountService, autoActivate bool) *AccountHandler {
	return &AccountHandler{accounts: accounts, autoActivate: autoActivate}
}

// HandleRegister processes a JSON registration request.
// POST /api/accounts/register
// Request:  {"username":"...","email":"...","password":"...","password_confirm":"...","first_name":"...","last_name":"..."}
// Response: 201 {"username":"...","email":"...","first_name":"...","last_name":"...",...}
//
//	400 {"<field>":"<message>"}
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if fields := requiredFields(req); len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}
	if req.Password != req.PasswordConfirm {
		writeFieldErrors(w, map[string]string{"password_confirm": msgPasswordMismatch})
		return
	}

	acct, err := h.accounts.CreateAccount(r.Context(), req.Username, req.Email, req.Password, service.AccountFields{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  h.autoActivate,
	})
	if err != nil {
		if fields, ok := registrationErrorFields(err); ok {
			writeFieldErrors(w, fields)
			return
		}
		logging.FromContext(r.Context()).Error("register account", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, toAccountDTO(acct))
}

// requiredFields reports credentials missing from req. Names are checked by
// the account service so their messages stay consistent with other callers.
func requiredFields(req RegisterRequest) map[string]string {
	fields := make(map[string]string)
	if req.Username == "" {
		fields["username"] = msgRequired
	}
	if req.Email == "" {
		fields["email"] = msgRequired
	}
	if req.Password == "" {
		fields["password"] = msgRequired
	}
	if req.PasswordConfirm == "" {
		fields["password_confirm"] = msgRequired
	}
	return fields
}

// registrationErrorFields maps an account creation error onto the field it
// concerns. It returns false for errors that are not the client's fault.
func registrationErrorFields(err error) (map[string]string, bool) {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Fields(), true
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return map[string]string{verr.Field: verr.Reason}, true
	}

	switch {
	case errors.Is(err, domain.ErrMissingFirstName):
		return map[string]string{"first_name": msgMissingFirstName}, true
	case errors.Is(err, domain.ErrMissingLastName):
		return map[string]string{"last_name": msgMissingLastName}, true
	case errors.Is(err, domain.ErrInvalidEmail):
		return map[string]string{"email": msgInvalidEmail}, true
	case errors.Is(err, domain.ErrDuplicateUsername):
		return map[string]string{"username": msgDuplicateUsername}, true
	}
	return nil, false
}
