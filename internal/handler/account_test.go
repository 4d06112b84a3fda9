package handler_test

import (
	"bytes"
	"encoding/json"
	"maps"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/msomdec/projecthub/internal/handler"
)

func registerBody(overrides map[string]string) map[string]string {
	body := map[string]string{
		"username":         "tester",
		"email":            "  Test@GMail.com ",
		"password":         "Testpass123#",
		"password_confirm": "Testpass123#",
		"first_name":       "testuser21",
		"last_name":        "user",
	}
	maps.Copy(body, overrides)
	return body
}

func postRegister(t *testing.T, h *handler.AccountHandler, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/accounts/register", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.HandleRegister(w, req)
	return w
}

func decodeFields(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var fields map[string]string
	if err := json.NewDecoder(w.Body).Decode(&fields); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return fields
}

func TestHandleRegister_Success(t *testing.T) {
	h := handler.NewAccountHandler(newTestAccountService(t), false)

	w := postRegister(t, h, registerBody(nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var got handler.AccountDTO
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Username != "tester" || got.Email != "test@gmail.com" {
		t.Fatalf("unexpected account: %+v", got)
	}
	if got.FirstName != "testuser21" || got.LastName != "user" {
		t.Fatalf("unexpected names: %+v", got)
	}
	if got.IsActive {
		t.Fatal("expected account to be inactive")
	}
}

func TestHandleRegister_AutoActivate(t *testing.T) {
	h := handler.NewAccountHandler(newTestAccountService(t), true)

	w := postRegister(t, h, registerBody(nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var got handler.AccountDTO
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !got.IsActive {
		t.Fatal("expected account to be active")
	}
}

func TestHandleRegister_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		wantField string
		wantMsg   string
	}{
		{"missing first name", map[string]string{"first_name": ""}, "first_name", "First name must be set"},
		{"missing last name", map[string]string{"last_name": ""}, "last_name", "Last name must be set"},
		{"invalid email", map[string]string{"email": "test_gmail.com"}, "email", "Enter a valid email address."},
		{"password mismatch", map[string]string{"password_confirm": "Other123#x"}, "password_confirm", ""},
		{"short username", map[string]string{"username": "ab"}, "username", ""},
		{"short first name", map[string]string{"first_name": "ab"}, "first_name", ""},
		{"weak password", map[string]string{"password": "testpass1", "password_confirm": "testpass1"}, "password", ""},
		{"missing username", map[string]string{"username": ""}, "username", "This field is required."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := handler.NewAccountHandler(newTestAccountService(t), false)

			w := postRegister(t, h, registerBody(tc.overrides))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			fields := decodeFields(t, w)
			msg, ok := fields[tc.wantField]
			if !ok {
				t.Fatalf("expected error for %q, got %v", tc.wantField, fields)
			}
			if tc.wantMsg != "" && msg != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, msg)
			}
		})
	}
}

func TestHandleRegister_DuplicateUsername(t *testing.T) {
	h := handler.NewAccountHandler(newTestAccountService(t), false)

	if w := postRegister(t, h, registerBody(nil)); w.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", w.Code)
	}

	w := postRegister(t, h, registerBody(map[string]string{"email": "other@gmail.com"}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	fields := decodeFields(t, w)
	if fields["username"] != "A user with that username already exists." {
		t.Fatalf("unexpected body: %v", fields)
	}
}

func TestHandleRegister_InvalidBody(t *testing.T) {
	h := handler.NewAccountHandler(newTestAccountService(t), false)

	for name, body := range map[string]string{
		"malformed":     "{not json",
		"unknown field": `{"username":"tester","is_superuser":true}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/accounts/register", strings.NewReader(body))
			w := httptest.NewRecorder()
			h.HandleRegister(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestRegisterRoute(t *testing.T) {
	srv := newTestServer(t, 10)

	buf, _ := json.Marshal(registerBody(nil))
	resp, err := http.Post(srv.URL+"/api/accounts/register", "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST /api/accounts/register: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/accounts/register")
	if err != nil {
		t.Fatalf("GET /api/accounts/register: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}
