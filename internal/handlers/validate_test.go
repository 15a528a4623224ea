package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func runValidation(t *testing.T, mw func(http.Handler) http.Handler, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	passed := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		passed = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	return rec, passed
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp
}

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "username too short",
			body:    `{"username":"ab","email":"a@b.co","password":"secret1"}`,
			wantMsg: "Username must be between 3 and 50 characters",
		},
		{
			name:    "username too long",
			body:    `{"username":"` + strings.Repeat("a", 51) + `","email":"a@b.co","password":"secret1"}`,
			wantMsg: "Username must be between 3 and 50 characters",
		},
		{
			name:    "username missing",
			body:    `{"email":"a@b.co","password":"secret1"}`,
			wantMsg: "Username must be between 3 and 50 characters",
		},
		{
			name:    "username bad characters",
			body:    `{"username":"bad-name!","email":"a@b.co","password":"secret1"}`,
			wantMsg: "Username can only contain letters, numbers, and underscores",
		},
		{
			name:    "email missing",
			body:    `{"username":"alice","password":"secret1"}`,
			wantMsg: "Invalid email address",
		},
		{
			name:    "email malformed",
			body:    `{"username":"alice","email":"not-an-email","password":"secret1"}`,
			wantMsg: "Invalid email address",
		},
		{
			name:    "email missing tld",
			body:    `{"username":"alice","email":"a@b","password":"secret1"}`,
			wantMsg: "Invalid email address",
		},
		{
			name:    "password too short",
			body:    `{"username":"alice","email":"a@b.co","password":"12345"}`,
			wantMsg: "Password must be at least 6 characters long",
		},
		{
			name:    "full name too long",
			body:    `{"username":"alice","email":"a@b.co","password":"secret1","fullName":"` + strings.Repeat("n", 101) + `"}`,
			wantMsg: "Full name is too long",
		},
		{
			name:    "not json",
			body:    `{{`,
			wantMsg: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, passed := runValidation(t, ValidateRegister, tt.body)
			if passed {
				t.Fatal("expected request to be rejected before the handler")
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			resp := decodeEnvelope(t, rec)
			if resp.Success {
				t.Fatal("expected success=false")
			}
			if resp.Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", resp.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidateRegisterBoundaries(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "minimum lengths",
			body: `{"username":"ab_","email":"a@b.co","password":"123456"}`,
		},
		{
			name: "maximum lengths",
			body: `{"username":"` + strings.Repeat("a", 50) + `","email":"a@b.co","password":"123456","fullName":"` + strings.Repeat("n", 100) + `"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, passed := runValidation(t, ValidateRegister, tt.body)
			if !passed {
				t.Fatalf("expected request to pass validation, got %d %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	cases := []string{
		`{"login":"","password":"secret1"}`,
		`{"login":"alice","password":""}`,
		`{}`,
	}
	for _, body := range cases {
		rec, passed := runValidation(t, ValidateLogin, body)
		if passed {
			t.Fatalf("expected rejection for %s", body)
		}
		resp := decodeEnvelope(t, rec)
		if resp.Message != "Login and password are required" {
			t.Fatalf("message = %q", resp.Message)
		}
	}

	if _, passed := runValidation(t, ValidateLogin, `{"login":"alice","password":"x"}`); !passed {
		t.Fatal("expected valid login payload to pass")
	}
}

func TestValidationRestoresBody(t *testing.T) {
	var seen RegisterRequest
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&seen); err != nil {
			t.Fatalf("handler could not re-read body: %v", err)
		}
	})

	body := `{"username":"alice","email":"a@b.co","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	ValidateRegister(next).ServeHTTP(httptest.NewRecorder(), req)

	if seen.Username != "alice" || seen.Email != "a@b.co" {
		t.Fatalf("handler saw %+v", seen)
	}
}
