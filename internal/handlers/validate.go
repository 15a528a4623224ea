package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
	maxFullNameLen = 100
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateRegister rejects malformed registration payloads before they
// reach the service, short-circuiting on the first violation. The request
// body is buffered and restored for the handler.
func ValidateRegister(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, req, ok := bufferBody[RegisterRequest](w, r)
		if !ok {
			return
		}

		if len(req.Username) < minUsernameLen || len(req.Username) > maxUsernameLen {
			writeError(w, http.StatusBadRequest, "Username must be between 3 and 50 characters")
			return
		}
		if !usernameRegex.MatchString(req.Username) {
			writeError(w, http.StatusBadRequest, "Username can only contain letters, numbers, and underscores")
			return
		}
		if !emailRegex.MatchString(req.Email) {
			writeError(w, http.StatusBadRequest, "Invalid email address")
			return
		}
		if len(req.Password) < minPasswordLen {
			writeError(w, http.StatusBadRequest, "Password must be at least 6 characters long")
			return
		}
		if len(req.FullName) > maxFullNameLen {
			writeError(w, http.StatusBadRequest, "Full name is too long")
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

// ValidateLogin requires a non-empty identifier and password.
func ValidateLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, req, ok := bufferBody[LoginRequest](w, r)
		if !ok {
			return
		}

		if req.Login == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Login and password are required")
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func bufferBody[T any](w http.ResponseWriter, r *http.Request) ([]byte, T, bool) {
	var req T
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, req, false
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, req, false
	}
	return body, req, true
}
