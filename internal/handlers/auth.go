package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/authgate/apiserver/internal/services"
	"github.com/go-chi/chi/v5"
)

// AuthHandler provides the registration, login, and refresh endpoints.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, authService *services.AuthService) {
	handler := NewAuthHandler(authService)

	r.With(ValidateRegister).Post("/register", handler.Register)
	r.With(ValidateLogin).Post("/login", handler.Login)
	r.Post("/refresh", handler.Refresh)
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register creates a new account and returns the sanitized user with both
// tokens. Any failure responds 400.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authService.Register(r.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, services.ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, "Username already taken")
		default:
			log.Printf("register failed: %v", err)
			writeError(w, http.StatusBadRequest, "Registration failed")
		}
		return
	}

	writeSuccess(w, http.StatusCreated, "Registration successful", result)
}

// Login authenticates by email or username and returns both tokens.
// Any failure responds 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, services.ErrAccountDeactivated):
			writeError(w, http.StatusUnauthorized, "Account is deactivated")
		default:
			log.Printf("login failed: %v", err)
			writeError(w, http.StatusUnauthorized, "Login failed")
		}
		return
	}

	writeSuccess(w, http.StatusOK, "Login successful", result)
}

// Refresh exchanges a refresh token for a new access token. A missing
// token is 400; every other failure is a uniform 401.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "Refresh token required")
		return
	}

	result, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	writeSuccess(w, http.StatusOK, "Token refreshed", result)
}
