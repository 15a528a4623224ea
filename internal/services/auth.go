package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/authgate/apiserver/internal/auth"
	"github.com/authgate/apiserver/internal/store"
	"github.com/authgate/apiserver/types"
	"github.com/google/uuid"
)

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDeactivated  = errors.New("account is deactivated")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user types.User) (types.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (types.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (types.User, error)
	GetByEmailOrUsername(ctx context.Context, email, username string) (types.User, error)
}

// AuthService orchestrates registration, login, and token refresh.
type AuthService struct {
	repo   UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(repo UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// AuthResult is returned by Register and Login: the sanitized user plus
// both token kinds.
type AuthResult struct {
	User         types.Profile `json:"user"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}

// RefreshResult carries the newly minted access token. The refresh token
// is not rotated.
type RefreshResult struct {
	AccessToken string `json:"accessToken"`
}

// Register creates a new account. The email conflict is reported before
// the username conflict when both apply. A registration race lost at the
// database unique constraint surfaces as the same conflict error.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := s.repo.GetByEmailOrUsername(ctx, input.Email, input.Username)
	if err == nil {
		if existing.Email == input.Email {
			return nil, ErrEmailTaken
		}
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := types.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		IsActive:     true,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, store.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		default:
			return nil, fmt.Errorf("creating user: %w", err)
		}
	}

	return s.issueTokens(created)
}

// Login authenticates by email or username plus password. Unknown
// identifiers and wrong passwords fail identically so that callers
// cannot probe for registered accounts.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	user, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	return s.issueTokens(user)
}

// Refresh verifies a refresh token and mints a new access token. A bad
// signature, an expired token, a deleted user, and a deactivated user
// all collapse into ErrInvalidRefreshToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil || !user.IsActive {
		return nil, ErrInvalidRefreshToken
	}

	accessToken, err := s.tokens.SignAccess(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	return &RefreshResult{AccessToken: accessToken}, nil
}

func (s *AuthService) issueTokens(user types.User) (*AuthResult, error) {
	accessToken, err := s.tokens.SignAccess(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	refreshToken, err := s.tokens.SignRefresh(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}
	return &AuthResult{
		User:         user.Profile(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
