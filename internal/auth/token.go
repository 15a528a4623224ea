package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenConfig carries the signing material for both token kinds. Access and
// refresh tokens use independent secrets and expirations.
type TokenConfig struct {
	AccessSecret  string
	AccessExpire  time.Duration
	RefreshSecret string
	RefreshExpire time.Duration
}

// Claims is the payload embedded in both access and refresh tokens.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies access and refresh tokens.
type TokenManager struct {
	accessSecret  []byte
	accessExpire  time.Duration
	refreshSecret []byte
	refreshExpire time.Duration
}

// NewTokenManager validates the configuration and returns a manager.
// A missing secret or non-positive expiration is a configuration error.
func NewTokenManager(cfg TokenConfig) (*TokenManager, error) {
	if cfg.AccessSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.RefreshSecret == "" {
		return nil, errors.New("JWT_REFRESH_SECRET is required")
	}
	if cfg.AccessExpire <= 0 || cfg.RefreshExpire <= 0 {
		return nil, errors.New("token expiration must be positive")
	}
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		accessExpire:  cfg.AccessExpire,
		refreshSecret: []byte(cfg.RefreshSecret),
		refreshExpire: cfg.RefreshExpire,
	}, nil
}

// SignAccess issues a short-lived access token for the user.
func (m *TokenManager) SignAccess(userID uuid.UUID, email string) (string, error) {
	return sign(userID, email, m.accessSecret, m.accessExpire)
}

// SignRefresh issues a long-lived refresh token for the user.
func (m *TokenManager) SignRefresh(userID uuid.UUID, email string) (string, error) {
	return sign(userID, email, m.refreshSecret, m.refreshExpire)
}

// VerifyAccess parses an access token and returns its claims. Expired and
// malformed tokens fail with the same error class.
func (m *TokenManager) VerifyAccess(token string) (*Claims, error) {
	return verify(token, m.accessSecret)
}

// VerifyRefresh parses a refresh token and returns its claims.
func (m *TokenManager) VerifyRefresh(token string) (*Claims, error) {
	return verify(token, m.refreshSecret)
}

func sign(userID uuid.UUID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("missing user id")
	}
	return claims, nil
}
