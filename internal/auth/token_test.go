package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testConfig() TokenConfig {
	return TokenConfig{
		AccessSecret:  "access-secret",
		AccessExpire:  15 * time.Minute,
		RefreshSecret: "refresh-secret",
		RefreshExpire: 7 * 24 * time.Hour,
	}
}

func TestNewTokenManagerValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TokenConfig)
	}{
		{"missing access secret", func(c *TokenConfig) { c.AccessSecret = "" }},
		{"missing refresh secret", func(c *TokenConfig) { c.RefreshSecret = "" }},
		{"zero access ttl", func(c *TokenConfig) { c.AccessExpire = 0 }},
		{"negative refresh ttl", func(c *TokenConfig) { c.RefreshExpire = -time.Minute }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			_, err := NewTokenManager(cfg)
			require.Error(t, err)
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	mgr, err := NewTokenManager(testConfig())
	require.NoError(t, err)

	userID := uuid.New()

	access, err := mgr.SignAccess(userID, "alice@example.com")
	require.NoError(t, err)
	refresh, err := mgr.SignRefresh(userID, "alice@example.com")
	require.NoError(t, err)

	claims, err := mgr.VerifyAccess(access)
	require.NoError(t, err)
	require.Equal(t, userID.String(), claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)

	claims, err = mgr.VerifyRefresh(refresh)
	require.NoError(t, err)
	require.Equal(t, userID.String(), claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
}

func TestTokenKindsAreIndependent(t *testing.T) {
	mgr, err := NewTokenManager(testConfig())
	require.NoError(t, err)

	access, err := mgr.SignAccess(uuid.New(), "bob@example.com")
	require.NoError(t, err)
	refresh, err := mgr.SignRefresh(uuid.New(), "bob@example.com")
	require.NoError(t, err)

	// Each kind verifies only against its own secret.
	_, err = mgr.VerifyRefresh(access)
	require.Error(t, err)
	_, err = mgr.VerifyAccess(refresh)
	require.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	cfg := testConfig()
	mgr, err := NewTokenManager(cfg)
	require.NoError(t, err)

	// Sign with an already-elapsed expiration using the same secrets.
	expired, err := sign(uuid.New(), "carol@example.com", []byte(cfg.AccessSecret), -time.Minute)
	require.NoError(t, err)

	_, err = mgr.VerifyAccess(expired)
	require.Error(t, err)
}

func TestVerifyRejectsTampered(t *testing.T) {
	mgr, err := NewTokenManager(testConfig())
	require.NoError(t, err)

	token, err := mgr.SignAccess(uuid.New(), "dave@example.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	_, err = mgr.VerifyAccess(tampered)
	require.Error(t, err)

	_, err = mgr.VerifyAccess("not.a.jwt")
	require.Error(t, err)
	_, err = mgr.VerifyAccess("")
	require.Error(t, err)
}
