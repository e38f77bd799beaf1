package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/config"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_DemoLogin(t *testing.T) {
	cfg := testConfig()
	tokens := NewTokenService(cfg)
	svc := NewAuthService(setupTestDB(t), cfg, tokens)

	resp, err := svc.Login(&dto.LoginRequest{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, "demo-user-id", resp.User.ID)

	id, ok := tokens.Verify(resp.Token)
	require.True(t, ok)
	assert.Equal(t, resp.User, id)
}

func TestAuthService_MissingCredentials(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(setupTestDB(t), cfg, NewTokenService(cfg))

	_, err := svc.Login(&dto.LoginRequest{Email: "a@b.com"})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = svc.Login(&dto.LoginRequest{Password: "x"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestAuthService_PasswordMode(t *testing.T) {
	cfg := testConfig()
	cfg.AuthMode = config.AuthModePassword
	tokens := NewTokenService(cfg)
	svc := NewAuthService(setupTestDB(t), cfg, tokens)

	user, err := svc.CreateUser(" Agent@Example.com ", "Agent", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "agent@example.com", user.Email)

	_, err = svc.CreateUser("agent@example.com", "Again", "correct-horse")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Login(&dto.LoginRequest{Email: "agent@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := svc.Login(&dto.LoginRequest{Email: "AGENT@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), resp.User.ID)
	assert.Equal(t, "Agent", resp.User.Name)
}

func TestAuthService_CreateUserRequiresPassword(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(setupTestDB(t), cfg, NewTokenService(cfg))

	_, err := svc.CreateUser("agent@example.com", "Agent", "short")
	assert.Error(t, err)
}
