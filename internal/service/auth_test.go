package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopapi/internal/tokens"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	rp := newTestRepo(t)
	return &AuthService{
		Repo:      rp,
		Users:     &UserService{Repo: rp},
		JWTSecret: []byte("test-jwt-secret"),
	}
}

func TestAuthService_Register_SuccessAndConflict(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	summary, err := svc.Register(ctx, "Ali", "Ali@Example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, "ali@example.com", summary.Email)
	assert.Equal(t, "Ali", summary.Name)
	assert.NotZero(t, summary.ID)

	_, err = svc.Register(ctx, "Ali", "ALI@example.com ", "Secret123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login_IssuesToken(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	summary, err := svc.Register(ctx, "Ali", "ali@example.com", "Secret123")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "ali@example.com", "Secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.AccessClaimsFromToken(token, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(summary.ID), claims.Subject)
	assert.Equal(t, "ali@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestAuthService_Login_NormalizesEmail(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ali", "ali@example.com", "Secret123")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "  ALI@Example.COM ", "Secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

// Unknown email and wrong password must be indistinguishable.
func TestAuthService_Login_UniformFailure(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ali", "ali@example.com", "Secret123")
	require.NoError(t, err)

	_, errWrongPassword := svc.Login(ctx, "ali@example.com", "WrongSecret")
	_, errUnknownUser := svc.Login(ctx, "ghost@example.com", "Secret123")

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownUser, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
}

func TestAuthService_TokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)

	token, err := svc.CreateAccessToken(1, "ali@example.com", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = tokens.AccessClaimsFromToken(token, []byte("other-secret"))
	assert.Error(t, err)
}
