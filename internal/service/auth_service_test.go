package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-desk/internal/config"
	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/repository/memory"
	apperrors "github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

func newAuthService() *AuthService {
	store := memory.NewStore()
	return NewAuthService(config.AuthConfig{JWTSecret: "test", AccessTokenTTLMinutes: 5, BcryptCost: 4},
		AuthDependencies{UserRepo: store.Users})
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	user, token, err := svc.Register(ctx, "dana", "dana@x.com", "password1", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.NotEmpty(t, token.Value)
	assert.NotEqual(t, "password1", user.PasswordHash)

	claims, err := svc.TokenManager().ParseToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err = svc.Register(ctx, "dana", "other@x.com", "password1", "")
	assert.True(t, apperrors.IsConflict(err))

	_, login, err := svc.Login(ctx, "dana", "password1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, login.Role)

	_, _, err = svc.Login(ctx, "dana", "wrong-password")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
	_, _, err = svc.Login(ctx, "nobody", "password1")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService()
	_, _, err := svc.Register(context.Background(), "", "bad", "short", domain.Role("root"))
	require.True(t, apperrors.IsValidation(err))
	details := apperrors.ToDomainError(err).Details
	for _, field := range []string{"username", "email", "password", "role"} {
		assert.Contains(t, details, field)
	}
}
