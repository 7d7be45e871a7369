package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 30)
	token, err := tm.GenerateToken(7, domain.RoleManager)
	require.NoError(t, err)
	assert.WithinDuration(t, token.IssuedAt.Add(30*time.Minute), token.ExpiresAt, time.Second)

	claims, err := tm.ParseToken(token.Value)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, domain.RoleManager, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokenRejectsOtherSecretAndExpiry(t *testing.T) {
	tm := NewTokenManager("secret", 1)
	token, err := tm.GenerateToken(1, domain.RoleAgent)
	require.NoError(t, err)

	_, err = NewTokenManager("other", 1).ParseToken(token.Value)
	assert.Error(t, err)

	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := tm.GenerateToken(1, domain.RoleAgent)
	require.NoError(t, err)
	_, err = tm.ParseToken(stale.Value)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "s3cret!"))
	assert.ErrorIs(t, ComparePassword(hash, "wrong"), ErrPasswordMismatch)

	// Out-of-range cost falls back to the default instead of failing.
	_, err = HashPassword("s3cret!", 99)
	assert.NoError(t, err)
}

func TestPrincipalVisibility(t *testing.T) {
	owner := int64(5)
	complaint := &domain.Complaint{CustomerID: &owner}

	assert.True(t, (&Principal{User: &domain.User{ID: 5, Role: domain.RoleCustomer}}).CanSeeComplaint(complaint))
	assert.False(t, (&Principal{User: &domain.User{ID: 6, Role: domain.RoleCustomer}}).CanSeeComplaint(complaint))
	assert.True(t, (&Principal{User: &domain.User{ID: 6, Role: domain.RoleAgent}}).CanSeeComplaint(complaint))
	assert.False(t, (&Principal{User: &domain.User{ID: 5, Role: domain.RoleCustomer}}).CanSeeComplaint(&domain.Complaint{}))
}
