package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret: "test-secret",
		Issuer: "stockyard-test",
	})
	require.NoError(t, err)
	return svc
}

func TestIssueAndVerifyAccess(t *testing.T) {
	svc := newTestJWT(t)

	user := NewUser("ops@example.com", "Ops User")
	user.Roles = []string{RoleStorekeep}
	user.Permissions = []string{"stock:write"}

	token, err := svc.IssueAccess(user)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, []string{RoleStorekeep}, claims.Roles)
	assert.False(t, claims.IsAdmin)
}

func TestVerify_RejectsTampered(t *testing.T) {
	svc := newTestJWT(t)

	user := NewUser("ops@example.com", "Ops User")
	token, err := svc.IssueAccess(user)
	require.NoError(t, err)

	_, err = svc.Verify(token + "x")
	require.Error(t, err)

	other, err := NewJWTService(JWTConfig{Secret: "other-secret"})
	require.NoError(t, err)
	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestVerify_RejectsExpired(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:    "test-secret",
		AccessTTL: -time.Minute,
	})
	require.NoError(t, err)

	user := NewUser("ops@example.com", "Ops User")
	token, err := svc.IssueAccess(user)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.Error(t, err)
}

func TestRefreshRoundTrip(t *testing.T) {
	svc := newTestJWT(t)

	user := NewUser("ops@example.com", "Ops User")
	token, err := svc.IssueRefresh(user)
	require.NoError(t, err)

	subject, err := svc.VerifyRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), subject)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	require.Error(t, err)
}
