package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "stockyard/internal/core/context"
)

func TestAccessPolicy_AdminBypass(t *testing.T) {
	p, err := NewAccessPolicy(`is_admin || "warehouse:write" in permissions`)
	require.NoError(t, err)

	admin := &appctx.UserContext{UserID: "u1", IsAdmin: true}
	allowed, err := p.Allow(admin)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAccessPolicy_PermissionCheck(t *testing.T) {
	p := RequirePermission("stock:adjust")

	holder := &appctx.UserContext{
		UserID:      "u2",
		Permissions: []string{"stock:read", "stock:adjust"},
	}
	allowed, err := p.Allow(holder)
	require.NoError(t, err)
	assert.True(t, allowed)

	reader := &appctx.UserContext{
		UserID:      "u3",
		Permissions: []string{"stock:read"},
	}
	allowed, err = p.Allow(reader)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAccessPolicy_RoleCheck(t *testing.T) {
	p := RequireRole("storekeeper", "logistics")

	user := &appctx.UserContext{UserID: "u4", Roles: []string{"logistics"}}
	allowed, err := p.Allow(user)
	require.NoError(t, err)
	assert.True(t, allowed)

	outsider := &appctx.UserContext{UserID: "u5", Roles: []string{"viewer"}}
	allowed, err = p.Allow(outsider)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAccessPolicy_NilUserDenied(t *testing.T) {
	p := RequireRole("storekeeper")

	allowed, err := p.Allow(nil)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAccessPolicy_NilSlicesEvaluate(t *testing.T) {
	p := RequirePermission("stock:read")

	user := &appctx.UserContext{UserID: "u6"} // no roles, no permissions
	allowed, err := p.Allow(user)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestNewAccessPolicy_RejectsNonBool(t *testing.T) {
	_, err := NewAccessPolicy(`"just a string"`)
	assert.Error(t, err)
}

func TestNewAccessPolicy_RejectsBadSyntax(t *testing.T) {
	_, err := NewAccessPolicy(`is_admin ||`)
	assert.Error(t, err)
}
