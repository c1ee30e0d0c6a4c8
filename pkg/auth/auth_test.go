package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token, err := manager.Generate("user-1", "tenant-1", RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, RoleManager, claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Generate("user-1", "tenant-1", RoleAdmin)
	require.NoError(t, err)

	claims, err := NewTokenManager("secret-b", time.Hour).Validate(token)
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Generate("user-1", "tenant-1", RoleAdmin)
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	claims, err := manager.Validate("not-a-token")
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermUsersManage))
	assert.True(t, HasPermission(RoleAdmin, PermBillingManage))
	assert.True(t, HasPermission(RoleAdmin, PermProductsDelete))

	assert.True(t, HasPermission(RoleManager, PermProductsWrite))
	assert.True(t, HasPermission(RoleManager, PermReportsExport))
	assert.False(t, HasPermission(RoleManager, PermUsersManage))
	assert.False(t, HasPermission(RoleManager, PermBillingManage))

	assert.True(t, HasPermission(RoleOperator, PermMovementsWrite))
	assert.False(t, HasPermission(RoleOperator, PermProductsWrite))
	assert.False(t, HasPermission(RoleOperator, PermReportsExport))
}

func TestUnknownRoleDegradesToOperator(t *testing.T) {
	assert.True(t, HasPermission("INTERN", PermMovementsWrite))
	assert.False(t, HasPermission("INTERN", PermProductsWrite))
	assert.False(t, HasPermission("", PermUsersManage))
}
