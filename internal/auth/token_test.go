package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juliomeza/sales-orders-system-sub001/internal/models"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	customerID := uint(7)
	user := &models.User{
		Email:      "client@example.com",
		Role:       models.RoleClient,
		CustomerID: &customerID,
	}
	user.ID = 42

	token, err := GenerateToken(testSecret, user, time.Hour)
	require.NoError(t, err)

	identity, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), identity.UserID)
	assert.Equal(t, models.RoleClient, identity.Role)
	require.NotNil(t, identity.CustomerID)
	assert.Equal(t, customerID, *identity.CustomerID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	user := &models.User{Role: models.RoleAdmin}
	user.ID = 1

	token, err := GenerateToken(testSecret, user, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	user := &models.User{Role: models.RoleAdmin}
	user.ID = 1

	token, err := GenerateToken(testSecret, user, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not.a.token")
	assert.Error(t, err)
}

func TestIdentityTenantAccess(t *testing.T) {
	customerID := uint(3)
	client := &Identity{UserID: 2, Role: models.RoleClient, CustomerID: &customerID}
	admin := &Identity{UserID: 1, Role: models.RoleAdmin}

	assert.True(t, client.CanAccessCustomer(3))
	assert.False(t, client.CanAccessCustomer(4))
	assert.True(t, admin.CanAccessCustomer(3))
	assert.True(t, admin.CanAccessCustomer(4))

	assert.True(t, admin.IsAdmin())
	assert.False(t, client.IsAdmin())
}
