package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/juliomeza/sales-orders-system-sub001/internal/apperrors"
	"github.com/juliomeza/sales-orders-system-sub001/internal/auth"
	"github.com/juliomeza/sales-orders-system-sub001/internal/models"
	"github.com/juliomeza/sales-orders-system-sub001/internal/repository"
)

const loginSecret = "login-secret"

func seedLoginUser(t *testing.T, db *gorm.DB, email, password string, status int) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: "Test",
		LastName:  "User",
		Role:      models.RoleAdmin,
		Status:    status,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLoginIssuesToken(t *testing.T) {
	db := openTestDB(t)
	user := seedLoginUser(t, db, "admin@test.example", "hunter2", models.StatusActive)
	svc := NewAuthService(repository.NewUserRepository(db), loginSecret, time.Hour, nopLogger())

	token, loggedIn, err := svc.Login(context.Background(), "admin@test.example", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	identity, err := auth.ParseToken(loginSecret, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, models.RoleAdmin, identity.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	db := openTestDB(t)
	seedLoginUser(t, db, "admin@test.example", "hunter2", models.StatusActive)
	svc := NewAuthService(repository.NewUserRepository(db), loginSecret, time.Hour, nopLogger())

	_, _, err := svc.Login(context.Background(), "admin@test.example", "wrong")
	var authn *apperrors.AuthenticationError
	require.ErrorAs(t, err, &authn)
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestLoginUnknownEmail(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), loginSecret, time.Hour, nopLogger())

	// Unknown email and wrong password produce the same message, so the
	// endpoint cannot be used to probe which accounts exist.
	_, _, err := svc.Login(context.Background(), "nobody@test.example", "whatever")
	var authn *apperrors.AuthenticationError
	require.ErrorAs(t, err, &authn)
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestLoginInactiveAccount(t *testing.T) {
	db := openTestDB(t)
	seedLoginUser(t, db, "gone@test.example", "hunter2", models.StatusInactive)
	svc := NewAuthService(repository.NewUserRepository(db), loginSecret, time.Hour, nopLogger())

	_, _, err := svc.Login(context.Background(), "gone@test.example", "hunter2")
	var authn *apperrors.AuthenticationError
	require.ErrorAs(t, err, &authn)
	assert.Equal(t, "account is inactive", err.Error())
}
