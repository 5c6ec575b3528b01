package service

import (
	"testing"
	"time"

	"bizflow-backend/internal/model"
	"bizflow-backend/internal/repository"
	"bizflow-backend/pkg/password"
	"bizflow-backend/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthStack(t *testing.T) (UserService, AuthService, *token.Service, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	userRepo := repository.NewUserRepo(db)
	hasher := password.NewHasher()
	hasher.SetCost(bcrypt.MinCost)
	tokens := token.New([]byte("test-secret"), 30*time.Minute)
	return NewUserService(userRepo, hasher), NewAuthService(userRepo, hasher, tokens), tokens, db
}

func TestRegisterDefaultsToUserRole(t *testing.T) {
	users, _, _, _ := newAuthStack(t)

	user, err := users.Register(&RegisterRequest{
		Email:    "worker@example.com",
		Password: "Passw0rd",
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "Passw0rd", user.PasswordHash)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	users, _, _, _ := newAuthStack(t)

	for _, pw := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		_, err := users.Register(&RegisterRequest{
			Email:    "worker@example.com",
			Password: pw,
		})
		assert.Error(t, err, "password %q should be rejected", pw)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users, _, _, _ := newAuthStack(t)

	_, err := users.Register(&RegisterRequest{Email: "worker@example.com", Password: "Passw0rd"})
	require.NoError(t, err)

	_, err = users.Register(&RegisterRequest{Email: "worker@example.com", Password: "Passw0rd"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	users, auth, tokens, _ := newAuthStack(t)

	registered, err := users.Register(&RegisterRequest{Email: "worker@example.com", Password: "Passw0rd"})
	require.NoError(t, err)

	resp, err := auth.Login("worker@example.com", "Passw0rd")
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 1800, resp.ExpiresIn)

	claims, err := tokens.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "worker@example.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	users, auth, _, db := newAuthStack(t)

	registered, err := users.Register(&RegisterRequest{Email: "worker@example.com", Password: "Passw0rd"})
	require.NoError(t, err)
	require.Nil(t, registered.LastLogin)

	_, err = auth.Login("worker@example.com", "Passw0rd")
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, db.First(&stored, "id = ?", registered.ID).Error)
	assert.NotNil(t, stored.LastLogin)
}

func TestLoginWrongPasswordAndUnknownEmailCollapse(t *testing.T) {
	users, auth, _, _ := newAuthStack(t)

	_, err := users.Register(&RegisterRequest{Email: "worker@example.com", Password: "Passw0rd"})
	require.NoError(t, err)

	_, err = auth.Login("worker@example.com", "wrong-Passw0rd")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("nobody@example.com", "Passw0rd")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	users, auth, _, db := newAuthStack(t)

	registered, err := users.Register(&RegisterRequest{Email: "worker@example.com", Password: "Passw0rd"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.User{}).
		Where("id = ?", registered.ID).
		Update("is_active", false).Error)

	_, err = auth.Login("worker@example.com", "Passw0rd")
	assert.ErrorIs(t, err, ErrUserInactive)
}
