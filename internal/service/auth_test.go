package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nutriday/backend/internal/models"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM users")
	})
	return NewAuthService(db, "test-secret")
}

func TestAuthService_Register(t *testing.T) {
	svc := newTestAuthService(t)

	token, err := svc.Register("Alice", "alice@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	t.Run("token resolves to the new user", func(t *testing.T) {
		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", claims.UserID.String())
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Register("Alice Again", "alice@example.com", "another-pass")
		assert.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	svc := newTestAuthService(t)
	_, err := svc.Register("Bob", "bob@example.com", "secret-password")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login("bob@example.com", "secret-password")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.NotNil(t, claims)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("bob@example.com", "wrong")
		assert.Error(t, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login("nobody@example.com", "secret-password")
		assert.Error(t, err)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := newTestAuthService(t)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		token, err := svc.Register("Carol", "carol@example.com", "carols-password")
		require.NoError(t, err)

		other := NewAuthService(nil, "different-secret")
		_, err = other.ValidateToken(token)
		assert.Error(t, err)
	})
}
