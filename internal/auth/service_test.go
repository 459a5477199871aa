package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/userhub/userhub/internal/apperr"
	usercontroller "github.com/userhub/userhub/internal/db/controller/user"
	"github.com/userhub/userhub/internal/db/models"
)

const testSecret = "test-secret"

func setup(t *testing.T, secret string) (*gorm.DB, *Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err, "failed to migrate test database")

	store, err := usercontroller.NewStore(db)
	require.NoError(t, err)

	return db, NewService(store, secret)
}

func seedUser(t *testing.T, db *gorm.DB, user models.User) {
	t.Helper()
	require.NoError(t, db.Create(&user).Error)
}

func TestLoginUser(t *testing.T) {
	db, service := setup(t, testSecret)

	seedUser(t, db, models.User{ID: "u1", Login: "alice", Password: models.HashPassword("secret99"), Age: 30})
	seedUser(t, db, models.User{ID: "u2", Login: "legacy", Password: "plain1234", Age: 40})

	t.Run("hashed password", func(t *testing.T) {
		user, err := service.LoginUser("alice", "secret99")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("plaintext legacy password", func(t *testing.T) {
		user, err := service.LoginUser("legacy", "plain1234")
		require.NoError(t, err)
		assert.Equal(t, "u2", user.ID)
	})

	t.Run("failures are indistinguishable", func(t *testing.T) {
		_, unknownErr := service.LoginUser("nobody", "secret99")
		require.Error(t, unknownErr)
		assert.True(t, apperr.IsKind(unknownErr, apperr.KindAuth))

		_, wrongErr := service.LoginUser("alice", "wrongpass1")
		require.Error(t, wrongErr)
		assert.True(t, apperr.IsKind(wrongErr, apperr.KindAuth))

		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})
}

func TestCreateToken(t *testing.T) {
	db, service := setup(t, testSecret)

	seedUser(t, db, models.User{ID: "u1", Login: "alice", Password: "secret99", Age: 30})

	tokenData, err := service.CreateToken(&models.User{ID: "u1"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokenData.Token)
	assert.Equal(t, int64(TokenExpiry.Seconds()), tokenData.ExpiresIn)

	// each token carries a fresh jti
	second, err := service.CreateToken(&models.User{ID: "u1"})
	require.NoError(t, err)
	assert.NotEqual(t, tokenData.Token, second.Token)
}

func TestCreateTokenWithoutSecret(t *testing.T) {
	_, service := setup(t, "")

	_, err := service.CreateToken(&models.User{ID: "u1"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConfiguration))
}

func TestVerifyToken(t *testing.T) {
	db, service := setup(t, testSecret)

	seedUser(t, db, models.User{ID: "u1", Login: "alice", Password: "secret99", Age: 30})

	tokenData, err := service.CreateToken(&models.User{ID: "u1"})
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		user, err := service.VerifyToken(tokenData.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.VerifyToken("not-a-token")
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindAuth))
	})

	t.Run("tampered token", func(t *testing.T) {
		_, err := service.VerifyToken(tokenData.Token + "x")
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindAuth))
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		_, other := setup(t, "other-secret")

		foreign, err := other.CreateToken(&models.User{ID: "u1"})
		require.NoError(t, err)

		_, err = service.VerifyToken(foreign.Token)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindAuth))
	})

	t.Run("token of a missing user", func(t *testing.T) {
		ghost, err := service.CreateToken(&models.User{ID: "ghost"})
		require.NoError(t, err)

		_, err = service.VerifyToken(ghost.Token)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindAuth))
	})
}
