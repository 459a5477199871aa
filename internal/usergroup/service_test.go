package usergroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/userhub/userhub/internal/apperr"
	membershipcontroller "github.com/userhub/userhub/internal/db/controller/membership"
	"github.com/userhub/userhub/internal/db/models"
)

func setup(t *testing.T) (*gorm.DB, *Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{}, &models.Group{}, &models.UserGroup{})
	require.NoError(t, err, "failed to migrate test database")

	store, err := membershipcontroller.NewStore(db)
	require.NoError(t, err)

	return db, NewService(store)
}

func seedEntities(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&models.User{ID: "u1", Login: "alice", Password: "secret99", Age: 30}).Error)
	require.NoError(t, db.Create(&models.User{ID: "u2", Login: "bob", Password: "secret99", Age: 40}).Error)
	require.NoError(t, db.Create(&models.Group{ID: "g1", Name: "admins", Permissions: models.DefaultPermissions()}).Error)
}

func TestAddUsersToGroup(t *testing.T) {
	db, service := setup(t)
	seedEntities(t, db)

	require.NoError(t, service.AddUsersToGroup([]string{"u1", "u2"}, "g1"))

	var count int64
	require.NoError(t, db.Model(&models.UserGroup{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestAddUsersToGroupUnknownGroup(t *testing.T) {
	db, service := setup(t)
	seedEntities(t, db)

	err := service.AddUsersToGroup([]string{"u1"}, "missing")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	var count int64
	require.NoError(t, db.Model(&models.UserGroup{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRemoveAllByID(t *testing.T) {
	db, service := setup(t)
	seedEntities(t, db)

	require.NoError(t, service.AddUsersToGroup([]string{"u1", "u2"}, "g1"))

	removed, err := service.RemoveAllByUserID("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = service.RemoveAllByGroupID("g1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var count int64
	require.NoError(t, db.Model(&models.UserGroup{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
