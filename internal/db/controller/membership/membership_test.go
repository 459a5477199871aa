package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/userhub/userhub/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{}, &models.Group{}, &models.UserGroup{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedEntities(t *testing.T, db *gorm.DB) {
	t.Helper()

	users := []models.User{
		{ID: "u1", Login: "alice", Password: "secret99", Age: 30},
		{ID: "u2", Login: "bob", Password: "secret99", Age: 40},
		{ID: "u3", Login: "carol", Password: "secret99", Age: 50},
	}
	for _, user := range users {
		require.NoError(t, db.Create(&user).Error)
	}

	groups := []models.Group{
		{ID: "g1", Name: "admins", Permissions: models.DefaultPermissions()},
		{ID: "g2", Name: "readers", Permissions: models.DefaultPermissions()},
	}
	for _, group := range groups {
		require.NoError(t, db.Create(&group).Error)
	}
}

func countRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.UserGroup{}).Count(&count).Error)

	return count
}

func TestAddUsersToGroup(t *testing.T) {
	db := setupTestDB(t)
	store, err := NewStore(db)
	require.NoError(t, err)

	seedEntities(t, db)

	err = store.AddUsersToGroup([]string{"u1", "u2"}, "g1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), countRows(t, db))

	memberships, err := store.GetAll()
	require.NoError(t, err)
	assert.Len(t, memberships, 2)
	assert.Equal(t, "g1", memberships[0].GroupID)
}

func TestAddUsersToGroupUnknownGroup(t *testing.T) {
	db := setupTestDB(t)
	store, err := NewStore(db)
	require.NoError(t, err)

	seedEntities(t, db)

	err = store.AddUsersToGroup([]string{"u1"}, "missing")
	require.ErrorIs(t, err, ErrGroupNotFound)

	// nothing was written
	assert.Equal(t, int64(0), countRows(t, db))
}

func TestAddUsersToGroupBatchRollsBack(t *testing.T) {
	db := setupTestDB(t)
	store, err := NewStore(db)
	require.NoError(t, err)

	seedEntities(t, db)

	require.NoError(t, store.AddUsersToGroup([]string{"u1"}, "g1"))

	// the second row collides with the existing membership, so the whole
	// batch must roll back and u3 must not be added either
	err = store.AddUsersToGroup([]string{"u3", "u1"}, "g1")
	require.Error(t, err)

	assert.Equal(t, int64(1), countRows(t, db))
}

func TestRemoveAllByUserID(t *testing.T) {
	db := setupTestDB(t)
	store, err := NewStore(db)
	require.NoError(t, err)

	seedEntities(t, db)

	require.NoError(t, store.AddUsersToGroup([]string{"u1"}, "g1"))
	require.NoError(t, store.AddUsersToGroup([]string{"u1", "u2"}, "g2"))

	removed, err := store.RemoveAllByUserID("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	// u2's membership is untouched
	assert.Equal(t, int64(1), countRows(t, db))

	removed, err = store.RemoveAllByUserID("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

func TestRemoveAllByGroupID(t *testing.T) {
	db := setupTestDB(t)
	store, err := NewStore(db)
	require.NoError(t, err)

	seedEntities(t, db)

	require.NoError(t, store.AddUsersToGroup([]string{"u1", "u2", "u3"}, "g1"))
	require.NoError(t, store.AddUsersToGroup([]string{"u1"}, "g2"))

	removed, err := store.RemoveAllByGroupID("g1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	assert.Equal(t, int64(1), countRows(t, db))
}
