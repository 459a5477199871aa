package groups

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/userhub/userhub/internal/config"
	groupcontroller "github.com/userhub/userhub/internal/db/controller/group"
	membershipcontroller "github.com/userhub/userhub/internal/db/controller/membership"
	"github.com/userhub/userhub/internal/db/models"
	"github.com/userhub/userhub/internal/groups"
	"github.com/userhub/userhub/internal/usergroup"
	"github.com/userhub/userhub/internal/web/handler"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{}, &models.Group{}, &models.UserGroup{})
	require.NoError(t, err, "failed to migrate test database")

	groupStore, err := groupcontroller.NewStore(db)
	require.NoError(t, err)

	membershipStore, err := membershipcontroller.NewStore(db)
	require.NoError(t, err)

	service := groups.NewService(groupStore, usergroup.NewService(membershipStore))

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	Init(app, &config.Config{}, service)

	return app, db
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return req
}

func decodeGroup(t *testing.T, resp *http.Response) models.Group {
	t.Helper()

	var group models.Group
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&group))

	return group
}

func TestCreate(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		expectedStatus int
		expectedPerms  models.Permissions
	}{
		{
			name:           "explicit permissions",
			body:           `{"name":"admins","permissions":["READ","WRITE"]}`,
			expectedStatus: fiber.StatusOK,
			expectedPerms:  models.Permissions{models.PermissionRead, models.PermissionWrite},
		},
		{
			name:           "default permissions",
			body:           `{"name":"readers"}`,
			expectedStatus: fiber.StatusOK,
			expectedPerms:  models.DefaultPermissions(),
		},
		{
			name:           "unknown permission",
			body:           `{"name":"admins","permissions":["FLY"]}`,
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name:           "missing name",
			body:           `{"permissions":["READ"]}`,
			expectedStatus: fiber.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, _ := newTestApp(t)

			resp, err := app.Test(jsonRequest(fiber.MethodPost, "/groups", tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)

			if tc.expectedStatus == fiber.StatusOK {
				group := decodeGroup(t, resp)
				assert.NotEmpty(t, group.ID)
				assert.Equal(t, tc.expectedPerms, group.Permissions)
			}
		})
	}
}

func TestGetByID(t *testing.T) {
	app, db := newTestApp(t)

	require.NoError(t, db.Create(&models.Group{
		ID:          "g1",
		Name:        "admins",
		Permissions: models.DefaultPermissions(),
	}).Error)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/groups/g1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "admins", decodeGroup(t, resp).Name)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/groups/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdate(t *testing.T) {
	app, db := newTestApp(t)

	require.NoError(t, db.Create(&models.Group{
		ID:          "g1",
		Name:        "admins",
		Permissions: models.DefaultPermissions(),
	}).Error)

	resp, err := app.Test(jsonRequest(fiber.MethodPut, "/groups/g1", `{"permissions":["READ","DELETE"]}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	group := decodeGroup(t, resp)
	assert.Equal(t, "admins", group.Name)
	assert.Equal(t, models.Permissions{models.PermissionRead, models.PermissionDelete}, group.Permissions)
}

func TestDelete(t *testing.T) {
	app, db := newTestApp(t)

	require.NoError(t, db.Create(&models.Group{
		ID:          "g1",
		Name:        "admins",
		Permissions: models.DefaultPermissions(),
	}).Error)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/groups/g1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Group{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodDelete, "/groups/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
