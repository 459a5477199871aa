package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authservice "github.com/userhub/userhub/internal/auth"
	usercontroller "github.com/userhub/userhub/internal/db/controller/user"
	"github.com/userhub/userhub/internal/db/models"
	"github.com/userhub/userhub/internal/web/handler"
)

func newTestApp(t *testing.T) (*fiber.App, *authservice.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err, "failed to migrate test database")

	require.NoError(t, db.Create(&models.User{
		ID:       "u1",
		Login:    "alice",
		Password: "secret99",
		Age:      30,
	}).Error)

	store, err := usercontroller.NewStore(db)
	require.NoError(t, err)

	service := authservice.NewService(store, "test-secret")

	app := fiber.New()
	app.Use(New(Config{
		Auth:        service,
		ExemptPaths: []string{"/auth/login", "/checkalive"},
	}))

	app.Get("/checkalive", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	app.Get("/protected", func(c *fiber.Ctx) error {
		user, ok := c.Locals(CurrentUserKey).(*models.User)
		if !ok {
			return fiber.ErrInternalServerError
		}

		return c.SendString(user.Login)
	})

	return app, service
}

func TestExemptPath(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/checkalive", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMissingCookie(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestInvalidToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: handler.CookieName, Value: "garbage"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestValidToken(t *testing.T) {
	app, service := newTestApp(t)

	tokenData, err := service.CreateToken(&models.User{ID: "u1"})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: handler.CookieName, Value: tokenData.Token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "alice", string(body))
}
