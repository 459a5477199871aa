// Package auth provides the session cookie middleware guarding the API.
package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/userhub/userhub/internal/auth"
	"github.com/userhub/userhub/internal/web/handler"
)

// CurrentUserKey is the request-local key holding the authenticated user.
const CurrentUserKey = "CurrentUser"

// Config holds the middleware settings.
type Config struct {
	// Auth verifies session tokens.
	Auth *auth.Service

	// ExemptPaths are served without a session.
	ExemptPaths []string
}

// New creates the middleware. Requests without a valid session cookie are
// rejected with 401 unless their path is exempt.
func New(config Config) fiber.Handler {
	exempt := make(map[string]struct{}, len(config.ExemptPaths))
	for _, path := range config.ExemptPaths {
		exempt[path] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, ok := exempt[c.Path()]; ok {
			return c.Next()
		}

		token := c.Cookies(handler.CookieName)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication token missing")
		}

		user, err := config.Auth.VerifyToken(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(CurrentUserKey, user)

		return c.Next()
	}
}
