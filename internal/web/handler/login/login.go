// Package login exposes the credential login endpoint.
package login

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/userhub/userhub/internal/apperr"
	"github.com/userhub/userhub/internal/auth"
	"github.com/userhub/userhub/internal/config"
	"github.com/userhub/userhub/internal/web/handler"
	"github.com/userhub/userhub/internal/web/validation"
)

// WrongCredentialsMsg is returned for any failed login attempt. Unknown
// logins and wrong passwords are not distinguishable from the outside.
const WrongCredentialsMsg = "Wrong user or password!"

// Service implements the login route.
type Service struct {
	cfg       *config.Config
	auth      *auth.Service
	validator *validator.Validate
}

// Handler is the package-level handler instance.
var Handler Service

// Init registers the login route on the app.
func Init(app *fiber.App, cfg *config.Config, svc *auth.Service) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
	}

	Handler = Service{
		cfg:       cfg,
		auth:      svc,
		validator: validation.New(),
	}

	app.Post("/auth/login", handler.RequireJSON, Handler.Login)
}

type loginBody struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /auth/login. On success the session token is set as an
// HttpOnly cookie and the user record is returned.
func (s *Service) Login(c *fiber.Ctx) error {
	var body loginBody

	if err := c.BodyParser(&body); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := s.validator.Struct(body); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid login payload", err)
	}

	user, err := s.auth.LoginUser(body.Login, body.Password)
	if err != nil {
		if apperr.IsKind(err, apperr.KindAuth) {
			log.Debug().Str("login", body.Login).Msg("login rejected")

			return fiber.NewError(fiber.StatusUnauthorized, WrongCredentialsMsg)
		}

		return err
	}

	tokenData, err := s.auth.CreateToken(user)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     handler.CookieName,
		Value:    tokenData.Token,
		MaxAge:   int(tokenData.ExpiresIn),
		HTTPOnly: true,
	})

	log.Debug().Str("login", user.Login).Msg("login succeeded")

	return c.JSON(user)
}
