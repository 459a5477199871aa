// Package membership exposes the user-group join operations over HTTP.
package membership

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/userhub/userhub/internal/apperr"
	"github.com/userhub/userhub/internal/config"
	"github.com/userhub/userhub/internal/usergroup"
	"github.com/userhub/userhub/internal/web/handler"
	"github.com/userhub/userhub/internal/web/validation"
)

// Service implements the membership routes.
type Service struct {
	cfg         *config.Config
	memberships *usergroup.Service
	validator   *validator.Validate
}

// Handler is the package-level handler instance.
var Handler Service

// Init registers the membership routes on the app. This runs before the
// group handler so the literal "add" segment wins over the :id route.
func Init(app *fiber.App, cfg *config.Config, svc *usergroup.Service) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
	}

	Handler = Service{
		cfg:         cfg,
		memberships: svc,
		validator:   validation.New(),
	}

	app.Put("/groups/add/:id", handler.RequireJSON, Handler.AddUsers)
}

type addUsersBody struct {
	UserIDList []string `json:"userIdList" validate:"required,min=1,dive,required"`
}

// AddUsers handles PUT /groups/add/:id. The whole batch is applied in one
// transaction; any failing row rolls back the batch.
func (s *Service) AddUsers(c *fiber.Ctx) error {
	var body addUsersBody

	if err := c.BodyParser(&body); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := s.validator.Struct(body); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid membership payload", err)
	}

	if err := s.memberships.AddUsersToGroup(body.UserIDList, c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Users added to group!"})
}
