// Package groups exposes the group resource over HTTP.
package groups

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/userhub/userhub/internal/apperr"
	"github.com/userhub/userhub/internal/config"
	"github.com/userhub/userhub/internal/db/models"
	"github.com/userhub/userhub/internal/groups"
	"github.com/userhub/userhub/internal/web/handler"
	"github.com/userhub/userhub/internal/web/validation"
)

// Service implements the group routes.
type Service struct {
	cfg       *config.Config
	groups    *groups.Service
	validator *validator.Validate
}

// Handler is the package-level handler instance.
var Handler Service

// Init registers the group routes on the app. The membership handler must be
// initialized first so PUT /groups/add/:id does not match the :id route.
func Init(app *fiber.App, cfg *config.Config, svc *groups.Service) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
	}

	Handler = Service{
		cfg:       cfg,
		groups:    svc,
		validator: validation.New(),
	}

	app.Route("/groups", func(router fiber.Router) {
		router.Get(handler.RootPath, Handler.List)
		router.Get("/:id", Handler.GetByID)
		router.Post(handler.RootPath, handler.RequireJSON, Handler.Create)
		router.Put("/:id", handler.RequireJSON, Handler.Update)
		router.Delete("/:id", Handler.Delete)
	})
}

type groupBody struct {
	Name        string   `json:"name"        validate:"required,min=1,max=25"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,oneof=READ WRITE DELETE SHARE UPLOAD_FILES"`
}

type updateBody struct {
	Name        string   `json:"name"        validate:"omitempty,min=1,max=25"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,oneof=READ WRITE DELETE SHARE UPLOAD_FILES"`
}

func toPermissions(values []string) models.Permissions {
	permissions := make(models.Permissions, 0, len(values))
	for _, v := range values {
		permissions = append(permissions, models.Permission(v))
	}

	return permissions
}

// List handles GET /groups.
func (s *Service) List(c *fiber.Ctx) error {
	records, err := s.groups.FindAll()
	if err != nil {
		return err
	}

	return c.JSON(records)
}

// GetByID handles GET /groups/:id.
func (s *Service) GetByID(c *fiber.Ctx) error {
	record, err := s.groups.FindOneByID(c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// Create handles POST /groups.
func (s *Service) Create(c *fiber.Ctx) error {
	var body groupBody

	if err := c.BodyParser(&body); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := s.validator.Struct(body); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid group payload", err)
	}

	record, err := s.groups.CreateOne(groups.Input{
		Name:        body.Name,
		Permissions: toPermissions(body.Permissions),
	})
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// Update handles PUT /groups/:id.
func (s *Service) Update(c *fiber.Ctx) error {
	var body updateBody

	if err := c.BodyParser(&body); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := s.validator.Struct(body); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid group payload", err)
	}

	_, record, err := s.groups.UpdateOne(c.Params("id"), groups.Input{
		Name:        body.Name,
		Permissions: toPermissions(body.Permissions),
	})
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// Delete handles DELETE /groups/:id. The group row and its memberships are
// removed; both legs are reported in the log independently.
func (s *Service) Delete(c *fiber.Ctx) error {
	res, err := s.groups.RemoveOne(c.Params("id"))

	if res.RemoveErr != nil {
		log.Error().Err(res.RemoveErr).Str("group_id", c.Params("id")).Msg("group removal failed")
	}

	if res.MembershipErr != nil {
		log.Error().Err(res.MembershipErr).Str("group_id", c.Params("id")).Msg("membership cleanup failed")
	}

	if err != nil {
		if res.RemoveErr != nil {
			return res.RemoveErr
		}

		return err
	}

	log.Debug().Str("group_id", c.Params("id")).Int64("memberships_removed", res.MembershipsRemoved).Msg("group removed")

	return c.JSON(fiber.Map{"message": "Group removed!"})
}
