// Package users exposes the user resource over HTTP.
package users

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/userhub/userhub/internal/apperr"
	"github.com/userhub/userhub/internal/config"
	"github.com/userhub/userhub/internal/users"
	"github.com/userhub/userhub/internal/web/handler"
	"github.com/userhub/userhub/internal/web/validation"
)

// Service implements the user routes.
type Service struct {
	cfg       *config.Config
	users     *users.Service
	validator *validator.Validate
}

// Handler is the package-level handler instance.
var Handler Service

// Init registers the user routes on the app.
func Init(app *fiber.App, cfg *config.Config, svc *users.Service) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
	}

	Handler = Service{
		cfg:       cfg,
		users:     svc,
		validator: validation.New(),
	}

	app.Route("/users", func(router fiber.Router) {
		router.Get(handler.RootPath, Handler.List)
		// registered before the :id route so "suggest" is not taken for an ID
		router.Get("/suggest/:substr", Handler.Suggest)
		router.Get("/:id", Handler.GetByID)
		router.Post(handler.RootPath, handler.RequireJSON, Handler.Create)
		router.Put("/:id", handler.RequireJSON, Handler.Update)
		router.Delete("/:id", Handler.Delete)
	})
}

type createBody struct {
	Login    string `json:"login"    validate:"required,min=1,max=25"`
	Password string `json:"password" validate:"required,min=8,max=16,alphanum,passwd"`
	Age      int    `json:"age"      validate:"required,gte=4,lte=130"`
}

type updateBody struct {
	Login    *string `json:"login"    validate:"omitempty,min=1,max=25"`
	Password *string `json:"password" validate:"omitempty,min=8,max=16,alphanum,passwd"`
	Age      *int    `json:"age"      validate:"omitempty,gte=4,lte=130"`
}

// List handles GET /users.
func (s *Service) List(c *fiber.Ctx) error {
	records, err := s.users.FindAll()
	if err != nil {
		return err
	}

	return c.JSON(records)
}

// GetByID handles GET /users/:id.
func (s *Service) GetByID(c *fiber.Ctx) error {
	record, err := s.users.FindOneByID(c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// Create handles POST /users.
func (s *Service) Create(c *fiber.Ctx) error {
	var body createBody

	if err := c.BodyParser(&body); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := s.validator.Struct(body); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid user payload", err)
	}

	record, err := s.users.AddOne(users.Input{
		Login:    body.Login,
		Password: body.Password,
		Age:      body.Age,
	})
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// Update handles PUT /users/:id. Absent fields keep their stored values.
func (s *Service) Update(c *fiber.Ctx) error {
	var body updateBody

	if err := c.BodyParser(&body); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := s.validator.Struct(body); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid user payload", err)
	}

	_, record, err := s.users.UpdateOne(c.Params("id"), users.Update{
		Login:    body.Login,
		Password: body.Password,
		Age:      body.Age,
	})
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// Suggest handles GET /users/suggest/:substr?limit=N.
func (s *Service) Suggest(c *fiber.Ctx) error {
	limitParam := c.Query("limit")
	if limitParam == "" {
		return apperr.Validation("limit query parameter is required")
	}

	limit, err := strconv.Atoi(limitParam)
	if err != nil || limit < 1 || limit > s.cfg.Users.SuggestLimitCap {
		return apperr.Validation("limit must be between 1 and " + strconv.Itoa(s.cfg.Users.SuggestLimitCap))
	}

	logins, err := s.users.AutoSuggestUsers(c.Params("substr"), limit)
	if err != nil {
		return err
	}

	if len(logins) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.JSON(logins)
}

// Delete handles DELETE /users/:id. The user is soft-deleted and their group
// memberships are removed; both legs are reported in the log independently.
func (s *Service) Delete(c *fiber.Ctx) error {
	res, err := s.users.SoftDelete(c.Params("id"))

	if res.UpdateErr != nil {
		log.Error().Err(res.UpdateErr).Str("user_id", c.Params("id")).Msg("soft delete failed")
	}

	if res.MembershipErr != nil {
		log.Error().Err(res.MembershipErr).Str("user_id", c.Params("id")).Msg("membership cleanup failed")
	}

	if err != nil {
		if res.UpdateErr != nil {
			return res.UpdateErr
		}

		return err
	}

	log.Debug().Str("user_id", c.Params("id")).Int64("memberships_removed", res.MembershipsRemoved).Msg("user soft deleted")

	return c.JSON(res.User)
}
