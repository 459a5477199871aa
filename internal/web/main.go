// Package web wires the HTTP surface: the fiber app, middleware, routes and
// graceful shutdown.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/userhub/userhub/internal/auth"
	"github.com/userhub/userhub/internal/config"
	groupcontroller "github.com/userhub/userhub/internal/db/controller/group"
	membershipcontroller "github.com/userhub/userhub/internal/db/controller/membership"
	usercontroller "github.com/userhub/userhub/internal/db/controller/user"
	"github.com/userhub/userhub/internal/groups"
	fiberlogger "github.com/userhub/userhub/internal/logger/adapter/fiber"
	"github.com/userhub/userhub/internal/usergroup"
	"github.com/userhub/userhub/internal/users"
	"github.com/userhub/userhub/internal/web/handler"
	groupshandler "github.com/userhub/userhub/internal/web/handler/groups"
	loginhandler "github.com/userhub/userhub/internal/web/handler/login"
	membershiphandler "github.com/userhub/userhub/internal/web/handler/membership"
	usershandler "github.com/userhub/userhub/internal/web/handler/users"
	authmiddleware "github.com/userhub/userhub/internal/web/middleware/auth"
)

// CheckAliveURI is the liveness endpoint; it is exempt from auth and from
// access logging.
const CheckAliveURI = "/checkalive"

// MetricsURI serves the prometheus registry.
const MetricsURI = "/metrics"

// LoginURI is the only route reachable without a session.
const LoginURI = "/auth/login"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			AppName:       "UserHub",
			CaseSensitive: true,
			Prefork:       false,
			Immutable:     true,
			ErrorHandler:  handler.ErrorHandler,
		},
	)

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}
	service.alive.Store(true)

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAliveURI,
	}))

	app.Get(CheckAliveURI, service.checkAlive)
	app.Get(MetricsURI, adaptor.HTTPHandler(promhttp.Handler()))

	// stores
	userStore, err := usercontroller.NewStore(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create user store")
	}

	groupStore, err := groupcontroller.NewStore(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create group store")
	}

	membershipStore, err := membershipcontroller.NewStore(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create membership store")
	}

	// services; the membership service is the single owner of the join table
	membershipService := usergroup.NewService(membershipStore)
	usersService := users.NewService(userStore, membershipService, users.Config{
		HideDeleted: cfg.Users.HideDeleted,
	})
	groupsService := groups.NewService(groupStore, membershipService)
	authService := auth.NewService(userStore, cfg.Webserver.Auth.JWTSecret)

	app.Use(authmiddleware.New(authmiddleware.Config{
		Auth:        authService,
		ExemptPaths: []string{LoginURI, CheckAliveURI, MetricsURI},
	}))

	// init handlers; membership before groups so /groups/add/:id wins
	loginhandler.Init(app, cfg, authService)
	usershandler.Init(app, cfg, usersService)
	membershiphandler.Init(app, cfg, membershipService)
	groupshandler.Init(app, cfg, groupsService)

	return service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and shuts the server down.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: fail checkalive first so the LB
	// removes this instance from its active targets.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 for %d seconds to let the LB drain this instance",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}
