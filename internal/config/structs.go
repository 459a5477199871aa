package config

import (
	"github.com/userhub/userhub/internal/logger"
)

// Auth holds the token signing settings.
type Auth struct {
	JWTSecret string // secret used to sign session tokens; tokens can not be issued without it
}

// Users holds behavior switches for the users resource.
type Users struct {
	// HideDeleted filters soft-deleted users out of list and by-id reads.
	// The default (false) keeps them visible, matching the legacy behavior.
	HideDeleted bool

	// SuggestLimitCap is the maximum value accepted for the suggest route
	// limit query parameter.
	SuggestLimitCap int
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Users     Users
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	Domain       string // domain name for the webserver
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // base url for the webserver
	Auth         Auth   // token signing settings
}
