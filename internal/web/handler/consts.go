package handler

const (
	// RootPath is the root path of a route group.
	RootPath = "/"

	// CookieName is the session cookie carrying the auth token.
	CookieName = "Authorization"

	// ErrNilDepsFatalLogMsg is used if the app, cfg or service pointer is nil.
	ErrNilDepsFatalLogMsg = "app, cfg or service is nil"
)
