// Package auth provides credential checking and session token handling.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/apperr"
	usercontroller "github.com/userhub/userhub/internal/db/controller/user"
	"github.com/userhub/userhub/internal/db/models"
)

// TokenExpiry is the fixed lifetime of a session token.
const TokenExpiry = time.Hour

// UserFinder is the lookup contract the service needs.
type UserFinder interface {
	GetByLogin(login string) (*models.User, error)
	GetByID(id string, includeDeleted bool) (*models.User, error)
}

// Service implements authentication.
type Service struct {
	users  UserFinder
	secret string
}

// NewService creates an auth service. The secret signs session tokens; with
// an empty secret tokens can neither be issued nor verified.
func NewService(users UserFinder, secret string) *Service {
	return &Service{users: users, secret: secret}
}

// TokenData is an issued session token with its lifetime in seconds.
type TokenData struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// LoginUser checks the credentials and returns the user record. An unknown
// login and a wrong password are indistinguishable to the caller: both yield
// the same auth failure.
func (s *Service) LoginUser(login, password string) (*models.User, error) {
	user, err := s.users.GetByLogin(login)
	if err != nil {
		if errors.Is(err, usercontroller.ErrUserNotFound) {
			return nil, apperr.Auth("wrong user or password")
		}

		return nil, apperr.Store("failed to look up user", err)
	}

	if !user.VerifyPassword(password) {
		return nil, apperr.Auth("wrong user or password")
	}

	return user, nil
}

// CreateToken issues a signed token binding the user's ID with the fixed
// expiry. It fails when no signing secret is configured.
func (s *Service) CreateToken(user *models.User) (*TokenData, error) {
	if s.secret == "" {
		return nil, apperr.Configuration("token signing secret is not configured")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfiguration, "failed to sign token", err)
	}

	return &TokenData{
		Token:     signed,
		ExpiresIn: int64(TokenExpiry.Seconds()),
	}, nil
}

// VerifyToken validates a session token and loads the user it is bound to.
// Missing, malformed, forged and expired tokens all yield an auth failure.
func (s *Service) VerifyToken(tokenString string) (*models.User, error) {
	if s.secret == "" {
		return nil, apperr.Configuration("token signing secret is not configured")
	}

	claims := new(jwt.RegisteredClaims)

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindAuth, "invalid token", err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, apperr.Auth("invalid token claims")
	}

	user, err := s.users.GetByID(claims.Subject, true)
	if err != nil {
		if errors.Is(err, usercontroller.ErrUserNotFound) {
			return nil, apperr.Auth("invalid token")
		}

		return nil, apperr.Store("failed to load token user", err)
	}

	return user, nil
}
