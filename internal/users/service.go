// Package users implements the user service: CRUD, login auto-suggest and
// the soft-delete saga.
package users

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/apperr"
	usercontroller "github.com/userhub/userhub/internal/db/controller/user"
	"github.com/userhub/userhub/internal/db/models"
)

// Store is the persistence contract the service needs.
type Store interface {
	GetAll(includeDeleted bool) ([]models.User, error)
	GetByID(id string, includeDeleted bool) (*models.User, error)
	Create(user *models.User) error
	Update(id string, fields map[string]any) (int64, *models.User, error)
	SuggestLogins(substr string, limit int) ([]string, error)
}

// MembershipRemover removes all join rows of a user; used by the soft-delete
// saga.
type MembershipRemover interface {
	RemoveAllByUserID(id string) (int64, error)
}

// Config holds the behavior switches of the service.
type Config struct {
	// HideDeleted filters soft-deleted users out of FindAll and FindOneByID.
	// Disabled by default: the legacy system kept deleted users visible.
	HideDeleted bool
}

// Service implements the user operations.
type Service struct {
	store       Store
	memberships MembershipRemover
	cfg         Config
}

// NewService creates a user service.
func NewService(store Store, memberships MembershipRemover, cfg Config) *Service {
	return &Service{store: store, memberships: memberships, cfg: cfg}
}

// Input is the caller-provided shape of a new user. Validation of the field
// constraints happens at the HTTP layer before the service is invoked.
type Input struct {
	Login    string
	Password string
	Age      int
}

// Update is a partial update; nil fields are retained.
type Update struct {
	Login     *string
	Password  *string
	Age       *int
	IsDeleted *bool
}

// FindAll returns all user records.
func (s *Service) FindAll() ([]models.User, error) {
	records, err := s.store.GetAll(!s.cfg.HideDeleted)
	if err != nil {
		return nil, apperr.Store("failed to list users", err)
	}

	return records, nil
}

// FindOneByID returns the user with the given ID.
func (s *Service) FindOneByID(id string) (*models.User, error) {
	record, err := s.store.GetByID(id, !s.cfg.HideDeleted)
	if err != nil {
		if errors.Is(err, usercontroller.ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}

		return nil, apperr.Store("failed to load user", err)
	}

	return record, nil
}

// AddOne assigns a fresh unique ID, marks the record not deleted and
// persists it.
func (s *Service) AddOne(in Input) (*models.User, error) {
	record := &models.User{
		ID:        uuid.NewString(),
		Login:     in.Login,
		Password:  in.Password,
		Age:       in.Age,
		IsDeleted: false,
	}

	if err := s.store.Create(record); err != nil {
		return nil, apperr.Store("failed to create user", err)
	}

	return record, nil
}

// UpdateOne merges the partial update onto the existing record and returns
// the affected-row count together with the record after the update.
func (s *Service) UpdateOne(id string, upd Update) (int64, *models.User, error) {
	fields := map[string]any{}

	if upd.Login != nil {
		fields["login"] = *upd.Login
	}

	if upd.Password != nil {
		fields["password"] = *upd.Password
	}

	if upd.Age != nil {
		fields["age"] = *upd.Age
	}

	if upd.IsDeleted != nil {
		fields["is_deleted"] = *upd.IsDeleted
	}

	affected, record, err := s.store.Update(id, fields)
	if err != nil {
		if errors.Is(err, usercontroller.ErrUserNotFound) {
			return 0, nil, apperr.NotFound("user not found")
		}

		return affected, nil, apperr.Store("failed to update user", err)
	}

	return affected, record, nil
}

// AutoSuggestUsers returns the logins (and only the logins) of users whose
// login contains substr, case-insensitive, sorted ascending and capped at
// limit. No match yields an empty slice, never an error.
func (s *Service) AutoSuggestUsers(substr string, limit int) ([]string, error) {
	logins, err := s.store.SuggestLogins(substr, limit)
	if err != nil {
		return nil, apperr.Store("failed to suggest logins", err)
	}

	return logins, nil
}

// SoftDeleteResult reports both legs of the soft-delete saga independently.
// There is no compensating rollback: one leg may have succeeded while the
// other failed, and callers must treat partial completion as a possible
// outcome.
type SoftDeleteResult struct {
	User               *models.User
	Affected           int64
	MembershipsRemoved int64
	UpdateErr          error
	MembershipErr      error
}

// Err aggregates both legs' outcomes into a single error, nil when both
// succeeded.
func (r SoftDeleteResult) Err() error {
	return errors.Join(r.UpdateErr, r.MembershipErr)
}

// SoftDelete marks the user deleted and removes its group memberships. The
// two legs run concurrently and are joined before reporting.
func (s *Service) SoftDelete(id string) (SoftDeleteResult, error) {
	var (
		res SoftDeleteResult
		wg  sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		deleted := true
		res.Affected, res.User, res.UpdateErr = s.UpdateOne(id, Update{IsDeleted: &deleted})
	}()

	go func() {
		defer wg.Done()

		res.MembershipsRemoved, res.MembershipErr = s.memberships.RemoveAllByUserID(id)
	}()

	wg.Wait()

	return res, res.Err()
}
