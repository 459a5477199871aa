// Package usergroup implements the membership service. It is the only
// component that mutates the user-group join store.
package usergroup

import (
	"errors"

	"github.com/userhub/userhub/internal/apperr"
	membershipcontroller "github.com/userhub/userhub/internal/db/controller/membership"
)

// Store is the persistence contract the service needs.
type Store interface {
	AddUsersToGroup(userIDs []string, groupID string) error
	RemoveAllByUserID(id string) (int64, error)
	RemoveAllByGroupID(id string) (int64, error)
}

// Service implements the membership operations.
type Service struct {
	store Store
}

// NewService creates a membership service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// AddUsersToGroup inserts one join row per user ID, all-or-nothing. A
// missing group or a rejected user ID aborts the whole batch.
func (s *Service) AddUsersToGroup(userIDs []string, groupID string) error {
	if err := s.store.AddUsersToGroup(userIDs, groupID); err != nil {
		if errors.Is(err, membershipcontroller.ErrGroupNotFound) {
			return apperr.NotFound("group not found")
		}

		return apperr.Store("failed to add users to group", err)
	}

	return nil
}

// RemoveAllByID deletes every join row whose user ID (when isUserID) or
// group ID matches id and returns the count removed. It is invoked by the
// user and group deletion sagas.
func (s *Service) RemoveAllByID(id string, isUserID bool) (int64, error) {
	var (
		removed int64
		err     error
	)

	if isUserID {
		removed, err = s.store.RemoveAllByUserID(id)
	} else {
		removed, err = s.store.RemoveAllByGroupID(id)
	}

	if err != nil {
		return 0, apperr.Store("failed to remove memberships", err)
	}

	return removed, nil
}

// RemoveAllByUserID deletes every join row of the given user. It lets the
// user deletion saga depend on this service instead of the join store.
func (s *Service) RemoveAllByUserID(id string) (int64, error) {
	return s.RemoveAllByID(id, true)
}

// RemoveAllByGroupID deletes every join row of the given group. It lets the
// group deletion saga depend on this service instead of the join store.
func (s *Service) RemoveAllByGroupID(id string) (int64, error) {
	return s.RemoveAllByID(id, false)
}
