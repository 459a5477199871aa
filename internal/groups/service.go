// Package groups implements the group service: CRUD and the remove-group
// saga.
package groups

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/apperr"
	groupcontroller "github.com/userhub/userhub/internal/db/controller/group"
	"github.com/userhub/userhub/internal/db/models"
)

// Store is the persistence contract the service needs.
type Store interface {
	GetAll() ([]models.Group, error)
	GetByID(id string) (*models.Group, error)
	Create(group *models.Group) error
	Update(id string, fields map[string]any) (int64, *models.Group, error)
	Delete(id string) (int64, error)
}

// MembershipRemover removes all join rows of a group; used by the
// remove-group saga.
type MembershipRemover interface {
	RemoveAllByGroupID(id string) (int64, error)
}

// Service implements the group operations.
type Service struct {
	store       Store
	memberships MembershipRemover
}

// NewService creates a group service.
func NewService(store Store, memberships MembershipRemover) *Service {
	return &Service{store: store, memberships: memberships}
}

// Input is the caller-provided shape of a new or updated group.
type Input struct {
	Name        string
	Permissions models.Permissions
}

// FindAll returns all group records.
func (s *Service) FindAll() ([]models.Group, error) {
	records, err := s.store.GetAll()
	if err != nil {
		return nil, apperr.Store("failed to list groups", err)
	}

	return records, nil
}

// FindOneByID returns the group with the given ID.
func (s *Service) FindOneByID(id string) (*models.Group, error) {
	record, err := s.store.GetByID(id)
	if err != nil {
		if errors.Is(err, groupcontroller.ErrGroupNotFound) {
			return nil, apperr.NotFound("group not found")
		}

		return nil, apperr.Store("failed to load group", err)
	}

	return record, nil
}

// CreateOne assigns a fresh unique ID and persists the group. An empty
// permission list defaults to [READ].
func (s *Service) CreateOne(in Input) (*models.Group, error) {
	permissions := in.Permissions
	if len(permissions) == 0 {
		permissions = models.DefaultPermissions()
	}

	record := &models.Group{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Permissions: permissions,
	}

	if err := s.store.Create(record); err != nil {
		return nil, apperr.Store("failed to create group", err)
	}

	return record, nil
}

// UpdateOne merges the partial update onto the existing record and returns
// the affected-row count together with the record after the update.
func (s *Service) UpdateOne(id string, in Input) (int64, *models.Group, error) {
	fields := map[string]any{}

	if in.Name != "" {
		fields["name"] = in.Name
	}

	if len(in.Permissions) > 0 {
		fields["permissions"] = in.Permissions
	}

	affected, record, err := s.store.Update(id, fields)
	if err != nil {
		if errors.Is(err, groupcontroller.ErrGroupNotFound) {
			return 0, nil, apperr.NotFound("group not found")
		}

		return affected, nil, apperr.Store("failed to update group", err)
	}

	return affected, record, nil
}

// RemoveResult reports both legs of the remove-group saga independently.
// There is no compensating rollback between the legs.
type RemoveResult struct {
	Affected           int64
	MembershipsRemoved int64
	RemoveErr          error
	MembershipErr      error
}

// Err aggregates both legs' outcomes into a single error, nil when both
// succeeded.
func (r RemoveResult) Err() error {
	return errors.Join(r.RemoveErr, r.MembershipErr)
}

// RemoveOne hard-deletes the group and removes its memberships. The two legs
// run concurrently and are joined before reporting. A nonexistent ID yields
// NotFound with zero join-table side effects.
func (s *Service) RemoveOne(id string) (RemoveResult, error) {
	var (
		res RemoveResult
		wg  sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		affected, err := s.store.Delete(id)

		res.Affected = affected

		switch {
		case err != nil:
			res.RemoveErr = apperr.Store("failed to remove group", err)
		case affected == 0:
			res.RemoveErr = apperr.NotFound("group not found")
		}
	}()

	go func() {
		defer wg.Done()

		res.MembershipsRemoved, res.MembershipErr = s.memberships.RemoveAllByGroupID(id)
	}()

	wg.Wait()

	return res, res.Err()
}
