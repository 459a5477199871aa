// Package group provides the gorm-backed store for group records.
package group

import (
	"errors"

	"gorm.io/gorm"

	"github.com/userhub/userhub/internal/db/models"
)

const (
	idQueryPattern = "id = ?"
)

var (
	// ErrGroupNotFound is returned when a group is not found.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNilDB is returned when the database connection is nil.
	ErrNilDB = errors.New("database connection is nil")
)

// Store implements group persistence on top of gorm.
type Store struct {
	db *gorm.DB
}

// NewStore creates a group store.
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, ErrNilDB
	}

	return &Store{db: db}, nil
}

// GetAll retrieves all groups.
func (s *Store) GetAll() ([]models.Group, error) {
	var groups []models.Group

	if result := s.db.Find(&groups); result.Error != nil {
		return nil, result.Error
	}

	return groups, nil
}

// GetByID retrieves a group by its ID.
func (s *Store) GetByID(id string) (*models.Group, error) {
	var group models.Group

	result := s.db.Where(idQueryPattern, id).First(&group)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}

		return nil, result.Error
	}

	return &group, nil
}

// Create persists a new group record.
func (s *Store) Create(group *models.Group) error {
	return s.db.Create(group).Error
}

// Update applies a partial update to the group with the given ID. It returns
// the number of rows affected and the record after the update.
func (s *Store) Update(id string, fields map[string]any) (int64, *models.Group, error) {
	// a partial update with no fields changes nothing; return the record as is
	if len(fields) == 0 {
		group, err := s.GetByID(id)
		if err != nil {
			return 0, nil, err
		}

		return 1, group, nil
	}

	result := s.db.Model(&models.Group{}).Where(idQueryPattern, id).Updates(fields)
	if result.Error != nil {
		return 0, nil, result.Error
	}

	if result.RowsAffected == 0 {
		return 0, nil, ErrGroupNotFound
	}

	var group models.Group
	if err := s.db.Where(idQueryPattern, id).First(&group).Error; err != nil {
		return result.RowsAffected, nil, err
	}

	return result.RowsAffected, &group, nil
}

// Delete physically removes the group with the given ID and returns the
// number of rows removed.
func (s *Store) Delete(id string) (int64, error) {
	result := s.db.Where(idQueryPattern, id).Delete(&models.Group{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
