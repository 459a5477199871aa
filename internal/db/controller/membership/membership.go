// Package membership provides the gorm-backed store for the user-group join
// table. It is the only place join rows are written.
package membership

import (
	"errors"

	"gorm.io/gorm"

	"github.com/userhub/userhub/internal/db/models"
)

var (
	// ErrGroupNotFound is returned when the target group of a batch insert
	// does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNilDB is returned when the database connection is nil.
	ErrNilDB = errors.New("database connection is nil")
)

// Store implements membership persistence on top of gorm.
type Store struct {
	db *gorm.DB
}

// NewStore creates a membership store.
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, ErrNilDB
	}

	return &Store{db: db}, nil
}

// GetAll retrieves all membership rows.
func (s *Store) GetAll() ([]models.UserGroup, error) {
	var memberships []models.UserGroup

	if result := s.db.Find(&memberships); result.Error != nil {
		return nil, result.Error
	}

	return memberships, nil
}

// AddUsersToGroup inserts one join row per user ID inside a single
// transaction. The group is looked up within the same transaction; a missing
// group aborts the batch, as does any individual insert failure (for example
// a foreign key violation on an unknown user ID). Either all rows are
// committed or none.
func (s *Store) AddUsersToGroup(userIDs []string, groupID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var group models.Group

		if err := tx.Where("id = ?", groupID).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}

			return err
		}

		for _, userID := range userIDs {
			row := models.UserGroup{
				UserID:  userID,
				GroupID: group.ID,
			}

			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// RemoveAllByUserID deletes every join row of the given user and returns the
// number of rows removed.
func (s *Store) RemoveAllByUserID(id string) (int64, error) {
	result := s.db.Where("user_id = ?", id).Delete(&models.UserGroup{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// RemoveAllByGroupID deletes every join row of the given group and returns
// the number of rows removed.
func (s *Store) RemoveAllByGroupID(id string) (int64, error) {
	result := s.db.Where("group_id = ?", id).Delete(&models.UserGroup{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
