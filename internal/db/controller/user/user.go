// Package user provides the gorm-backed store for user records.
package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/userhub/userhub/internal/db/models"
)

const (
	idQueryPattern    = "id = ?"
	loginQueryPattern = "login = ?"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrNilDB is returned when the database connection is nil.
	ErrNilDB = errors.New("database connection is nil")
)

// Store implements user persistence on top of gorm.
type Store struct {
	db *gorm.DB
}

// NewStore creates a user store.
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, ErrNilDB
	}

	return &Store{db: db}, nil
}

// GetAll retrieves all users. When includeDeleted is false soft-deleted
// records are filtered out.
func (s *Store) GetAll(includeDeleted bool) ([]models.User, error) {
	var users []models.User

	tx := s.db
	if !includeDeleted {
		tx = tx.Where("is_deleted = ?", false)
	}

	if result := tx.Find(&users); result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// GetByID retrieves a user by its ID.
func (s *Store) GetByID(id string, includeDeleted bool) (*models.User, error) {
	var user models.User

	tx := s.db.Where(idQueryPattern, id)
	if !includeDeleted {
		tx = tx.Where("is_deleted = ?", false)
	}

	result := tx.First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &user, nil
}

// GetByLogin retrieves a user by its login name.
func (s *Store) GetByLogin(login string) (*models.User, error) {
	var user models.User

	result := s.db.Where(loginQueryPattern, login).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &user, nil
}

// Create persists a new user record.
func (s *Store) Create(user *models.User) error {
	return s.db.Create(user).Error
}

// Update applies a partial update to the user with the given ID. Fields
// absent from the map are retained. It returns the number of rows affected
// and the record after the update.
func (s *Store) Update(id string, fields map[string]any) (int64, *models.User, error) {
	// a partial update with no fields changes nothing; return the record as is
	if len(fields) == 0 {
		user, err := s.GetByID(id, true)
		if err != nil {
			return 0, nil, err
		}

		return 1, user, nil
	}

	result := s.db.Model(&models.User{}).Where(idQueryPattern, id).Updates(fields)
	if result.Error != nil {
		return 0, nil, result.Error
	}

	if result.RowsAffected == 0 {
		return 0, nil, ErrUserNotFound
	}

	var user models.User
	if err := s.db.Where(idQueryPattern, id).First(&user).Error; err != nil {
		return result.RowsAffected, nil, err
	}

	return result.RowsAffected, &user, nil
}

// SuggestLogins returns the logins containing substr (case-insensitive),
// sorted ascending case-insensitively and capped at limit. A query without
// matches yields an empty slice, not an error.
func (s *Store) SuggestLogins(substr string, limit int) ([]string, error) {
	logins := []string{}

	if limit <= 0 {
		return logins, nil
	}

	result := s.db.Model(&models.User{}).
		Where("lower(login) LIKE ?", "%"+strings.ToLower(substr)+"%").
		Order("lower(login) ASC").
		Limit(limit).
		Pluck("login", &logins)
	if result.Error != nil {
		return nil, result.Error
	}

	return logins, nil
}
