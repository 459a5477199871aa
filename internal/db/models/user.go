package models

import (
	"crypto/subtle"
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// argon2idPrefix marks a stored password as an argon2id hash instead of a
// legacy plaintext value.
const argon2idPrefix = "$argon2id$"

// User represents a user account in the system.
// Deleting a user is a soft operation: the record stays in the table with
// IsDeleted set, it is never physically removed through the public API.
type User struct {
	// ID is the unique identifier for the user, generated server-side and
	// immutable after creation.
	ID string `gorm:"primaryKey;size:100" json:"id"`
	// Login is the user's login name (1-25 characters).
	Login string `gorm:"size:25;not null" json:"login"`
	// Password is the stored credential. Legacy rows hold the plain value,
	// new deployments may store an argon2id hash; VerifyPassword handles both.
	Password string `gorm:"size:255;not null" json:"password"`
	// Age of the user (4-130).
	Age int `gorm:"not null" json:"age"`
	// IsDeleted marks the user as soft-deleted.
	IsDeleted bool `gorm:"column:is_deleted;not null;default:false" json:"isDeleted"`
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// It uses the default Argon2id parameters for secure password hashing.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored
// credential. This is the single place password comparison happens: hashed
// values are verified with argon2id, legacy plaintext values with a
// constant-time comparison.
func (u *User) VerifyPassword(password string) bool {
	if strings.HasPrefix(u.Password, argon2idPrefix) {
		match, err := argon2id.ComparePasswordAndHash(password, u.Password)
		if err != nil {
			log.Error().Msgf("failed to verify password: %v", err)
			return false
		}

		return match
	}

	return subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1
}
