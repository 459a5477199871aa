package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Permission is a single access right a group grants its members.
type Permission string

// The enumerated permission values a group may carry.
const (
	PermissionRead        Permission = "READ"
	PermissionWrite       Permission = "WRITE"
	PermissionDelete      Permission = "DELETE"
	PermissionShare       Permission = "SHARE"
	PermissionUploadFiles Permission = "UPLOAD_FILES"
)

// ErrInvalidPermissionsValue is returned when a stored permissions column can
// not be decoded.
var ErrInvalidPermissionsValue = errors.New("invalid permissions column value")

// Valid reports whether the permission is one of the enumerated values.
func (p Permission) Valid() bool {
	switch p {
	case PermissionRead, PermissionWrite, PermissionDelete, PermissionShare, PermissionUploadFiles:
		return true
	default:
		return false
	}
}

// Permissions is the permission list of a group, persisted as a JSON-encoded
// text column so the model works across all supported database engines.
type Permissions []Permission

// DefaultPermissions is the permission list assigned to a new group when the
// caller provides none.
func DefaultPermissions() Permissions {
	return Permissions{PermissionRead}
}

// Value implements driver.Valuer.
func (p Permissions) Value() (driver.Value, error) {
	out, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return string(out), nil
}

// Scan implements sql.Scanner.
func (p *Permissions) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("%w: %T", ErrInvalidPermissionsValue, src)
	}
}

// Group represents a named set of permissions users can be members of.
// Unlike users, groups are hard-deleted: removing a group physically removes
// the row.
type Group struct {
	// ID is the unique identifier for the group, generated server-side.
	ID string `gorm:"primaryKey;size:100" json:"id"`
	// Name is the display name of the group (1-25 characters).
	Name string `gorm:"size:25;not null" json:"name"`
	// Permissions the group grants; defaults to [READ].
	Permissions Permissions `gorm:"type:text;not null" json:"permissions"`
}

// TableName specifies the database table name for the Group model.
func (Group) TableName() string {
	return "groups"
}
