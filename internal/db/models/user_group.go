package models

// UserGroup represents the many-to-many relationship between users and groups.
// A row may only exist while both referenced rows exist. Only the membership
// service writes this table.
type UserGroup struct {
	// UserID is the ID of the user in this membership.
	UserID string `gorm:"primaryKey;column:user_id;size:100" json:"userId"`
	// GroupID is the ID of the group in this membership.
	GroupID string `gorm:"primaryKey;column:group_id;size:100" json:"groupId"`
	// User is the associated user (loaded via foreign key).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	// Group is the associated group (loaded via foreign key).
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the database table name for the UserGroup model.
func (UserGroup) TableName() string {
	return "user_group"
}
