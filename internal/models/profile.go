package models

import (
	"strings"
	"time"
)

// ProfileRole defines the access level of a user profile.
type ProfileRole string

const (
	// ProfileRoleUser is a regular end user.
	ProfileRoleUser ProfileRole = "user"
	// ProfileRoleAdmin may review, edit and delete any request.
	ProfileRoleAdmin ProfileRole = "admin"
)

// Profile holds display identity for a user. The ID matches the identity
// provider's user id; rows are read-only from this service's point of view
// except for the development bootstrap.
type Profile struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	FirstName string      `gorm:"size:80" json:"first_name"`
	LastName  string      `gorm:"size:80" json:"last_name"`
	Email     string      `gorm:"size:200;uniqueIndex" json:"email"`
	Phone     string      `gorm:"size:40" json:"phone"`
	AvatarURL string      `json:"avatar_url"`
	Role      ProfileRole `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	// Password is only set for development bootstrap accounts.
	Password  string    `gorm:"size:100" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Profile) TableName() string {
	return "profiles"
}

// FullName joins first and last name, trimming when either is empty.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// IsAdmin reports whether the profile has the admin role.
func (p Profile) IsAdmin() bool {
	return p.Role == ProfileRoleAdmin
}
