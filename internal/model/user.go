package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles known to the application. Visibility checks compare against RoleAdmin;
// everything else is treated as a regular team member.
const (
	RoleAdmin      = "Admin"
	RoleTeamMember = "Team Member"
)

// User is a workspace member.
type User struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Email        string `gorm:"uniqueIndex"`
	FullName     string
	AvatarURL    string
	PasswordHash string
	Role         string `gorm:"default:Team Member"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
