package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project groups tasks under an owner and a member list.
type Project struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	Title       string
	Description string
	OwnerID     string `gorm:"type:uuid;index"`
	StartDate   string
	EndDate     string
	Status      string `gorm:"default:Active"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProjectMember links a user to a project with a project-level role.
type ProjectMember struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	ProjectID string `gorm:"type:uuid;index"`
	UserID    string `gorm:"type:uuid;index"`
	Role      string `gorm:"default:Member"` // Manager for the creator
	CreatedAt time.Time
}

func (m *ProjectMember) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
