package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a user remark on a task.
type Comment struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	TaskID    string `gorm:"type:uuid;index"`
	UserID    string `gorm:"type:uuid"`
	Body      string
	CreatedAt time.Time
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
