package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses. Completed is terminal and excludes the task from deadline scans.
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Task represents a unit of work, optionally attached to a project.
//
// Deadline is kept as the raw ISO-8601 string the store delivers; values
// without a zone are interpreted as UTC by the reminder engine. ReminderSent
// and OverdueNotified are one-way flags owned by the reminder engine: once
// true they are never reset.
type Task struct {
	ID              string  `gorm:"type:uuid;primaryKey"`
	ProjectID       *string `gorm:"type:uuid;index"`
	Title           string
	Description     string
	Priority        string `gorm:"default:Medium"`
	Status          string `gorm:"default:To Do"`
	Deadline        *string
	AssignedTo      *string `gorm:"type:uuid;index"`
	CreatedBy       string  `gorm:"type:uuid"`
	ReminderSent    bool    `gorm:"default:false"`
	OverdueNotified bool    `gorm:"default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
