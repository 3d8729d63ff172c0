package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminder kinds a calendar event may request.
const (
	ReminderSameDay      = "same_day"
	ReminderOneDayBefore = "one_day_before"
)

// CalendarEvent is a user-created event with a list of pending reminders.
// A kind is removed from Reminders once it has fired, so the list only
// shrinks over the event's lifetime.
type CalendarEvent struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;index"`
	Title     string
	StartTime string   `gorm:"index"`
	Reminders []string `gorm:"serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *CalendarEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// HasReminder reports whether the given kind is still pending.
func (e *CalendarEvent) HasReminder(kind string) bool {
	for _, r := range e.Reminders {
		if r == kind {
			return true
		}
	}
	return false
}

// RemoveReminder drops one kind from the pending list.
func (e *CalendarEvent) RemoveReminder(kind string) {
	kept := e.Reminders[:0]
	for _, r := range e.Reminders {
		if r != kind {
			kept = append(kept, r)
		}
	}
	e.Reminders = kept
}
