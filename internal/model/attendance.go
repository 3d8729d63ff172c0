package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance records one punch-in/punch-out pair per user per day.
// Date is the UTC calendar day in YYYY-MM-DD form.
type Attendance struct {
	ID       string `gorm:"type:uuid;primaryKey"`
	UserID   string `gorm:"type:uuid;index:idx_attendance_user_date,unique"`
	Date     string `gorm:"index:idx_attendance_user_date,unique"`
	PunchIn  *time.Time
	PunchOut *time.Time
	Status   string `gorm:"default:Present"`
}

func (a *Attendance) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
