package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"antigravity-pm/internal/model"
)

// AttendanceRepository stores daily punch records.
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) FindByUserAndDate(ctx context.Context, userID, date string) (*model.Attendance, error) {
	var record model.Attendance
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *AttendanceRepository) Create(ctx context.Context, record *model.Attendance) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) Save(ctx context.Context, record *model.Attendance) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("save attendance: %w", err)
	}
	return nil
}

// ListHistory returns attendance for a user, either inside [fromDate, toDate]
// (YYYY-MM-DD, inclusive) or the most recent `limit` rows when the range is
// empty.
func (r *AttendanceRepository) ListHistory(ctx context.Context, userID, fromDate, toDate string, limit int) ([]model.Attendance, error) {
	var records []model.Attendance
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC")
	if fromDate != "" && toDate != "" {
		q = q.Where("date >= ? AND date <= ?", fromDate, toDate)
	} else if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
