package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"antigravity-pm/internal/model"
	"antigravity-pm/internal/repository"
)

// PunchResult reports which side of the punch pair was recorded.
type PunchResult struct {
	Message string            `json:"message"`
	Type    string            `json:"type"`
	Record  *model.Attendance `json:"data"`
}

// AttendanceService implements the daily punch-in/punch-out flow. Times are
// stored in UTC; the attendance date is the UTC calendar day.
type AttendanceService struct {
	repo *repository.AttendanceRepository
}

func NewAttendanceService(repo *repository.AttendanceRepository) *AttendanceService {
	return &AttendanceService{repo: repo}
}

func (s *AttendanceService) Today(ctx context.Context, userID string, now time.Time) (*model.Attendance, error) {
	record, err := s.repo.FindByUserAndDate(ctx, userID, now.UTC().Format("2006-01-02"))
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	return record, err
}

// Punch records a punch-in when no record exists for today, a punch-out when
// one does, and rejects a third punch.
func (s *AttendanceService) Punch(ctx context.Context, userID string, now time.Time) (*PunchResult, error) {
	now = now.UTC()
	today := now.Format("2006-01-02")

	record, err := s.repo.FindByUserAndDate(ctx, userID, today)
	switch {
	case err == gorm.ErrRecordNotFound:
		record = &model.Attendance{
			UserID:  userID,
			Date:    today,
			PunchIn: &now,
			Status:  "Present",
		}
		if err := s.repo.Create(ctx, record); err != nil {
			return nil, err
		}
		return &PunchResult{Message: "Punched In", Type: "in", Record: record}, nil

	case err != nil:
		return nil, err

	default:
		if record.PunchOut != nil {
			return nil, fmt.Errorf("already punched out for today")
		}
		record.PunchOut = &now
		record.Status = "Present"
		if err := s.repo.Save(ctx, record); err != nil {
			return nil, err
		}
		return &PunchResult{Message: "Punched Out", Type: "out", Record: record}, nil
	}
}

// History returns one month of records when month/year are given, otherwise
// the last 30 entries.
func (s *AttendanceService) History(ctx context.Context, userID string, month, year int) ([]model.Attendance, error) {
	if month >= 1 && month <= 12 && year > 0 {
		first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		return s.repo.ListHistory(ctx, userID,
			first.Format("2006-01-02"), last.Format("2006-01-02"), 0)
	}
	return s.repo.ListHistory(ctx, userID, "", "", 30)
}
