package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"antigravity-pm/internal/model"
)

// CalendarRepository manages calendar events.
type CalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) Create(ctx context.Context, event *model.CalendarEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create calendar event: %w", err)
	}
	return nil
}

func (r *CalendarRepository) ListByUser(ctx context.Context, userID string) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("start_time ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListStartingBetween returns events whose start_time falls inside [from, to].
// Start times are stored as RFC 3339 UTC strings, so the range compare works
// lexicographically the same way the hosted store filters them.
func (r *CalendarRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	if err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time <= ?",
			from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339)).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// SaveReminders persists the (possibly emptied) pending reminder list.
// The update goes through a struct so the JSON serializer on Reminders
// applies; a raw column update would store the bare element string.
func (r *CalendarRepository) SaveReminders(ctx context.Context, event *model.CalendarEvent) error {
	if err := r.db.WithContext(ctx).Model(event).
		Select("reminders").
		Updates(model.CalendarEvent{Reminders: event.Reminders}).Error; err != nil {
		return fmt.Errorf("save reminders: %w", err)
	}
	return nil
}
