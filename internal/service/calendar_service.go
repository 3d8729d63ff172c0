package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"antigravity-pm/internal/model"
	"antigravity-pm/internal/repository"
)

// CalendarService manages user-created calendar events and their pending
// reminder lists.
type CalendarService struct {
	repo *repository.CalendarRepository
}

func NewCalendarService(repo *repository.CalendarRepository) *CalendarService {
	return &CalendarService{repo: repo}
}

// CreateEvent stores an event with the caller-provided pending reminders.
// The start time is normalised to RFC 3339 UTC so the reminder engine's
// range scans stay consistent.
func (s *CalendarService) CreateEvent(ctx context.Context, actor *model.User, title, startTime string, reminders []string) (*model.CalendarEvent, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	start, err := parseTimestamp(startTime)
	if err != nil {
		return nil, fmt.Errorf("parse start_time %q: %w", startTime, err)
	}

	valid := make([]string, 0, len(reminders))
	for _, kind := range reminders {
		if kind == model.ReminderSameDay || kind == model.ReminderOneDayBefore {
			valid = append(valid, kind)
		}
	}

	event := model.CalendarEvent{
		UserID:    actor.ID,
		Title:     title,
		StartTime: start.UTC().Format(time.RFC3339),
		Reminders: valid,
	}
	if err := s.repo.Create(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *CalendarService) ListEvents(ctx context.Context, actor *model.User) ([]model.CalendarEvent, error) {
	return s.repo.ListByUser(ctx, actor.ID)
}
