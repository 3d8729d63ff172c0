package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"antigravity-pm/internal/model"
)

func newCalendarRepo(t *testing.T) *CalendarRepository {
	t.Helper()
	db, err := NewDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	return NewCalendarRepository(db)
}

func TestSaveReminders_RoundTripsAsJSON(t *testing.T) {
	repo := newCalendarRepo(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	event := &model.CalendarEvent{
		UserID:    uuid.NewString(),
		Title:     "Kickoff",
		StartTime: start.Format(time.RFC3339),
		Reminders: []string{model.ReminderSameDay, model.ReminderOneDayBefore},
	}
	require.NoError(t, repo.Create(ctx, event))

	// Dropping one kind must leave the row readable: the column stores a
	// JSON array, so a single remaining element still deserializes.
	event.RemoveReminder(model.ReminderSameDay)
	require.NoError(t, repo.SaveReminders(ctx, event))

	events, err := repo.ListByUser(ctx, event.UserID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, []string{model.ReminderOneDayBefore}, events[0].Reminders)

	scanned, err := repo.ListStartingBetween(ctx, start.Add(-time.Hour), start.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, scanned, 1)
	require.Equal(t, []string{model.ReminderOneDayBefore}, scanned[0].Reminders)

	// Emptying the list must round-trip as well.
	event.RemoveReminder(model.ReminderOneDayBefore)
	require.NoError(t, repo.SaveReminders(ctx, event))

	events, err = repo.ListByUser(ctx, event.UserID)
	require.NoError(t, err)
	require.Empty(t, events[0].Reminders)
}

func TestSaveReminders_DoesNotTouchOtherEvents(t *testing.T) {
	repo := newCalendarRepo(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.NewString()

	fired := &model.CalendarEvent{
		UserID:    userID,
		Title:     "Fired",
		StartTime: start.Format(time.RFC3339),
		Reminders: []string{model.ReminderSameDay},
	}
	pending := &model.CalendarEvent{
		UserID:    userID,
		Title:     "Pending",
		StartTime: start.Format(time.RFC3339),
		Reminders: []string{model.ReminderOneDayBefore},
	}
	require.NoError(t, repo.Create(ctx, fired))
	require.NoError(t, repo.Create(ctx, pending))

	fired.RemoveReminder(model.ReminderSameDay)
	require.NoError(t, repo.SaveReminders(ctx, fired))

	events, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, e := range events {
		if e.ID == pending.ID {
			require.Equal(t, []string{model.ReminderOneDayBefore}, e.Reminders)
		}
	}
}
