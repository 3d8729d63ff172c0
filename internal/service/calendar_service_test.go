package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"antigravity-pm/internal/model"
	"antigravity-pm/internal/repository"
)

func TestCalendarService_CreateEventNormalisesStartTime(t *testing.T) {
	db, err := repository.NewDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	svc := NewCalendarService(repository.NewCalendarRepository(db))
	actor := &model.User{ID: uuid.NewString(), Role: model.RoleTeamMember}

	event, err := svc.CreateEvent(context.Background(), actor, "Standup",
		"2026-03-10T09:30:00", []string{model.ReminderSameDay, "every_minute"})
	require.NoError(t, err)
	require.Equal(t, "2026-03-10T09:30:00Z", event.StartTime)
	// Unknown reminder kinds are dropped on creation.
	require.Equal(t, []string{model.ReminderSameDay}, event.Reminders)
	require.Equal(t, actor.ID, event.UserID)

	_, err = svc.CreateEvent(context.Background(), actor, "", "2026-03-10T09:30:00Z", nil)
	require.Error(t, err)

	_, err = svc.CreateEvent(context.Background(), actor, "Bad time", "whenever", nil)
	require.Error(t, err)
}
