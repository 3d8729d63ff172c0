package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"antigravity-pm/internal/repository"
)

func newAttendanceService(t *testing.T) *AttendanceService {
	t.Helper()
	db, err := repository.NewDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	return NewAttendanceService(repository.NewAttendanceRepository(db))
}

func TestAttendance_PunchInThenOut(t *testing.T) {
	svc := newAttendanceService(t)
	ctx := context.Background()
	userID := uuid.NewString()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	record, err := svc.Today(ctx, userID, now)
	require.NoError(t, err)
	require.Nil(t, record)

	in, err := svc.Punch(ctx, userID, now)
	require.NoError(t, err)
	require.Equal(t, "in", in.Type)
	require.NotNil(t, in.Record.PunchIn)
	require.Nil(t, in.Record.PunchOut)
	require.Equal(t, "2026-03-10", in.Record.Date)

	out, err := svc.Punch(ctx, userID, now.Add(8*time.Hour))
	require.NoError(t, err)
	require.Equal(t, "out", out.Type)
	require.NotNil(t, out.Record.PunchOut)

	_, err = svc.Punch(ctx, userID, now.Add(9*time.Hour))
	require.Error(t, err)

	record, err = svc.Today(ctx, userID, now)
	require.NoError(t, err)
	require.NotNil(t, record)
}

func TestAttendance_HistoryMonthFilter(t *testing.T) {
	svc := newAttendanceService(t)
	ctx := context.Background()
	userID := uuid.NewString()

	march := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	_, err := svc.Punch(ctx, userID, march)
	require.NoError(t, err)
	_, err = svc.Punch(ctx, userID, april)
	require.NoError(t, err)

	records, err := svc.History(ctx, userID, 3, 2026)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "2026-03-05", records[0].Date)

	records, err = svc.History(ctx, userID, 0, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
}
