package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchedulerService_RejectsNonPositiveInterval(t *testing.T) {
	s := NewSchedulerService(time.UTC)
	_, err := s.ScheduleInterval(0, func() {})
	require.Error(t, err)
	_, err = s.ScheduleInterval(-time.Second, func() {})
	require.Error(t, err)
}

func TestSchedulerService_RunsIntervalJob(t *testing.T) {
	s := NewSchedulerService(time.UTC)

	var runs int32
	_, err := s.ScheduleInterval(time.Second, func() {
		atomic.AddInt32(&runs, 1)
	})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&runs) >= 1
	}, 3*time.Second, 50*time.Millisecond)
}
