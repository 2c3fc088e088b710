package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/residence/internal/domain/models"
)

type fakeReporter struct {
	calls []time.Time
	err   error
}

func (f *fakeReporter) RunDailyReport(_ context.Context, date time.Time) (models.DailyReport, error) {
	f.calls = append(f.calls, date)
	return models.DailyReport{}, f.err
}

func TestScheduler_StartRejectsInvalidSchedule(t *testing.T) {
	s := NewScheduler("not a cron", time.UTC, &fakeReporter{}, nil)
	assert.Error(t, s.Start())
}

func TestScheduler_StartAndStop(t *testing.T) {
	s := NewScheduler("0 21 * * *", time.UTC, &fakeReporter{}, nil)
	require.NoError(t, s.Start())
	require.Len(t, s.cron.Entries(), 1)

	next := s.cron.Entries()[0].Next
	assert.Equal(t, 21, next.Hour())
	assert.Equal(t, 0, next.Minute())
	s.Stop()
}

func TestScheduler_SendDailyReport(t *testing.T) {
	fixed := time.Date(2026, 10, 18, 21, 0, 0, 0, time.UTC)

	reporter := &fakeReporter{}
	s := NewScheduler("0 21 * * *", time.UTC, reporter, nil)
	s.now = func() time.Time { return fixed }

	s.sendDailyReport()
	assert.Equal(t, []time.Time{fixed}, reporter.calls)

	reporter.err = errors.New("store down")
	assert.NotPanics(t, s.sendDailyReport)
	assert.Len(t, reporter.calls, 2)
}
