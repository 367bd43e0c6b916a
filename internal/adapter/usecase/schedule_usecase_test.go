package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplymail/internal/core/domain"
)

func newScheduleFixture(t *testing.T) (*ScheduleUseCase, *fakeCampaignRepo, *fakeScheduleRepo, time.Time) {
	t.Helper()
	campaigns := &fakeCampaignRepo{}
	schedules := &fakeScheduleRepo{}
	u := NewScheduleUseCase(campaigns, schedules)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	u.now = func() time.Time { return now }
	return u, campaigns, schedules, now
}

func TestScheduleRejectsPastAndPresentInstants(t *testing.T) {
	u, campaigns, _, now := newScheduleFixture(t)
	c := campaigns.add(domain.Campaign{Title: "Weekly"})

	for _, at := range []time.Time{now.Add(-time.Minute), now} {
		_, err := u.Schedule(context.Background(), c.ID, at)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestScheduleRejectsUnknownCampaign(t *testing.T) {
	u, _, _, now := newScheduleFixture(t)

	_, err := u.Schedule(context.Background(), 404, now.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScheduleRejectsSentCampaign(t *testing.T) {
	u, campaigns, _, now := newScheduleFixture(t)
	sentAt := now.Add(-24 * time.Hour)
	c := campaigns.add(domain.Campaign{Title: "Weekly", SentAt: &sentAt})

	_, err := u.Schedule(context.Background(), c.ID, now.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestScheduleRejectsSecondPendingSchedule(t *testing.T) {
	u, campaigns, _, now := newScheduleFixture(t)
	c := campaigns.add(domain.Campaign{Title: "Weekly"})

	_, err := u.Schedule(context.Background(), c.ID, now.Add(time.Hour))
	require.NoError(t, err)

	_, err = u.Schedule(context.Background(), c.ID, now.Add(2*time.Hour))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCancelMissingScheduleIsReported(t *testing.T) {
	u, _, _, _ := newScheduleFixture(t)

	err := u.Cancel(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelFiredScheduleIsReported(t *testing.T) {
	u, campaigns, schedules, now := newScheduleFixture(t)
	c := campaigns.add(domain.Campaign{Title: "Weekly"})
	s, err := u.Schedule(context.Background(), c.ID, now.Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, schedules.MarkSent(context.Background(), s.ID))

	err = u.Cancel(context.Background(), s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Draft -> schedule -> scheduled -> cancel -> draft again.
func TestScheduleCancelLifecycle(t *testing.T) {
	u, campaigns, schedules, now := newScheduleFixture(t)
	c := campaigns.add(domain.Campaign{Title: "Launch issue"})

	s, err := u.Schedule(context.Background(), c.ID, now.Add(time.Hour))
	require.NoError(t, err)
	require.NotZero(t, s.ID)

	records, err := schedules.ListByCampaign(context.Background(), c.ID)
	require.NoError(t, err)
	info := domain.ResolveStatus(c, records)
	assert.Equal(t, domain.StatusScheduled, info.Status)
	require.NotNil(t, info.ScheduledAt)
	assert.True(t, info.ScheduledAt.Equal(now.Add(time.Hour)))

	require.NoError(t, u.Cancel(context.Background(), s.ID))

	records, err = schedules.ListByCampaign(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, domain.ResolveStatus(c, records).Status)
}
