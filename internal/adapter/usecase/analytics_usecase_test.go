package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplymail/internal/core/domain"
)

func TestCampaignAnalyticsZeroSentYieldsZeroRate(t *testing.T) {
	campaigns := &fakeCampaignRepo{}
	c := campaigns.add(domain.Campaign{Title: "t", Subtitle: "s"})
	u := NewAnalyticsUseCase(campaigns, newFakeDeliveryRepo(), &fakeSubscriberRepo{})

	snap, err := u.Campaign(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Zero(t, snap.TotalSent)
	assert.Zero(t, snap.TotalOpened)
	assert.Equal(t, float64(0), snap.OpenRate)
}

func TestCampaignAnalyticsRate(t *testing.T) {
	campaigns := &fakeCampaignRepo{}
	c := campaigns.add(domain.Campaign{Title: "t", Subtitle: "s"})
	deliveries := newFakeDeliveryRepo()
	deliveries.sent[c.ID] = 40
	deliveries.opened[c.ID] = 10
	u := NewAnalyticsUseCase(campaigns, deliveries, &fakeSubscriberRepo{})

	snap, err := u.Campaign(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40), snap.TotalSent)
	assert.Equal(t, int64(10), snap.TotalOpened)
	assert.InDelta(t, 25.0, snap.OpenRate, 1e-9)
}

func TestCampaignAnalyticsUnknownCampaign(t *testing.T) {
	u := NewAnalyticsUseCase(&fakeCampaignRepo{}, newFakeDeliveryRepo(), &fakeSubscriberRepo{})

	_, err := u.Campaign(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Ten campaigns, six sent with known recipient counts: the fleet snapshot
// counts all ten newsletters while the rate uses only the terminal six.
func TestDashboardCountsAllCampaignsButRatesOnlySent(t *testing.T) {
	campaigns := &fakeCampaignRepo{}
	deliveries := newFakeDeliveryRepo()
	sentAt := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	recipients := []int{10, 20, 30, 0, 5, 15}
	for _, n := range recipients {
		at := sentAt
		c := campaigns.add(domain.Campaign{Title: "t", Subtitle: "s", SentAt: &at, TotalRecipients: &n})
		deliveries.sent[c.ID] = int64(n)
		deliveries.opened[c.ID] = int64(n / 2)
	}
	for i := 0; i < 4; i++ {
		campaigns.add(domain.Campaign{Title: "draft", Subtitle: "s"})
	}

	subs := &fakeSubscriberRepo{counts: domain.SubscriberCounts{TotalSubscribed: 80, TotalUnsubscribed: 7}}
	u := NewAnalyticsUseCase(campaigns, deliveries, subs)

	snap, err := u.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), snap.NewsletterCount)
	assert.Equal(t, int64(80), snap.TotalEmailsSent)
	// opened = 5+10+15+0+2+7 = 39 of 80 delivered
	assert.InDelta(t, float64(39)/80*100, snap.OverallOpenRate, 1e-9)
	assert.Equal(t, int64(80), snap.TotalSubscribed)
	assert.Equal(t, int64(7), snap.TotalUnsubscribed)
}

func TestDashboardEmptyFleet(t *testing.T) {
	u := NewAnalyticsUseCase(&fakeCampaignRepo{}, newFakeDeliveryRepo(), &fakeSubscriberRepo{})

	snap, err := u.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, snap.NewsletterCount)
	assert.Equal(t, float64(0), snap.OverallOpenRate)
}

func TestLatestSentBreaksTiesByHighestID(t *testing.T) {
	campaigns := &fakeCampaignRepo{}
	sentAt := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	earlier := sentAt.Add(-time.Hour)

	a := sentAt
	b := sentAt
	e := earlier
	campaigns.add(domain.Campaign{Title: "first", Subtitle: "s", SentAt: &a})
	tied := campaigns.add(domain.Campaign{Title: "second", Subtitle: "s", SentAt: &b})
	campaigns.add(domain.Campaign{Title: "older", Subtitle: "s", SentAt: &e})
	campaigns.add(domain.Campaign{Title: "draft", Subtitle: "s"})

	u := NewAnalyticsUseCase(campaigns, newFakeDeliveryRepo(), &fakeSubscriberRepo{})
	latest, err := u.LatestSent(context.Background())
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, tied.ID, latest.ID)
}

func TestLatestSentNilWhenNothingSent(t *testing.T) {
	campaigns := &fakeCampaignRepo{}
	campaigns.add(domain.Campaign{Title: "draft", Subtitle: "s"})

	u := NewAnalyticsUseCase(campaigns, newFakeDeliveryRepo(), &fakeSubscriberRepo{})
	latest, err := u.LatestSent(context.Background())
	require.NoError(t, err)
	assert.Nil(t, latest)
}
