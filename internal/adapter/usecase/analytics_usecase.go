package usecase

import (
	"context"
	"fmt"

	"simplymail/internal/core/domain"
	"simplymail/internal/core/port"
)

// AnalyticsUseCase implements port.AnalyticsUseCase. Every snapshot is
// recomputed from the stores on the call; nothing is cached or mutated in
// place.
type AnalyticsUseCase struct {
	campaigns   port.CampaignRepository
	deliveries  port.DeliveryRepository
	subscribers port.SubscriberRepository
}

// NewAnalyticsUseCase wires the analytics aggregator.
func NewAnalyticsUseCase(campaigns port.CampaignRepository, deliveries port.DeliveryRepository, subscribers port.SubscriberRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{campaigns: campaigns, deliveries: deliveries, subscribers: subscribers}
}

// Campaign returns the per-campaign snapshot.
func (u *AnalyticsUseCase) Campaign(ctx context.Context, campaignID int64) (*port.CampaignAnalytics, error) {
	c, err := u.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("campaign %d: %w", campaignID, domain.ErrNotFound)
	}
	sent, opened, err := u.deliveries.CampaignCounts(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign counts: %w", err)
	}
	snap := aggregate(sent, opened)
	return &snap, nil
}

// Dashboard returns the fleet-wide snapshot. Unsent campaigns carry no
// delivery rows, so they cannot skew the rate, but they do count toward
// NewsletterCount.
func (u *AnalyticsUseCase) Dashboard(ctx context.Context) (*port.DashboardAnalytics, error) {
	campaigns, err := u.campaigns.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	sent, opened, err := u.deliveries.TotalCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("total counts: %w", err)
	}
	counts, err := u.subscribers.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscriber counts: %w", err)
	}
	fleet := aggregate(sent, opened)
	return &port.DashboardAnalytics{
		TotalEmailsSent:   fleet.TotalSent,
		OverallOpenRate:   fleet.OpenRate,
		NewsletterCount:   int64(len(campaigns)),
		TotalSubscribed:   counts.TotalSubscribed,
		TotalUnsubscribed: counts.TotalUnsubscribed,
	}, nil
}

// LatestSent picks the default campaign for detail views: latest sentAt
// first, ties broken by the highest id so the most recently created
// campaign wins. Store return order is deliberately not trusted.
func (u *AnalyticsUseCase) LatestSent(ctx context.Context) (*domain.Campaign, error) {
	campaigns, err := u.campaigns.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	var latest *domain.Campaign
	for i := range campaigns {
		c := &campaigns[i]
		if c.SentAt == nil {
			continue
		}
		if latest == nil ||
			c.SentAt.After(*latest.SentAt) ||
			(c.SentAt.Equal(*latest.SentAt) && c.ID > latest.ID) {
			latest = c
		}
	}
	return latest, nil
}

// aggregate folds raw counts into a snapshot. A zero sent count yields a
// zero rate rather than dividing by zero.
func aggregate(sent, opened int64) port.CampaignAnalytics {
	snap := port.CampaignAnalytics{TotalSent: sent, TotalOpened: opened}
	if sent > 0 {
		snap.OpenRate = float64(opened) / float64(sent) * 100
	}
	return snap
}

var _ port.AnalyticsUseCase = (*AnalyticsUseCase)(nil)
