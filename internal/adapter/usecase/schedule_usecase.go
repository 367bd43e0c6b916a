package usecase

import (
	"context"
	"fmt"
	"time"

	"simplymail/internal/core/domain"
	"simplymail/internal/core/port"
)

// ScheduleUseCase implements port.ScheduleUseCase. All preconditions are
// checked here, before the store write, so a bad request never reaches the
// schedule store.
type ScheduleUseCase struct {
	campaigns port.CampaignRepository
	schedules port.ScheduleRepository

	// now is swappable for tests.
	now func() time.Time
}

// NewScheduleUseCase wires the schedule coordinator.
func NewScheduleUseCase(campaigns port.CampaignRepository, schedules port.ScheduleRepository) *ScheduleUseCase {
	return &ScheduleUseCase{campaigns: campaigns, schedules: schedules, now: time.Now}
}

// Schedule validates and registers a future delivery for a draft campaign.
// Instants equal to or earlier than now are rejected: an already-due
// schedule could fire with state the caller has not observed yet.
func (u *ScheduleUseCase) Schedule(ctx context.Context, campaignID int64, at time.Time) (*domain.ScheduledDelivery, error) {
	if !at.After(u.now()) {
		return nil, fmt.Errorf("scheduled time must be in the future: %w", domain.ErrValidation)
	}
	c, err := u.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("campaign %d: %w", campaignID, domain.ErrNotFound)
	}
	existing, err := u.schedules.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	switch domain.ResolveStatus(*c, existing).Status {
	case domain.StatusSent:
		return nil, fmt.Errorf("campaign %d already sent: %w", campaignID, domain.ErrConflict)
	case domain.StatusScheduled:
		return nil, fmt.Errorf("campaign %d already has a pending schedule, cancel it first: %w", campaignID, domain.ErrConflict)
	}
	s := &domain.ScheduledDelivery{CampaignID: campaignID, ScheduledAt: at}
	if err := u.schedules.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	return s, nil
}

// Cancel removes a pending schedule, returning the campaign to draft. A
// schedule that already fired or never existed is reported as not found —
// the caller decides what to tell the user, nothing is swallowed here.
func (u *ScheduleUseCase) Cancel(ctx context.Context, scheduleID int64) error {
	ok, err := u.schedules.DeleteUnsent(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("cancel schedule: %w", err)
	}
	if !ok {
		return fmt.Errorf("schedule %d is gone or already fired: %w", scheduleID, domain.ErrNotFound)
	}
	return nil
}

// ListAll returns every schedule record, fired ones included.
func (u *ScheduleUseCase) ListAll(ctx context.Context) ([]domain.ScheduledDelivery, error) {
	return u.schedules.ListAll(ctx)
}

// ListByCampaign returns the schedule records referencing one campaign.
func (u *ScheduleUseCase) ListByCampaign(ctx context.Context, campaignID int64) ([]domain.ScheduledDelivery, error) {
	return u.schedules.ListByCampaign(ctx, campaignID)
}

var _ port.ScheduleUseCase = (*ScheduleUseCase)(nil)
