package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"simplymail/internal/core/domain"
	"simplymail/internal/core/port"
)

// CampaignUseCase implements port.CampaignUseCase. Reads join the campaign
// store with the schedule store and resolve the effective status on the fly;
// writes check the resolved status before touching anything.
type CampaignUseCase struct {
	campaigns  port.CampaignRepository
	schedules  port.ScheduleRepository
	dispatcher port.Dispatcher
	validate   *validator.Validate
}

// NewCampaignUseCase wires the campaign usecase.
func NewCampaignUseCase(campaigns port.CampaignRepository, schedules port.ScheduleRepository, dispatcher port.Dispatcher) *CampaignUseCase {
	return &CampaignUseCase{
		campaigns:  campaigns,
		schedules:  schedules,
		dispatcher: dispatcher,
		validate:   validator.New(),
	}
}

// Create validates and stores a new draft campaign.
func (u *CampaignUseCase) Create(ctx context.Context, in port.CampaignInput) (*domain.Campaign, error) {
	if err := u.checkInput(&in); err != nil {
		return nil, err
	}
	c := &domain.Campaign{
		Title:     in.Title,
		Subtitle:  in.Subtitle,
		Content:   in.Content,
		MediaKind: in.MediaKind,
		MediaURL:  in.MediaURL,
	}
	if err := u.campaigns.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return c, nil
}

// Get returns one campaign with its resolved status.
func (u *CampaignUseCase) Get(ctx context.Context, id int64) (*port.CampaignView, error) {
	c, schedules, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &port.CampaignView{Campaign: *c, StatusInfo: domain.ResolveStatus(*c, schedules)}, nil
}

// List returns all campaigns with their resolved statuses. The campaign and
// schedule stores are fetched independently; ResolveStatus absorbs any
// transient disagreement between the two.
func (u *CampaignUseCase) List(ctx context.Context) ([]port.CampaignView, error) {
	campaigns, err := u.campaigns.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	schedules, err := u.schedules.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	views := make([]port.CampaignView, len(campaigns))
	for i, c := range campaigns {
		views[i] = port.CampaignView{Campaign: c, StatusInfo: domain.ResolveStatus(c, schedules)}
	}
	return views, nil
}

// Update edits a draft campaign in place.
func (u *CampaignUseCase) Update(ctx context.Context, id int64, in port.CampaignInput) (*domain.Campaign, error) {
	if err := u.checkInput(&in); err != nil {
		return nil, err
	}
	c, schedules, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	switch domain.ResolveStatus(*c, schedules).Status {
	case domain.StatusSent:
		return nil, fmt.Errorf("campaign %d already sent: %w", id, domain.ErrConflict)
	case domain.StatusScheduled:
		return nil, fmt.Errorf("campaign %d is scheduled, cancel the schedule first: %w", id, domain.ErrConflict)
	}
	c.Title = in.Title
	c.Subtitle = in.Subtitle
	c.Content = in.Content
	c.MediaKind = in.MediaKind
	c.MediaURL = in.MediaURL
	if err := u.campaigns.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update campaign: %w", err)
	}
	return c, nil
}

// Delete removes the campaign. Schedules and delivery records go with it via
// the store's cascade, so no stale schedule can resurrect the campaign's
// status and no orphaned analytics remain.
func (u *CampaignUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := u.campaigns.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	if !ok {
		return fmt.Errorf("campaign %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SendNow queues the campaign for immediate delivery. See the port contract:
// acceptance here does not mean delivery; SentAt is stamped by the
// dispatcher and shows up on a later read.
func (u *CampaignUseCase) SendNow(ctx context.Context, id int64) error {
	c, schedules, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	switch domain.ResolveStatus(*c, schedules).Status {
	case domain.StatusSent:
		return fmt.Errorf("campaign %d already sent: %w", id, domain.ErrConflict)
	case domain.StatusScheduled:
		return fmt.Errorf("campaign %d is scheduled, cancel the schedule first: %w", id, domain.ErrConflict)
	}
	if err := u.dispatcher.Enqueue(port.SendJob{CampaignID: id}); err != nil {
		return fmt.Errorf("enqueue send: %w", err)
	}
	return nil
}

func (u *CampaignUseCase) load(ctx context.Context, id int64) (*domain.Campaign, []domain.ScheduledDelivery, error) {
	c, err := u.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get campaign: %w", err)
	}
	if c == nil {
		return nil, nil, fmt.Errorf("campaign %d: %w", id, domain.ErrNotFound)
	}
	schedules, err := u.schedules.ListByCampaign(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list schedules: %w", err)
	}
	return c, schedules, nil
}

func (u *CampaignUseCase) checkInput(in *port.CampaignInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	if err := u.validate.Struct(in); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	return nil
}

var _ port.CampaignUseCase = (*CampaignUseCase)(nil)
