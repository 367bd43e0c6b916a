package usecase

import (
	"context"
	"time"

	"simplymail/internal/core/domain"
	"simplymail/internal/core/port"
)

// In-memory fakes for the outbound ports. They keep records in insertion
// order and assign ids monotonically, like the real store does.

type fakeCampaignRepo struct {
	campaigns []domain.Campaign
	nextID    int64
}

func (f *fakeCampaignRepo) add(c domain.Campaign) domain.Campaign {
	f.nextID++
	c.ID = f.nextID
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	f.campaigns = append(f.campaigns, c)
	return c
}

func (f *fakeCampaignRepo) Create(_ context.Context, c *domain.Campaign) error {
	*c = f.add(*c)
	return nil
}

func (f *fakeCampaignRepo) GetByID(_ context.Context, id int64) (*domain.Campaign, error) {
	for _, c := range f.campaigns {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCampaignRepo) List(_ context.Context) ([]domain.Campaign, error) {
	out := make([]domain.Campaign, len(f.campaigns))
	copy(out, f.campaigns)
	return out, nil
}

func (f *fakeCampaignRepo) Update(_ context.Context, c *domain.Campaign) error {
	for i := range f.campaigns {
		if f.campaigns[i].ID == c.ID {
			f.campaigns[i] = *c
			return nil
		}
	}
	return nil
}

func (f *fakeCampaignRepo) MarkSent(_ context.Context, id int64, sentAt time.Time, totalRecipients int) (bool, error) {
	for i := range f.campaigns {
		if f.campaigns[i].ID == id {
			if f.campaigns[i].SentAt != nil {
				return false, nil
			}
			f.campaigns[i].SentAt = &sentAt
			f.campaigns[i].TotalRecipients = &totalRecipients
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCampaignRepo) Delete(_ context.Context, id int64) (bool, error) {
	for i := range f.campaigns {
		if f.campaigns[i].ID == id {
			f.campaigns = append(f.campaigns[:i], f.campaigns[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeScheduleRepo struct {
	schedules []domain.ScheduledDelivery
	nextID    int64
}

func (f *fakeScheduleRepo) Create(_ context.Context, s *domain.ScheduledDelivery) error {
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	f.schedules = append(f.schedules, *s)
	return nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.ScheduledDelivery, error) {
	for _, s := range f.schedules {
		if s.ID == id {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepo) ListAll(_ context.Context) ([]domain.ScheduledDelivery, error) {
	out := make([]domain.ScheduledDelivery, len(f.schedules))
	copy(out, f.schedules)
	return out, nil
}

func (f *fakeScheduleRepo) ListByCampaign(_ context.Context, campaignID int64) ([]domain.ScheduledDelivery, error) {
	var out []domain.ScheduledDelivery
	for _, s := range f.schedules {
		if s.CampaignID == campaignID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListDue(_ context.Context, now time.Time) ([]domain.ScheduledDelivery, error) {
	var out []domain.ScheduledDelivery
	for _, s := range f.schedules {
		if !s.Sent && !s.ScheduledAt.After(now) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) DeleteUnsent(_ context.Context, id int64) (bool, error) {
	for i, s := range f.schedules {
		if s.ID == id && !s.Sent {
			f.schedules = append(f.schedules[:i], f.schedules[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleRepo) MarkSent(_ context.Context, id int64) error {
	for i := range f.schedules {
		if f.schedules[i].ID == id {
			f.schedules[i].Sent = true
		}
	}
	return nil
}

type fakeDeliveryRepo struct {
	sent   map[int64]int64
	opened map[int64]int64
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{sent: map[int64]int64{}, opened: map[int64]int64{}}
}

func (f *fakeDeliveryRepo) CreateBatch(_ context.Context, deliveries []domain.Delivery) error {
	for _, d := range deliveries {
		f.sent[d.CampaignID]++
	}
	return nil
}

func (f *fakeDeliveryRepo) MarkOpened(_ context.Context, _ string, _ time.Time) (bool, error) {
	return false, nil
}

func (f *fakeDeliveryRepo) CampaignCounts(_ context.Context, campaignID int64) (int64, int64, error) {
	return f.sent[campaignID], f.opened[campaignID], nil
}

func (f *fakeDeliveryRepo) TotalCounts(_ context.Context) (int64, int64, error) {
	var sent, opened int64
	for _, n := range f.sent {
		sent += n
	}
	for _, n := range f.opened {
		opened += n
	}
	return sent, opened, nil
}

type fakeSubscriberRepo struct {
	counts domain.SubscriberCounts
}

func (f *fakeSubscriberRepo) Subscribe(_ context.Context, email string) (*domain.Subscriber, error) {
	return &domain.Subscriber{ID: 1, Email: email, Subscribed: true}, nil
}

func (f *fakeSubscriberRepo) Unsubscribe(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (f *fakeSubscriberRepo) List(_ context.Context) ([]domain.Subscriber, error) {
	return nil, nil
}

func (f *fakeSubscriberRepo) ListActive(_ context.Context) ([]domain.Subscriber, error) {
	return nil, nil
}

func (f *fakeSubscriberRepo) Counts(_ context.Context) (domain.SubscriberCounts, error) {
	return f.counts, nil
}

func (f *fakeSubscriberRepo) Delete(_ context.Context, _ int64) (bool, error) {
	return true, nil
}

type fakeDispatcher struct {
	jobs []port.SendJob
	err  error
}

func (f *fakeDispatcher) Enqueue(job port.SendJob) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

var (
	_ port.CampaignRepository   = (*fakeCampaignRepo)(nil)
	_ port.ScheduleRepository   = (*fakeScheduleRepo)(nil)
	_ port.DeliveryRepository   = (*fakeDeliveryRepo)(nil)
	_ port.SubscriberRepository = (*fakeSubscriberRepo)(nil)
	_ port.Dispatcher           = (*fakeDispatcher)(nil)
)
