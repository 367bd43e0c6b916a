package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplymail/internal/core/domain"
	"simplymail/internal/core/port"
)

type stubCampaignRepo struct {
	campaign *domain.Campaign
	markedAt *time.Time
	markedN  int
}

func (s *stubCampaignRepo) Create(context.Context, *domain.Campaign) error { return nil }
func (s *stubCampaignRepo) GetByID(context.Context, int64) (*domain.Campaign, error) {
	return s.campaign, nil
}
func (s *stubCampaignRepo) List(context.Context) ([]domain.Campaign, error) { return nil, nil }
func (s *stubCampaignRepo) Update(context.Context, *domain.Campaign) error  { return nil }
func (s *stubCampaignRepo) MarkSent(_ context.Context, _ int64, at time.Time, n int) (bool, error) {
	if s.markedAt != nil {
		return false, nil
	}
	s.markedAt = &at
	s.markedN = n
	return true, nil
}
func (s *stubCampaignRepo) Delete(context.Context, int64) (bool, error) { return false, nil }

type stubScheduleRepo struct {
	due        []domain.ScheduledDelivery
	markedSent []int64
}

func (s *stubScheduleRepo) Create(context.Context, *domain.ScheduledDelivery) error { return nil }
func (s *stubScheduleRepo) GetByID(context.Context, int64) (*domain.ScheduledDelivery, error) {
	return nil, nil
}
func (s *stubScheduleRepo) ListAll(context.Context) ([]domain.ScheduledDelivery, error) {
	return nil, nil
}
func (s *stubScheduleRepo) ListByCampaign(context.Context, int64) ([]domain.ScheduledDelivery, error) {
	return nil, nil
}
func (s *stubScheduleRepo) ListDue(context.Context, time.Time) ([]domain.ScheduledDelivery, error) {
	return s.due, nil
}
func (s *stubScheduleRepo) DeleteUnsent(context.Context, int64) (bool, error) { return false, nil }
func (s *stubScheduleRepo) MarkSent(_ context.Context, id int64) error {
	s.markedSent = append(s.markedSent, id)
	return nil
}

type stubSubscriberRepo struct {
	active []domain.Subscriber
}

func (s *stubSubscriberRepo) Subscribe(context.Context, string) (*domain.Subscriber, error) {
	return nil, nil
}
func (s *stubSubscriberRepo) Unsubscribe(context.Context, string) (bool, error) { return false, nil }
func (s *stubSubscriberRepo) List(context.Context) ([]domain.Subscriber, error) { return nil, nil }
func (s *stubSubscriberRepo) ListActive(context.Context) ([]domain.Subscriber, error) {
	return s.active, nil
}
func (s *stubSubscriberRepo) Counts(context.Context) (domain.SubscriberCounts, error) {
	return domain.SubscriberCounts{}, nil
}
func (s *stubSubscriberRepo) Delete(context.Context, int64) (bool, error) { return false, nil }

type stubDeliveryRepo struct {
	created []domain.Delivery
}

func (s *stubDeliveryRepo) CreateBatch(_ context.Context, ds []domain.Delivery) error {
	s.created = append(s.created, ds...)
	return nil
}
func (s *stubDeliveryRepo) MarkOpened(context.Context, string, time.Time) (bool, error) {
	return false, nil
}
func (s *stubDeliveryRepo) CampaignCounts(context.Context, int64) (int64, int64, error) {
	return 0, 0, nil
}
func (s *stubDeliveryRepo) TotalCounts(context.Context) (int64, int64, error) { return 0, 0, nil }

type recordingMailer struct {
	sent    []port.Message
	failFor string
}

func (m *recordingMailer) Send(_ context.Context, msg port.Message) error {
	if m.failFor != "" && msg.ToEmail == m.failFor {
		return errors.New("smtp says no")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDispatcher(campaigns *stubCampaignRepo, schedules *stubScheduleRepo, subs *stubSubscriberRepo, deliveries *stubDeliveryRepo, mailer *recordingMailer) *Dispatcher {
	return New(campaigns, schedules, subs, deliveries, mailer, discardLogger(), "https://news.example.com", 8)
}

func TestProcessDeliversAndStampsSentAt(t *testing.T) {
	campaigns := &stubCampaignRepo{campaign: &domain.Campaign{ID: 1, Title: "Issue #1", Subtitle: "hello"}}
	schedules := &stubScheduleRepo{}
	subs := &stubSubscriberRepo{active: []domain.Subscriber{
		{ID: 1, Email: "a@example.com", Subscribed: true},
		{ID: 2, Email: "b@example.com", Subscribed: true},
		{ID: 3, Email: "c@example.com", Subscribed: true},
	}}
	deliveries := &stubDeliveryRepo{}
	mailer := &recordingMailer{}
	d := newTestDispatcher(campaigns, schedules, subs, deliveries, mailer)

	d.process(context.Background(), port.SendJob{CampaignID: 1})

	assert.Len(t, mailer.sent, 3)
	assert.Len(t, deliveries.created, 3)
	require.NotNil(t, campaigns.markedAt)
	assert.Equal(t, 3, campaigns.markedN)
	assert.Empty(t, schedules.markedSent)

	// every delivery row carries its own tracking token
	tokens := map[string]bool{}
	for _, del := range deliveries.created {
		tokens[del.Token] = true
	}
	assert.Len(t, tokens, 3)
	assert.Contains(t, mailer.sent[0].HTMLBody, "/api/track/open/")
}

func TestProcessFiredScheduleIsReconciled(t *testing.T) {
	campaigns := &stubCampaignRepo{campaign: &domain.Campaign{ID: 4, Title: "t", Subtitle: "s"}}
	schedules := &stubScheduleRepo{}
	subs := &stubSubscriberRepo{active: []domain.Subscriber{{ID: 1, Email: "a@example.com"}}}
	d := newTestDispatcher(campaigns, schedules, subs, &stubDeliveryRepo{}, &recordingMailer{})

	d.process(context.Background(), port.SendJob{CampaignID: 4, ScheduleID: 77})

	assert.Equal(t, []int64{77}, schedules.markedSent)
	require.NotNil(t, campaigns.markedAt)
}

func TestProcessNeverResendsTerminalCampaign(t *testing.T) {
	sentAt := time.Now().Add(-time.Hour)
	campaigns := &stubCampaignRepo{campaign: &domain.Campaign{ID: 2, Title: "t", Subtitle: "s", SentAt: &sentAt}}
	schedules := &stubScheduleRepo{}
	mailer := &recordingMailer{}
	d := newTestDispatcher(campaigns, schedules, &stubSubscriberRepo{}, &stubDeliveryRepo{}, mailer)

	// A stale schedule pointing at an already-sent campaign is reconciled,
	// not re-delivered.
	d.process(context.Background(), port.SendJob{CampaignID: 2, ScheduleID: 9})

	assert.Empty(t, mailer.sent)
	assert.Equal(t, []int64{9}, schedules.markedSent)
	assert.Nil(t, campaigns.markedAt)
}

func TestProcessSkipsFailedRecipients(t *testing.T) {
	campaigns := &stubCampaignRepo{campaign: &domain.Campaign{ID: 3, Title: "t", Subtitle: "s"}}
	subs := &stubSubscriberRepo{active: []domain.Subscriber{
		{ID: 1, Email: "ok@example.com"},
		{ID: 2, Email: "broken@example.com"},
	}}
	deliveries := &stubDeliveryRepo{}
	mailer := &recordingMailer{failFor: "broken@example.com"}
	d := newTestDispatcher(campaigns, &stubScheduleRepo{}, subs, deliveries, mailer)

	d.process(context.Background(), port.SendJob{CampaignID: 3})

	assert.Len(t, deliveries.created, 1)
	assert.Equal(t, 1, campaigns.markedN)
}

func TestEnqueueReportsFullQueue(t *testing.T) {
	d := New(&stubCampaignRepo{}, &stubScheduleRepo{}, &stubSubscriberRepo{}, &stubDeliveryRepo{}, &recordingMailer{}, discardLogger(), "", 1)

	require.NoError(t, d.Enqueue(port.SendJob{CampaignID: 1}))
	err := d.Enqueue(port.SendJob{CampaignID: 2})
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestBuildMessageEscapesTitle(t *testing.T) {
	msg := buildMessage(domain.Campaign{Title: "a <b>", Subtitle: "s"}, "x@example.com", "https://h", "tok")
	assert.True(t, strings.Contains(msg.HTMLBody, "a &lt;b&gt;"))
	assert.Contains(t, msg.HTMLBody, "https://h/api/track/open/tok")
}
