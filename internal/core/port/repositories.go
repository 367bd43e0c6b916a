package port

import (
	"context"
	"time"

	"simplymail/internal/core/domain"
)

// CampaignRepository is the outbound port for the campaign store.
// Implementations return (nil, nil) when a record is absent; translating
// that into domain.ErrNotFound is the usecase's job.
type CampaignRepository interface {
	Create(ctx context.Context, c *domain.Campaign) error
	GetByID(ctx context.Context, id int64) (*domain.Campaign, error)
	List(ctx context.Context) ([]domain.Campaign, error)
	// Update rewrites the editable fields (title, subtitle, content, media).
	Update(ctx context.Context, c *domain.Campaign) error
	// MarkSent stamps sent_at and the recipient snapshot exactly once. A
	// campaign whose sent_at is already set is left untouched and false is
	// returned.
	MarkSent(ctx context.Context, id int64, sentAt time.Time, totalRecipients int) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ScheduleRepository is the outbound port for the schedule store.
type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.ScheduledDelivery) error
	GetByID(ctx context.Context, id int64) (*domain.ScheduledDelivery, error)
	ListAll(ctx context.Context) ([]domain.ScheduledDelivery, error)
	ListByCampaign(ctx context.Context, campaignID int64) ([]domain.ScheduledDelivery, error)
	// ListDue returns unsent schedules whose instant has passed.
	ListDue(ctx context.Context, now time.Time) ([]domain.ScheduledDelivery, error)
	// DeleteUnsent removes a pending schedule. It returns false when the
	// schedule is gone or has already fired, so the caller can report it.
	DeleteUnsent(ctx context.Context, id int64) (bool, error)
	MarkSent(ctx context.Context, id int64) error
}

// SubscriberRepository is the outbound port for the mailing list.
type SubscriberRepository interface {
	// Subscribe inserts the email or re-activates a previously
	// unsubscribed record.
	Subscribe(ctx context.Context, email string) (*domain.Subscriber, error)
	// Unsubscribe flips the record inactive; false when the email is unknown.
	Unsubscribe(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]domain.Subscriber, error)
	ListActive(ctx context.Context) ([]domain.Subscriber, error)
	Counts(ctx context.Context) (domain.SubscriberCounts, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// DeliveryRepository stores per-recipient delivery records and the open
// events that feed analytics.
type DeliveryRepository interface {
	CreateBatch(ctx context.Context, deliveries []domain.Delivery) error
	// MarkOpened stamps opened_at for the delivery carrying the token. Only
	// the first hit counts; later hits and unknown tokens return false.
	MarkOpened(ctx context.Context, token string, at time.Time) (bool, error)
	// CampaignCounts returns (sent, opened) for one campaign.
	CampaignCounts(ctx context.Context, campaignID int64) (int64, int64, error)
	// TotalCounts returns (sent, opened) across all campaigns.
	TotalCounts(ctx context.Context) (int64, int64, error)
}

// UserRepository stores admin-console accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
