package port

import (
	"context"
	"time"

	"simplymail/internal/core/domain"
)

// CampaignInput carries the editable fields of a campaign.
type CampaignInput struct {
	Title     string           `json:"title" validate:"required"`
	Subtitle  string           `json:"subtitle" validate:"required"`
	Content   string           `json:"content"`
	MediaKind domain.MediaKind `json:"mediaKind" validate:"omitempty,oneof=image video"`
	MediaURL  string           `json:"mediaUrl" validate:"required_with=MediaKind,omitempty,url"`
}

// CampaignView is a campaign joined with its resolved lifecycle state. The
// status is computed per read and never stored.
type CampaignView struct {
	domain.Campaign
	domain.StatusInfo
}

// CampaignUseCase exposes campaign CRUD and the send-now operation.
type CampaignUseCase interface {
	Create(ctx context.Context, in CampaignInput) (*domain.Campaign, error)
	Get(ctx context.Context, id int64) (*CampaignView, error)
	List(ctx context.Context) ([]CampaignView, error)
	// Update edits a draft. Scheduled campaigns must be cancelled first and
	// sent campaigns are terminal; both reject with domain.ErrConflict.
	Update(ctx context.Context, id int64, in CampaignInput) (*domain.Campaign, error)
	// Delete removes the campaign together with its schedules and delivery
	// records.
	Delete(ctx context.Context, id int64) error
	// SendNow hands the campaign to the delivery dispatcher. It returns once
	// the job is accepted, NOT once every recipient has been delivered to:
	// SentAt stays nil until the dispatcher finishes, so an immediate re-read
	// still resolves to draft. Callers observe the terminal state on a later
	// fetch. Allowed only from draft; scheduled campaigns must be cancelled
	// first and sent campaigns reject with domain.ErrConflict.
	SendNow(ctx context.Context, id int64) error
}

// ScheduleUseCase coordinates schedule creation and cancellation, enforcing
// the temporal and lifecycle preconditions before anything reaches the store.
type ScheduleUseCase interface {
	// Schedule registers a future delivery. The instant must be strictly
	// later than now (domain.ErrValidation otherwise) and the campaign's
	// resolved status must be draft (domain.ErrConflict otherwise).
	Schedule(ctx context.Context, campaignID int64, at time.Time) (*domain.ScheduledDelivery, error)
	// Cancel removes a pending schedule. A schedule that is gone or already
	// fired reports domain.ErrNotFound rather than silently succeeding.
	Cancel(ctx context.Context, scheduleID int64) error
	ListAll(ctx context.Context) ([]domain.ScheduledDelivery, error)
	ListByCampaign(ctx context.Context, campaignID int64) ([]domain.ScheduledDelivery, error)
}

// CampaignAnalytics is the per-campaign snapshot. OpenRate is a percentage
// and is 0 (never NaN) when nothing was sent.
type CampaignAnalytics struct {
	TotalSent   int64   `json:"totalSent"`
	TotalOpened int64   `json:"totalOpened"`
	OpenRate    float64 `json:"openRate"`
}

// DashboardAnalytics is the fleet-wide snapshot shown on the dashboard.
// Campaigns without a terminal send are excluded from the rate but still
// count in NewsletterCount.
type DashboardAnalytics struct {
	TotalEmailsSent   int64   `json:"totalEmailsSent"`
	OverallOpenRate   float64 `json:"overallOpenRate"`
	NewsletterCount   int64   `json:"newsletterCount"`
	TotalSubscribed   int64   `json:"totalSubscribed"`
	TotalUnsubscribed int64   `json:"totalUnsubscribed"`
}

// AnalyticsUseCase aggregates delivery and open counts. Snapshots are
// recomputed from the stores on every call and never cached.
type AnalyticsUseCase interface {
	Campaign(ctx context.Context, campaignID int64) (*CampaignAnalytics, error)
	Dashboard(ctx context.Context) (*DashboardAnalytics, error)
	// LatestSent returns the most recently sent campaign as the default
	// selection for detail views. Ties on sentAt break toward the highest
	// id, i.e. the most recently created campaign. Nil when nothing has
	// been sent yet.
	LatestSent(ctx context.Context) (*domain.Campaign, error)
}

// SubscriberUseCase manages the mailing list.
type SubscriberUseCase interface {
	Subscribe(ctx context.Context, email string) (*domain.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
	List(ctx context.Context) ([]domain.Subscriber, error)
	Counts(ctx context.Context) (domain.SubscriberCounts, error)
	Delete(ctx context.Context, id int64) error
}

// AuthUseCase exchanges credentials for a session token.
type AuthUseCase interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}
