package domain

import "time"

// ScheduledDelivery is a pending future send bound to one campaign. Sent
// flips from false to true exactly once when the dispatcher fires it. At
// most one unsent schedule may exist per campaign at a time.
type ScheduledDelivery struct {
	ID          int64     `json:"id"`
	CampaignID  int64     `json:"newsletterId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Sent        bool      `json:"sent"`
	CreatedAt   time.Time `json:"createdAt"`
}
