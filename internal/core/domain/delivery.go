package domain

import "time"

// Delivery records one email handed to one subscriber for a campaign. Token
// is embedded in the tracking pixel; OpenedAt is stamped on the first pixel
// hit and ignored afterwards.
type Delivery struct {
	ID           int64      `json:"id"`
	CampaignID   int64      `json:"newsletterId"`
	SubscriberID int64      `json:"subscriberId"`
	Token        string     `json:"-"`
	SentAt       time.Time  `json:"sentAt"`
	OpenedAt     *time.Time `json:"openedAt,omitempty"`
}
