package domain

import "time"

// Subscriber is a mailing-list member. Unsubscribed members are kept for the
// dashboard counts instead of being deleted.
type Subscriber struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	Subscribed     bool       `json:"subscribed"`
	CreatedAt      time.Time  `json:"createdAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty"`
}

// SubscriberCounts summarises the mailing list for the dashboard.
type SubscriberCounts struct {
	TotalSubscribed   int64 `json:"totalSubscribed"`
	TotalUnsubscribed int64 `json:"totalUnsubscribed"`
}
