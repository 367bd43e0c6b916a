package domain

import "time"

// MediaKind tags the optional media reference attached to a campaign.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Campaign represents a single newsletter blast. SentAt stays nil until the
// delivery engine finishes sending; once set it never changes and the
// campaign is terminal.
type Campaign struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Subtitle        string     `json:"subtitle"`
	Content         string     `json:"content,omitempty"`
	MediaKind       MediaKind  `json:"mediaKind,omitempty"`
	MediaURL        string     `json:"mediaUrl,omitempty"`
	TotalRecipients *int       `json:"totalRecipients,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	SentAt          *time.Time `json:"sentAt,omitempty"`
}

// Sent reports whether the campaign has reached its terminal state.
func (c Campaign) Sent() bool {
	return c.SentAt != nil
}

// Status is the derived lifecycle state of a campaign. It is never stored;
// it is recomputed from the campaign record and its schedule records on
// every read so the two cannot drift apart.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusSent      Status = "sent"
)

// StatusInfo is the result of resolving a campaign's lifecycle state. When
// the status is scheduled, ScheduleID and ScheduledAt identify the pending
// delivery so the caller can display or cancel it.
type StatusInfo struct {
	Status      Status     `json:"status"`
	ScheduleID  int64      `json:"scheduleId,omitempty"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

// ResolveStatus derives a campaign's effective status from the campaign
// record and the schedule records that reference it. A non-nil SentAt always
// wins, even over a stale unsent schedule: the campaign record is the
// authority on whether a send happened, and a fired schedule may be observed
// before the reconciling write lands. Otherwise an unsent schedule means
// scheduled, and the earliest one is surfaced. With neither, the campaign is
// a draft.
//
// The function is pure: same inputs, same output, no side effects.
func ResolveStatus(c Campaign, schedules []ScheduledDelivery) StatusInfo {
	if c.SentAt != nil {
		return StatusInfo{Status: StatusSent}
	}
	var pending *ScheduledDelivery
	for i := range schedules {
		s := &schedules[i]
		if s.CampaignID != c.ID || s.Sent {
			continue
		}
		if pending == nil || s.ScheduledAt.Before(pending.ScheduledAt) {
			pending = s
		}
	}
	if pending != nil {
		at := pending.ScheduledAt
		return StatusInfo{Status: StatusScheduled, ScheduleID: pending.ID, ScheduledAt: &at}
	}
	return StatusInfo{Status: StatusDraft}
}
