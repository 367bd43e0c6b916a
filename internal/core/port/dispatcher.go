package port

// SendJob asks the dispatcher to deliver one campaign. ScheduleID is zero
// for direct sends and carries the fired schedule's id otherwise, so the
// dispatcher can reconcile the schedule record after delivery.
type SendJob struct {
	CampaignID int64
	ScheduleID int64
}

// Dispatcher accepts delivery jobs for background processing. Enqueue is
// fire-and-forget: it fails only when the dispatcher cannot take more work.
type Dispatcher interface {
	Enqueue(job SendJob) error
}
