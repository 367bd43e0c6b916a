package configs

// Dispatch configures the background delivery dispatcher.
type Dispatch struct {
	// PollSpec is the cron expression for the due-schedule poller.
	PollSpec string `env:"POLL_SPEC" envDefault:"@every 30s"`
	// QueueSize bounds the number of pending send jobs.
	QueueSize int `env:"QUEUE_SIZE" envDefault:"64"`
}
