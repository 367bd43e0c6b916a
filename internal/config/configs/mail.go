package configs

// Mail configures outbound email. With an empty SendGridKey the service
// falls back to a console mailer that only logs, which is the development
// default.
type Mail struct {
	SendGridKey string `env:"SENDGRID_KEY" envDefault:""`
	FromEmail   string `env:"FROM_EMAIL" envDefault:"newsletter@localhost"`
	FromName    string `env:"FROM_NAME" envDefault:"Newsletter"`
	// BaseURL is the externally reachable address of this service, embedded
	// into open-tracking pixel links.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8585"`
}
