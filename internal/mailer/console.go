package mailer

import (
	"context"
	"log/slog"

	"simplymail/internal/core/port"
)

// Console logs messages instead of sending them. It is the development-mode
// mailer used when no SendGrid key is configured.
type Console struct {
	logger *slog.Logger
}

// NewConsole returns a console mailer.
func NewConsole(logger *slog.Logger) *Console {
	return &Console{logger: logger}
}

// Send logs the message and reports success.
func (c *Console) Send(_ context.Context, msg port.Message) error {
	c.logger.Info("console mailer: would send email",
		slog.String("to", msg.ToEmail),
		slog.String("subject", msg.Subject),
		slog.Int("html_bytes", len(msg.HTMLBody)),
	)
	return nil
}

var _ port.Mailer = (*Console)(nil)
