package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"simplymail/internal/core/port"
)

// SendGrid delivers mail through the SendGrid API.
type SendGrid struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewSendGrid returns a mailer backed by the SendGrid API.
func NewSendGrid(apiKey, fromEmail, fromName string) *SendGrid {
	return &SendGrid{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Send hands one message to SendGrid. A non-2xx API response is a transport
// failure for the caller to report.
func (s *SendGrid) Send(ctx context.Context, msg port.Message) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", msg.ToEmail)
	email := mail.NewSingleEmail(from, msg.Subject, to, msg.PlainBody, msg.HTMLBody)

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

var _ port.Mailer = (*SendGrid)(nil)
