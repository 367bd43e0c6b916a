package port

import "context"

// Message is one outbound email.
type Message struct {
	ToEmail   string
	Subject   string
	HTMLBody  string
	PlainBody string
}

// Mailer is the outbound port to the mail-transfer engine. Send returns once
// the engine accepted the message; delivery itself is the engine's problem.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
