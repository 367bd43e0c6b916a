package dispatch

import (
	"fmt"
	"html"
	"strings"

	"simplymail/internal/core/domain"
	"simplymail/internal/core/port"
)

// buildMessage renders one campaign for one recipient. Campaign content is
// trusted rich text authored in the console; title and subtitle are escaped.
// The tracking pixel at the bottom carries the per-delivery token.
func buildMessage(c domain.Campaign, toEmail, baseURL, token string) port.Message {
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<h1>%s</h1>", html.EscapeString(c.Title))
	fmt.Fprintf(&b, "<h3>%s</h3>", html.EscapeString(c.Subtitle))
	switch c.MediaKind {
	case domain.MediaImage:
		fmt.Fprintf(&b, `<img src=%q alt="">`, c.MediaURL)
	case domain.MediaVideo:
		fmt.Fprintf(&b, `<p><a href=%q>Watch the video</a></p>`, c.MediaURL)
	}
	if c.Content != "" {
		fmt.Fprintf(&b, "<div>%s</div>", c.Content)
	}
	fmt.Fprintf(&b, `<img src="%s/api/track/open/%s" width="1" height="1" alt="">`,
		strings.TrimRight(baseURL, "/"), token)
	b.WriteString("</body></html>")

	return port.Message{
		ToEmail:   toEmail,
		Subject:   c.Title,
		HTMLBody:  b.String(),
		PlainBody: c.Title + "\n\n" + c.Subtitle,
	}
}
