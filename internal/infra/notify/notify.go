// Package notify implements the outbound notification channels: chat webhooks
// (Discord, Slack, generic), Telegram, transactional email providers
// (Mailgun, SendGrid, plain SMTP) and SMS providers (Twilio, Textbelt,
// SMSAPI). Each channel owns its provider payload and success criteria; the
// dispatcher only calls Send once per event.
package notify

import (
	"io"
	"net/http"
	"strings"
	"time"
)

var defaultClient = &http.Client{Timeout: 15 * time.Second}

// responseSnippet returns a short prefix of the response body for error
// messages, enough to diagnose a provider rejection from the logs.
func responseSnippet(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return strings.TrimSpace(string(b))
}
