package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"web_monitor_bot/internal/domain/channel"
)

const mailgunAPIBase = "https://api.mailgun.net/v3"

// Mailgun sends change alerts as plain-text email through the Mailgun API.
type Mailgun struct {
	domain  string
	apiKey  string
	toEmail string
	apiBase string
	client  *http.Client
}

func NewMailgun(domain, apiKey, toEmail string) *Mailgun {
	return &Mailgun{
		domain:  domain,
		apiKey:  apiKey,
		toEmail: toEmail,
		apiBase: mailgunAPIBase,
		client:  defaultClient,
	}
}

func (m *Mailgun) Name() string         { return "mailgun" }
func (m *Mailgun) Class() channel.Class { return channel.ClassEmail }

func (m *Mailgun) Send(ctx context.Context, msg channel.Message) error {
	form := url.Values{}
	form.Set("from", fmt.Sprintf("Website Monitor <mailgun@%s>", m.domain))
	form.Set("to", m.toEmail)
	form.Set("subject", msg.Subject)
	form.Set("text", msg.Body)

	endpoint := fmt.Sprintf("%s/%s/messages", m.apiBase, m.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("mailgun: error building request: %w", err)
	}
	req.SetBasicAuth("api", m.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailgun: error sending email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mailgun: unexpected status %d: %s", resp.StatusCode, responseSnippet(resp))
	}
	return nil
}
