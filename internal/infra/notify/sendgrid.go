package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"web_monitor_bot/internal/domain/channel"
)

const sendgridSendURL = "https://api.sendgrid.com/v3/mail/send"

// SendGrid sends change alerts as plain-text email through the SendGrid API.
type SendGrid struct {
	apiKey    string
	fromEmail string
	toEmail   string
	sendURL   string
	client    *http.Client
}

func NewSendGrid(apiKey, fromEmail, toEmail string) *SendGrid {
	return &SendGrid{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		toEmail:   toEmail,
		sendURL:   sendgridSendURL,
		client:    defaultClient,
	}
}

func (s *SendGrid) Name() string         { return "sendgrid" }
func (s *SendGrid) Class() channel.Class { return channel.ClassEmail }

type sendgridEmail struct {
	Email string `json:"email"`
}

type sendgridPayload struct {
	Personalizations []struct {
		To []sendgridEmail `json:"to"`
	} `json:"personalizations"`
	From    sendgridEmail `json:"from"`
	Subject string        `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func (s *SendGrid) Send(ctx context.Context, msg channel.Message) error {
	payload := sendgridPayload{
		From:    sendgridEmail{Email: s.fromEmail},
		Subject: msg.Subject,
	}
	payload.Personalizations = []struct {
		To []sendgridEmail `json:"to"`
	}{{To: []sendgridEmail{{Email: s.toEmail}}}}
	payload.Content = []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{{Type: "text/plain", Value: msg.Body}}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("sendgrid: error encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.sendURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sendgrid: error building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid: error sending email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("sendgrid: unexpected status %d: %s", resp.StatusCode, responseSnippet(resp))
	}
	return nil
}
