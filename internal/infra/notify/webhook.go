package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"web_monitor_bot/internal/domain/channel"
)

// Webhook posts a generic JSON payload to an arbitrary endpoint, with
// optional extra headers for authentication.
type Webhook struct {
	url       string
	headers   map[string]string
	sourceURL string
	client    *http.Client
}

func NewWebhook(url string, headers map[string]string, sourceURL string) *Webhook {
	return &Webhook{url: url, headers: headers, sourceURL: sourceURL, client: defaultClient}
}

func (w *Webhook) Name() string         { return "webhook" }
func (w *Webhook) Class() channel.Class { return channel.ClassChat }

type webhookPayload struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
}

func (w *Webhook) Send(ctx context.Context, msg channel.Message) error {
	payload := webhookPayload{
		Title:     msg.Subject,
		Message:   msg.Body,
		Timestamp: time.Now().Format(time.RFC3339),
		URL:       w.sourceURL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: error encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: error building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range w.headers {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: error sending request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	default:
		return fmt.Errorf("webhook: unexpected status %d: %s", resp.StatusCode, responseSnippet(resp))
	}
}
