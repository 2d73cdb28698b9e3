package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"web_monitor_bot/internal/domain/channel"
)

// Slack sends change alerts to a Slack incoming webhook.
type Slack struct {
	webhookURL string
	client     *http.Client
}

func NewSlack(webhookURL string) *Slack {
	return &Slack{webhookURL: webhookURL, client: defaultClient}
}

func (s *Slack) Name() string         { return "slack" }
func (s *Slack) Class() channel.Class { return channel.ClassChat }

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackBlock struct {
	Type string    `json:"type"`
	Text slackText `json:"text"`
}

type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

func (s *Slack) Send(ctx context.Context, msg channel.Message) error {
	payload := slackPayload{
		Text: "🚨 " + msg.Subject,
		Blocks: []slackBlock{{
			Type: "section",
			Text: slackText{
				Type: "mrkdwn",
				Text: fmt.Sprintf("*%s*\n\n%s", msg.Subject, msg.Body),
			},
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("slack: error encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: error building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack: error sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack: unexpected status %d: %s", resp.StatusCode, responseSnippet(resp))
	}
	return nil
}
