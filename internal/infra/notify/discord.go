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

// Discord sends change alerts to a Discord webhook.
type Discord struct {
	webhookURL string
	client     *http.Client
}

func NewDiscord(webhookURL string) *Discord {
	return &Discord{webhookURL: webhookURL, client: defaultClient}
}

func (d *Discord) Name() string         { return "discord" }
func (d *Discord) Class() channel.Class { return channel.ClassChat }

type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Timestamp   string `json:"timestamp"`
}

type discordPayload struct {
	Content  string         `json:"content"`
	Username string         `json:"username"`
	Embeds   []discordEmbed `json:"embeds"`
}

func (d *Discord) Send(ctx context.Context, msg channel.Message) error {
	payload := discordPayload{
		Content:  msg.Body,
		Username: "Website Monitor",
		Embeds: []discordEmbed{{
			Title:       "🚨 " + msg.Subject,
			Description: msg.Body,
			Color:       0xFF0000,
			Timestamp:   time.Now().Format(time.RFC3339),
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("discord: error encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("discord: error building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("discord: error sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("discord: unexpected status %d: %s", resp.StatusCode, responseSnippet(resp))
	}
	return nil
}
