package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"web_monitor_bot/internal/domain/channel"
)

const textbeltSendURL = "https://textbelt.com/text"

// Textbelt sends SMS alerts through the Textbelt API. The "textbelt" key
// selects the free tier.
type Textbelt struct {
	toNumber string
	apiKey   string
	sendURL  string
	client   *http.Client
}

func NewTextbelt(toNumber, apiKey string) *Textbelt {
	if apiKey == "" {
		apiKey = "textbelt"
	}
	return &Textbelt{toNumber: toNumber, apiKey: apiKey, sendURL: textbeltSendURL, client: defaultClient}
}

func (t *Textbelt) Name() string         { return "textbelt" }
func (t *Textbelt) Class() channel.Class { return channel.ClassSMS }

type textbeltResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (t *Textbelt) Send(ctx context.Context, msg channel.Message) error {
	form := url.Values{}
	form.Set("phone", t.toNumber)
	form.Set("message", msg.Body)
	form.Set("key", t.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.sendURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("textbelt: error building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("textbelt: error sending sms: %w", err)
	}
	defer resp.Body.Close()

	var result textbeltResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("textbelt: error decoding response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("textbelt: send rejected: %s", result.Error)
	}
	return nil
}
