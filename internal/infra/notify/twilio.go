package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"web_monitor_bot/internal/domain/channel"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// Twilio sends SMS alerts through the Twilio Messages API.
type Twilio struct {
	accountSID string
	authToken  string
	fromNumber string
	toNumber   string
	apiBase    string
	client     *http.Client
}

func NewTwilio(accountSID, authToken, fromNumber, toNumber string) *Twilio {
	return &Twilio{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		toNumber:   toNumber,
		apiBase:    twilioAPIBase,
		client:     defaultClient,
	}
}

func (t *Twilio) Name() string         { return "twilio" }
func (t *Twilio) Class() channel.Class { return channel.ClassSMS }

func (t *Twilio) Send(ctx context.Context, msg channel.Message) error {
	form := url.Values{}
	form.Set("To", t.toNumber)
	form.Set("From", t.fromNumber)
	form.Set("Body", msg.Body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.apiBase, t.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio: error building request: %w", err)
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: error sending sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("twilio: unexpected status %d: %s", resp.StatusCode, responseSnippet(resp))
	}
	return nil
}
