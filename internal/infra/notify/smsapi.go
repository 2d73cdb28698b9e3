package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"web_monitor_bot/internal/domain/channel"
)

const smsapiSendURL = "https://api.smsapi.com/sms.do"

// SMSAPI sends SMS alerts through the SMSAPI service.
type SMSAPI struct {
	accessToken string
	toNumber    string
	sendURL     string
	client      *http.Client
}

func NewSMSAPI(accessToken, toNumber string) *SMSAPI {
	return &SMSAPI{accessToken: accessToken, toNumber: toNumber, sendURL: smsapiSendURL, client: defaultClient}
}

func (s *SMSAPI) Name() string         { return "smsapi" }
func (s *SMSAPI) Class() channel.Class { return channel.ClassSMS }

func (s *SMSAPI) Send(ctx context.Context, msg channel.Message) error {
	form := url.Values{}
	form.Set("to", s.toNumber)
	form.Set("message", msg.Body)
	form.Set("from", "WebMonitor")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.sendURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("smsapi: error building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("smsapi: error sending sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("smsapi: unexpected status %d: %s", resp.StatusCode, responseSnippet(resp))
	}
	return nil
}
