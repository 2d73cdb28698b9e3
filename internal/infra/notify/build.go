package notify

import (
	"fmt"

	"web_monitor_bot/internal/domain/channel"
	"web_monitor_bot/internal/infra/config"
)

// Build constructs the channel list from the typed configuration, once at
// startup. The dispatcher then iterates this collection; nothing probes the
// config again at send time.
func Build(cfg config.Channels, sourceURL string) ([]channel.Channel, error) {
	var channels []channel.Channel

	if cfg.Discord != nil {
		channels = append(channels, NewDiscord(cfg.Discord.WebhookURL))
	}
	if cfg.Telegram != nil {
		tg, err := NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, fmt.Errorf("error building telegram channel: %w", err)
		}
		channels = append(channels, tg)
	}
	if cfg.Slack != nil {
		channels = append(channels, NewSlack(cfg.Slack.WebhookURL))
	}
	if cfg.Webhook != nil {
		channels = append(channels, NewWebhook(cfg.Webhook.URL, cfg.Webhook.Headers, sourceURL))
	}
	if cfg.Mailgun != nil {
		channels = append(channels, NewMailgun(cfg.Mailgun.Domain, cfg.Mailgun.APIKey, cfg.Mailgun.ToEmail))
	}
	if cfg.SendGrid != nil {
		channels = append(channels, NewSendGrid(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.ToEmail))
	}
	if cfg.SMTP != nil {
		channels = append(channels, NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.To))
	}
	if cfg.Twilio != nil {
		channels = append(channels, NewTwilio(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber, cfg.Twilio.ToNumber))
	}
	if cfg.Textbelt != nil {
		channels = append(channels, NewTextbelt(cfg.Textbelt.ToNumber, cfg.Textbelt.APIKey))
	}
	if cfg.SMSAPI != nil {
		channels = append(channels, NewSMSAPI(cfg.SMSAPI.AccessToken, cfg.SMSAPI.ToNumber))
	}

	return channels, nil
}
