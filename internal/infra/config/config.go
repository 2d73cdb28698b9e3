package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Monitor run modes.
const (
	ModeStatic  = "static"  // plain HTTP fetch of a public page
	ModeBrowser = "browser" // authenticated single-page app via a render session
)

// AppConfig holds all configuration for the monitor.
type AppConfig struct {
	URL                string
	CheckInterval      time.Duration
	TargetTextKeywords []string
	MinTextLength      int
	Mode               string
	Subject            string
	// NotifyOnUnchanged switches an unchanged cycle from silent to a
	// heartbeat notification.
	NotifyOnUnchanged bool
	Username          string
	Password          string
	LogLevel          string
	Environment       string
	SnapshotBackend   string
	SnapshotPath      string
	DatabaseURL       string
	Channels          Channels
}

// Channels is the typed set of enabled notification channels, built once at
// startup. A nil entry means the channel is not configured; there is no
// separate enabled flag.
type Channels struct {
	Discord  *DiscordConfig  `json:"discord,omitempty"`
	Telegram *TelegramConfig `json:"telegram,omitempty"`
	Slack    *SlackConfig    `json:"slack,omitempty"`
	Webhook  *WebhookConfig  `json:"webhook,omitempty"`
	Mailgun  *MailgunConfig  `json:"mailgun,omitempty"`
	SendGrid *SendGridConfig `json:"sendgrid,omitempty"`
	SMTP     *SMTPConfig     `json:"smtp,omitempty"`
	Twilio   *TwilioConfig   `json:"twilio,omitempty"`
	Textbelt *TextbeltConfig `json:"textbelt,omitempty"`
	SMSAPI   *SMSAPIConfig   `json:"smsapi,omitempty"`
}

type DiscordConfig struct {
	WebhookURL string `json:"webhook_url"`
}

type TelegramConfig struct {
	BotToken string `json:"bot_token"`
	ChatID   int64  `json:"chat_id"`
}

type SlackConfig struct {
	WebhookURL string `json:"webhook_url"`
}

type WebhookConfig struct {
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

type MailgunConfig struct {
	Domain  string `json:"domain"`
	APIKey  string `json:"api_key"`
	ToEmail string `json:"to_email"`
}

type SendGridConfig struct {
	APIKey    string `json:"api_key"`
	FromEmail string `json:"from_email"`
	ToEmail   string `json:"to_email"`
}

type SMTPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from_email"`
	To       string `json:"to_email"`
}

type TwilioConfig struct {
	AccountSID string `json:"account_sid"`
	AuthToken  string `json:"auth_token"`
	FromNumber string `json:"from_number"`
	ToNumber   string `json:"to_number"`
}

type TextbeltConfig struct {
	ToNumber string `json:"to_number"`
	APIKey   string `json:"api_key,omitempty"`
}

type SMSAPIConfig struct {
	AccessToken string `json:"access_token"`
	ToNumber    string `json:"to_number"`
}

// Enabled lists the configured channel names, for startup logging.
func (c Channels) Enabled() []string {
	var names []string
	if c.Discord != nil {
		names = append(names, "discord")
	}
	if c.Telegram != nil {
		names = append(names, "telegram")
	}
	if c.Slack != nil {
		names = append(names, "slack")
	}
	if c.Webhook != nil {
		names = append(names, "webhook")
	}
	if c.Mailgun != nil {
		names = append(names, "mailgun")
	}
	if c.SendGrid != nil {
		names = append(names, "sendgrid")
	}
	if c.SMTP != nil {
		names = append(names, "smtp")
	}
	if c.Twilio != nil {
		names = append(names, "twilio")
	}
	if c.Textbelt != nil {
		names = append(names, "textbelt")
	}
	if c.SMSAPI != nil {
		names = append(names, "smsapi")
	}
	return names
}

// fileConfig is the optional JSON config file shape. Environment variables
// override anything set here.
type fileConfig struct {
	URL                  string    `json:"url"`
	CheckIntervalMinutes int       `json:"check_interval_minutes"`
	TargetTextKeywords   []string  `json:"target_text_keywords"`
	MinTextLength        int       `json:"min_text_length"`
	Notifications        *Channels `json:"notifications"`
}

const defaultConfigFile = "config.json"

var defaultKeywords = []string{"Chers parents", "école de natation", "rentrée sportive"}

// Load reads configuration from the optional JSON file, then environment
// variables (and .env file, if present). Env values win over file values.
func Load() (*AppConfig, error) {
	// Errors are ignored if the .env file doesn't exist; godotenv never
	// overrides variables already set.
	_ = godotenv.Load()

	cfg := &AppConfig{
		CheckInterval:      4 * time.Minute,
		TargetTextKeywords: defaultKeywords,
		MinTextLength:      50,
		Mode:               ModeStatic,
		Subject:            "Website Update Detected",
		LogLevel:           "info",
		Environment:        "development",
		SnapshotBackend:    "file",
		SnapshotPath:       "content_cache.json",
	}

	if err := applyFileConfig(cfg); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyChannelEnv(&cfg.Channels)

	if cfg.URL == "" {
		return nil, fmt.Errorf("URL is not set")
	}
	if cfg.CheckInterval <= 0 {
		return nil, fmt.Errorf("check interval must be positive")
	}
	if cfg.Mode != ModeStatic && cfg.Mode != ModeBrowser {
		return nil, fmt.Errorf("invalid MONITOR_MODE: %q", cfg.Mode)
	}
	if cfg.Mode == ModeBrowser && (cfg.Username == "" || cfg.Password == "") {
		return nil, fmt.Errorf("browser mode requires MONITOR_USERNAME and MONITOR_PASSWORD")
	}
	return cfg, nil
}

func applyFileConfig(cfg *AppConfig) error {
	path := os.Getenv("CONFIG_FILE")
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		if explicit {
			return fmt.Errorf("could not read config file %s: %w", path, err)
		}
		return nil
	}
	var fc fileConfig
	if err := json.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	if fc.URL != "" {
		cfg.URL = fc.URL
	}
	if fc.CheckIntervalMinutes > 0 {
		cfg.CheckInterval = time.Duration(fc.CheckIntervalMinutes) * time.Minute
	}
	if len(fc.TargetTextKeywords) > 0 {
		cfg.TargetTextKeywords = fc.TargetTextKeywords
	}
	if fc.MinTextLength > 0 {
		cfg.MinTextLength = fc.MinTextLength
	}
	if fc.Notifications != nil {
		cfg.Channels = *fc.Notifications
	}
	return nil
}

func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv("URL"); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv("CHECK_INTERVAL_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CHECK_INTERVAL_MINUTES: %w", err)
		}
		cfg.CheckInterval = time.Duration(minutes) * time.Minute
	}
	if v := os.Getenv("TARGET_TEXT_KEYWORDS"); v != "" {
		var keywords []string
		for _, kw := range strings.Split(v, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) > 0 {
			cfg.TargetTextKeywords = keywords
		}
	}
	if v := os.Getenv("MIN_TEXT_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MIN_TEXT_LENGTH: %w", err)
		}
		cfg.MinTextLength = n
	}
	if v := os.Getenv("MONITOR_MODE"); v != "" {
		cfg.Mode = strings.ToLower(v)
	}
	if v := os.Getenv("MONITOR_SUBJECT"); v != "" {
		cfg.Subject = v
	}
	if v := os.Getenv("NOTIFY_ON_UNCHANGED"); v != "" {
		heartbeat, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid NOTIFY_ON_UNCHANGED: %w", err)
		}
		cfg.NotifyOnUnchanged = heartbeat
	}
	cfg.Username = strings.Trim(os.Getenv("MONITOR_USERNAME"), "'\"")
	cfg.Password = strings.Trim(os.Getenv("MONITOR_PASSWORD"), "'\"")
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		cfg.Environment = strings.ToLower(v)
	}
	if v := os.Getenv("SNAPSHOT_BACKEND"); v != "" {
		cfg.SnapshotBackend = strings.ToLower(v)
	}
	if v := os.Getenv("SNAPSHOT_PATH"); v != "" {
		cfg.SnapshotPath = v
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.SnapshotBackend == "postgres" && cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	return nil
}

// applyChannelEnv enables a channel only when its whole variable group is
// present; a partially configured channel stays disabled.
func applyChannelEnv(ch *Channels) {
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		ch.Discord = &DiscordConfig{WebhookURL: v}
	}

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if botToken != "" && chatIDStr != "" {
		if chatID, err := strconv.ParseInt(chatIDStr, 10, 64); err == nil {
			ch.Telegram = &TelegramConfig{BotToken: botToken, ChatID: chatID}
		}
	}

	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		ch.Slack = &SlackConfig{WebhookURL: v}
	}

	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		ch.Webhook = &WebhookConfig{URL: v}
	}

	mgDomain := os.Getenv("MAILGUN_DOMAIN")
	mgKey := os.Getenv("MAILGUN_API_KEY")
	mgTo := os.Getenv("MAILGUN_TO_EMAIL")
	if mgDomain != "" && mgKey != "" && mgTo != "" {
		ch.Mailgun = &MailgunConfig{Domain: mgDomain, APIKey: mgKey, ToEmail: mgTo}
	}

	sgKey := os.Getenv("SENDGRID_API_KEY")
	sgFrom := os.Getenv("SENDGRID_FROM_EMAIL")
	sgTo := os.Getenv("SENDGRID_TO_EMAIL")
	if sgKey != "" && sgFrom != "" && sgTo != "" {
		ch.SendGrid = &SendGridConfig{APIKey: sgKey, FromEmail: sgFrom, ToEmail: sgTo}
	}

	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	smtpFrom := os.Getenv("SMTP_FROM_EMAIL")
	smtpTo := os.Getenv("SMTP_TO_EMAIL")
	if smtpHost != "" && smtpUser != "" && smtpPass != "" && smtpFrom != "" && smtpTo != "" {
		port := 587
		if v := os.Getenv("SMTP_PORT"); v != "" {
			if p, err := strconv.Atoi(v); err == nil {
				port = p
			}
		}
		ch.SMTP = &SMTPConfig{Host: smtpHost, Port: port, Username: smtpUser, Password: smtpPass, From: smtpFrom, To: smtpTo}
	}

	twSID := os.Getenv("TWILIO_ACCOUNT_SID")
	twToken := os.Getenv("TWILIO_AUTH_TOKEN")
	twFrom := os.Getenv("TWILIO_FROM_NUMBER")
	twTo := os.Getenv("TWILIO_TO_NUMBER")
	if twSID != "" && twToken != "" && twFrom != "" && twTo != "" {
		ch.Twilio = &TwilioConfig{AccountSID: twSID, AuthToken: twToken, FromNumber: twFrom, ToNumber: twTo}
	}

	if v := os.Getenv("TEXTBELT_TO_NUMBER"); v != "" {
		ch.Textbelt = &TextbeltConfig{ToNumber: v, APIKey: os.Getenv("TEXTBELT_API_KEY")}
	}

	saToken := os.Getenv("SMSAPI_ACCESS_TOKEN")
	saTo := os.Getenv("SMSAPI_TO_NUMBER")
	if saToken != "" && saTo != "" {
		ch.SMSAPI = &SMSAPIConfig{AccessToken: saToken, ToNumber: saTo}
	}
}
