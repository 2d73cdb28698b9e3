package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"web_monitor_bot/internal/domain/channel"
)

// SMTP sends change alerts through a plain SMTP relay (a Gmail app-password
// account, Mailtrap, or any submission endpoint that supports STARTTLS).
type SMTP struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
}

func NewSMTP(host string, port int, username, password, from, to string) *SMTP {
	return &SMTP{host: host, port: port, username: username, password: password, from: from, to: to}
}

func (s *SMTP) Name() string         { return "smtp" }
func (s *SMTP) Class() channel.Class { return channel.ClassEmail }

func (s *SMTP) Send(_ context.Context, msg channel.Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", s.to)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(addr, auth, s.from, []string{s.to}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp: error sending email via %s: %w", addr, err)
	}
	return nil
}
