package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"web_monitor_bot/internal/domain/channel"
)

// smsBodyLimit is the truncation point for SMS-class channels; the limit is a
// property of the SMS transport layer, so it lives in the dispatcher rather
// than in any one provider.
const smsBodyLimit = 150

// Dispatcher fans a change event out to the configured channels.
type Dispatcher interface {
	Dispatch(ctx context.Context, subject, body string) []channel.Outcome
}

// DispatchService sends one message per configured channel, isolating
// failures: a broken channel is logged and recorded but never prevents the
// remaining channels from being attempted. There is no overall verdict, only
// per-channel outcomes.
type DispatchService struct {
	channels []channel.Channel
	logger   *logrus.Logger
}

func NewDispatchService(channels []channel.Channel, logger *logrus.Logger) *DispatchService {
	return &DispatchService{channels: channels, logger: logger}
}

func (s *DispatchService) Dispatch(ctx context.Context, subject, body string) []channel.Outcome {
	outcomes := make([]channel.Outcome, 0, len(s.channels))
	smsBody := TruncateForSMS(body)

	for _, ch := range s.channels {
		msg := channel.Message{Subject: subject, Body: body}
		if ch.Class() == channel.ClassSMS {
			msg.Body = smsBody
		}

		err := send(ctx, ch, msg)
		if err != nil {
			s.logger.WithField("channel", ch.Name()).Errorf("Notification delivery failed: %v", err)
		} else {
			s.logger.WithField("channel", ch.Name()).Info("Notification sent successfully")
		}
		outcomes = append(outcomes, channel.Outcome{Channel: ch.Name(), Err: err})
	}
	return outcomes
}

// send invokes one channel exactly once, converting a panicking channel
// implementation into a recorded failure so the remaining channels still run.
func send(ctx context.Context, ch channel.Channel, msg channel.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("channel %s panicked: %v", ch.Name(), r)
		}
	}()
	return ch.Send(ctx, msg)
}

// TruncateForSMS caps a message body for the SMS transport, appending an
// ellipsis when anything was cut.
func TruncateForSMS(body string) string {
	runes := []rune(body)
	if len(runes) <= smsBodyLimit {
		return body
	}
	return string(runes[:smsBodyLimit]) + "..."
}
