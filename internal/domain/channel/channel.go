package channel

import "context"

// Class groups channels by transport family. The dispatcher truncates the
// message body for SMS-class channels; the 160-character constraint is a
// property of the SMS transport layer, not of any one provider.
type Class string

const (
	ClassChat  Class = "chat"
	ClassEmail Class = "email"
	ClassSMS   Class = "sms"
)

// Message is what gets delivered on a change event. Chat and email channels
// receive the full body; SMS channels receive a truncated one.
type Message struct {
	Subject string
	Body    string
}

// Channel is one independently configured outbound notification transport.
// Send returns an error on any non-success response; the payload shape is the
// channel's own concern.
type Channel interface {
	Name() string
	Class() Class
	Send(ctx context.Context, msg Message) error
}

// Outcome records the result of one channel attempt within a dispatch. There
// is no overall verdict for a dispatch, only per-channel outcomes.
type Outcome struct {
	Channel string
	Err     error
}
