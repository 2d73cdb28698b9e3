package browser

import (
	"context"
	"errors"

	"web_monitor_bot/internal/domain/page"
)

// SessionFactory acquires a render session from an automation driver.
type SessionFactory func(ctx context.Context) (page.RenderSession, error)

var sessionFactory SessionFactory

// RegisterDriver installs the render-session driver. Drivers are external
// collaborators (a Playwright or CDP binding built on top of this module)
// and register themselves at init time.
func RegisterDriver(f SessionFactory) {
	sessionFactory = f
}

// NewSession acquires the one render session for the process lifetime.
// Failing here is the monitor's only unrecoverable startup error.
func NewSession(ctx context.Context) (page.RenderSession, error) {
	if sessionFactory == nil {
		return nil, errors.New("no render session driver registered")
	}
	return sessionFactory(ctx)
}
