// Package browser implements the selector-driven flows the monitor runs
// against a render session: popup login, scroll-to-load, and offering-card
// collection. Everything here depends only on the page.RenderSession
// capability surface, never on a specific rendering engine.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"web_monitor_bot/internal/domain/page"
)

// ErrLoginNotConfirmed means the form was submitted but no logged-in
// indicator appeared and the connect button is still visible.
var ErrLoginNotConfirmed = errors.New("could not confirm login status")

// LoginFlow drives a popup/modal login: click the connect button, fill the
// credentials form that appears, submit, then probe for logged-in indicators.
// Each step tries an ordered list of candidate selectors because the target
// app's markup drifts between releases.
type LoginFlow struct {
	ConnectSelectors   []string
	EmailSelectors     []string
	PasswordSelectors  []string
	SubmitSelectors    []string
	LoggedInIndicators []string

	// PopupDelay is the wait for the modal animation after clicking the
	// connect button; SettleDelay is the wait for the post-submit redirect.
	PopupDelay  time.Duration
	SettleDelay time.Duration

	// ScreenshotDir, when set, captures the page after a login attempt for
	// diagnosis. Screenshot failures are ignored.
	ScreenshotDir string

	logger *logrus.Logger
}

// DefaultLoginFlow returns a flow tuned for MonClub-style apps.
func DefaultLoginFlow(log *logrus.Logger) *LoginFlow {
	return &LoginFlow{
		ConnectSelectors: []string{
			"button:has-text('SE CONNECTER')",
			"a:has-text('SE CONNECTER')",
			"[class*='login']",
			"[class*='connect']",
			".btn-login",
			"#login-button",
		},
		EmailSelectors: []string{
			"input[placeholder*='Adresse Email']",
			"input[placeholder*='email' i]",
			"input[type='email']",
			"input[name='email']",
			"input[name='username']",
			"#email",
		},
		PasswordSelectors: []string{
			"input[placeholder*='Mot de passe']",
			"input[placeholder*='password' i]",
			"input[type='password']",
			"input[name='password']",
			"#password",
		},
		SubmitSelectors: []string{
			"button:has-text('SUIVANT')",
			"button:has-text('Connexion')",
			"button:has-text('Se connecter')",
			"button:has-text('Login')",
			"button[type='submit']",
			".btn-submit",
		},
		LoggedInIndicators: []string{
			"button:has-text('MON COMPTE')",
			"button:has-text('DÉCONNEXION')",
			"button:has-text('PROFIL')",
			"a:has-text('Déconnexion')",
			"a:has-text('Mon compte')",
			"[class*='user-menu']",
			".user-profile",
			".logout-button",
		},
		PopupDelay:  time.Second,
		SettleDelay: 3 * time.Second,
		logger:      log,
	}
}

// Login runs the flow against the session. The session stays open regardless
// of the outcome; teardown is the owner's responsibility.
func (f *LoginFlow) Login(ctx context.Context, session page.RenderSession, baseURL, username, password string) error {
	if err := session.Goto(ctx, baseURL); err != nil {
		return fmt.Errorf("error navigating to %s: %w", baseURL, err)
	}
	if err := session.WaitIdle(ctx); err != nil {
		return fmt.Errorf("error waiting for page load: %w", err)
	}

	connect, ok := f.firstVisible(ctx, session, f.ConnectSelectors)
	if !ok {
		return errors.New("connect button not found")
	}
	if err := session.Click(ctx, connect); err != nil {
		return fmt.Errorf("error clicking connect button %q: %w", connect, err)
	}
	if err := wait(ctx, f.PopupDelay); err != nil {
		return err
	}

	if err := f.fillFirst(ctx, session, f.EmailSelectors, username, "email field"); err != nil {
		return err
	}
	if err := f.fillFirst(ctx, session, f.PasswordSelectors, password, "password field"); err != nil {
		return err
	}

	submit, ok := f.firstVisible(ctx, session, f.SubmitSelectors)
	if !ok {
		return errors.New("submit button not found")
	}
	if err := session.Click(ctx, submit); err != nil {
		return fmt.Errorf("error clicking submit button %q: %w", submit, err)
	}
	if err := wait(ctx, f.SettleDelay); err != nil {
		return err
	}

	if indicator, ok := f.firstVisible(ctx, session, f.LoggedInIndicators); ok {
		f.logger.WithField("indicator", indicator).Debug("Logged-in indicator found")
		f.snapshot(ctx, session, "after_login.png")
		return nil
	}
	// Fallback heuristic: the connect button disappearing is a good sign.
	if !session.Visible(ctx, f.ConnectSelectors[0]) {
		f.logger.Debug("Connect button gone after submit, assuming login success")
		f.snapshot(ctx, session, "after_login.png")
		return nil
	}

	f.snapshot(ctx, session, "login_attempt.png")
	return ErrLoginNotConfirmed
}

func (f *LoginFlow) fillFirst(ctx context.Context, session page.RenderSession, selectors []string, value, what string) error {
	sel, ok := f.firstVisible(ctx, session, selectors)
	if !ok {
		return fmt.Errorf("%s not found", what)
	}
	if err := session.Fill(ctx, sel, value); err != nil {
		return fmt.Errorf("error filling %s %q: %w", what, sel, err)
	}
	return nil
}

func (f *LoginFlow) firstVisible(ctx context.Context, session page.RenderSession, selectors []string) (string, bool) {
	for _, sel := range selectors {
		if session.Visible(ctx, sel) {
			return sel, true
		}
	}
	return "", false
}

func (f *LoginFlow) snapshot(ctx context.Context, session page.RenderSession, name string) {
	if f.ScreenshotDir == "" {
		return
	}
	if err := session.Screenshot(ctx, f.ScreenshotDir+"/"+name); err != nil {
		f.logger.Debugf("Screenshot %s failed: %v", name, err)
	}
}

// wait sleeps for d but returns early when the context is canceled.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
