package browser_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web_monitor_bot/internal/domain/page"
	"web_monitor_bot/internal/infra/browser"
)

type fakeElement struct {
	text    string
	closest page.Element
}

func (e *fakeElement) Text(context.Context) (string, error) { return e.text, nil }

func (e *fakeElement) Closest(context.Context, string) (page.Element, error) {
	return e.closest, nil
}

// fakeSession is a scripted render session: visibility is a mutable set and
// onClick lets a test simulate the page reacting to a click.
type fakeSession struct {
	visible  map[string]bool
	fills    map[string]string
	clicks   []string
	onClick  func(selector string)
	elements map[string][]page.Element
	heights  []int
	heightAt int
	evals    []string
	closed   bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		visible:  map[string]bool{},
		fills:    map[string]string{},
		elements: map[string][]page.Element{},
		heights:  []int{1000},
	}
}

func (s *fakeSession) Goto(context.Context, string) error { return nil }
func (s *fakeSession) WaitIdle(context.Context) error     { return nil }

func (s *fakeSession) Fill(_ context.Context, selector, value string) error {
	s.fills[selector] = value
	return nil
}

func (s *fakeSession) Click(_ context.Context, selector string) error {
	s.clicks = append(s.clicks, selector)
	if s.onClick != nil {
		s.onClick(selector)
	}
	return nil
}

func (s *fakeSession) Visible(_ context.Context, selector string) bool {
	return s.visible[selector]
}

func (s *fakeSession) QueryAll(_ context.Context, selector string) ([]page.Element, error) {
	return s.elements[selector], nil
}

func (s *fakeSession) Evaluate(_ context.Context, script string) (any, error) {
	s.evals = append(s.evals, script)
	if script == "document.body.scrollHeight" {
		h := s.heights[s.heightAt]
		if s.heightAt < len(s.heights)-1 {
			s.heightAt++
		}
		return h, nil
	}
	return nil, nil
}

func (s *fakeSession) Screenshot(context.Context, string) error { return nil }

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func testFlow() *browser.LoginFlow {
	log := logrus.New()
	log.SetOutput(&strings.Builder{})
	flow := browser.DefaultLoginFlow(log)
	flow.PopupDelay = 0
	flow.SettleDelay = 0
	return flow
}

const (
	connectSel  = "button:has-text('SE CONNECTER')"
	emailSel    = "input[type='email']"
	passwordSel = "input[type='password']"
	submitSel   = "button[type='submit']"
	accountSel  = "button:has-text('MON COMPTE')"
)

func loginReadySession() *fakeSession {
	s := newFakeSession()
	s.visible[connectSel] = true
	s.visible[emailSel] = true
	s.visible[passwordSel] = true
	s.visible[submitSel] = true
	return s
}

func TestLoginConfirmedByIndicator(t *testing.T) {
	s := loginReadySession()
	s.onClick = func(selector string) {
		if selector == submitSel {
			s.visible[accountSel] = true
		}
	}

	err := testFlow().Login(context.Background(), s, "https://example.org", "user@example.org", "secret")
	require.NoError(t, err)

	assert.Equal(t, "user@example.org", s.fills[emailSel])
	assert.Equal(t, "secret", s.fills[passwordSel])
	assert.Equal(t, []string{connectSel, submitSel}, s.clicks)
}

func TestLoginConfirmedByConnectButtonGone(t *testing.T) {
	s := loginReadySession()
	s.onClick = func(selector string) {
		if selector == submitSel {
			s.visible[connectSel] = false
		}
	}

	err := testFlow().Login(context.Background(), s, "https://example.org", "user@example.org", "secret")
	require.NoError(t, err)
}

func TestLoginNotConfirmed(t *testing.T) {
	// Form submits but nothing changes: no indicator, connect still there.
	s := loginReadySession()

	err := testFlow().Login(context.Background(), s, "https://example.org", "user@example.org", "secret")
	require.ErrorIs(t, err, browser.ErrLoginNotConfirmed)
}

func TestLoginConnectButtonMissing(t *testing.T) {
	s := newFakeSession()

	err := testFlow().Login(context.Background(), s, "https://example.org", "user@example.org", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect button not found")
	assert.Empty(t, s.clicks)
}

func TestLoginTriesSelectorCandidatesInOrder(t *testing.T) {
	s := loginReadySession()
	// Only a later email candidate is present.
	delete(s.visible, emailSel)
	s.visible["input[name='username']"] = true
	s.onClick = func(selector string) {
		if selector == submitSel {
			s.visible[accountSel] = true
		}
	}

	err := testFlow().Login(context.Background(), s, "https://example.org", "user@example.org", "secret")
	require.NoError(t, err)
	assert.Equal(t, "user@example.org", s.fills["input[name='username']"])
}
