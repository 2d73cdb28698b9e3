package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"web_monitor_bot/internal/domain/page"
	"web_monitor_bot/internal/infra/browser"
	"web_monitor_bot/internal/infra/extract"
)

// BrowserSource drives a live render session against the monitored page:
// log in once, scroll the activity list until it stops growing, then collect
// and normalize the offering cards. The session is reused across cycles.
type BrowserSource struct {
	session  page.RenderSession
	flow     *browser.LoginFlow
	url      string
	username string
	password string
	logger   *logrus.Logger

	loggedIn bool
}

func NewBrowserSource(
	session page.RenderSession,
	flow *browser.LoginFlow,
	url string,
	username string,
	password string,
	logger *logrus.Logger,
) *BrowserSource {
	return &BrowserSource{
		session:  session,
		flow:     flow,
		url:      url,
		username: username,
		password: password,
		logger:   logger,
	}
}

func (s *BrowserSource) Snapshot(ctx context.Context) (string, error) {
	if !s.loggedIn {
		if err := s.flow.Login(ctx, s.session, s.url, s.username, s.password); err != nil {
			return "", fmt.Errorf("login: %w", err)
		}
		s.loggedIn = true
	} else {
		if err := s.session.Goto(ctx, s.url); err != nil {
			return "", fmt.Errorf("navigate %s: %w", s.url, err)
		}
		if err := s.session.WaitIdle(ctx); err != nil {
			return "", fmt.Errorf("wait for page: %w", err)
		}
	}

	scrolls, err := browser.ScrollToLoadAll(ctx, s.session, 20, 2*time.Second)
	if err != nil {
		s.logger.Warnf("Scrolling stopped early: %v", err)
	} else {
		s.logger.WithField("scrolls", scrolls).Debug("Finished loading page content")
	}

	candidates, err := browser.CollectCandidates(ctx, s.session)
	if err != nil {
		return "", fmt.Errorf("collect cards: %w", err)
	}

	offerings := extract.BuildOfferings(candidates)
	if len(offerings) == 0 {
		return "", fmt.Errorf("no activity cards matched: %w", extract.ErrTargetNotFound)
	}

	s.logger.WithField("count", len(offerings)).Info("Extracted activity cards")
	return extract.RenderOfferings(offerings), nil
}
