package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"web_monitor_bot/internal/domain/observation"
	"web_monitor_bot/internal/infra/extract"
)

// ContentSource produces the canonical extracted content for one cycle.
// Implementations wrap either a static HTTP fetch or an authenticated render
// session; an extraction miss surfaces as extract.ErrTargetNotFound.
type ContentSource interface {
	Snapshot(ctx context.Context) (string, error)
}

// MonitorService runs the change-detection cycle: snapshot the page, compare
// the fingerprint against the stored slot, persist the new observation and
// dispatch notifications on a change. Failures before comparison abort the
// cycle without touching the store, so a bad cycle never overwrites a good
// baseline.
type MonitorService struct {
	source            ContentSource
	store             observation.Store
	dispatcher        Dispatcher
	url               string
	subject           string
	notifyOnUnchanged bool
	logger            *logrus.Logger
}

func NewMonitorService(
	source ContentSource,
	store observation.Store,
	dispatcher Dispatcher,
	url string,
	subject string,
	notifyOnUnchanged bool,
	logger *logrus.Logger,
) *MonitorService {
	return &MonitorService{
		source:            source,
		store:             store,
		dispatcher:        dispatcher,
		url:               url,
		subject:           subject,
		notifyOnUnchanged: notifyOnUnchanged,
		logger:            logger,
	}
}

// RunCycle executes one fetch → extract → compare → persist → notify pass and
// returns the comparison outcome. The returned error is diagnostic; the
// caller's loop logs it and proceeds to the next scheduled cycle.
func (s *MonitorService) RunCycle(ctx context.Context) (*observation.ChangeEvent, error) {
	s.logger.WithField("url", s.url).Info("Checking for changes...")

	content, err := s.source.Snapshot(ctx)
	if err != nil {
		// Page-reachable-but-pattern-missing and page-unreachable are
		// logged distinctly; both abort the cycle without a store write.
		if errors.Is(err, extract.ErrTargetNotFound) {
			s.logger.WithField("url", s.url).Warnf("Could not extract target content: %v", err)
		} else {
			s.logger.WithField("url", s.url).Errorf("Error obtaining page content: %v", err)
		}
		return nil, err
	}

	fingerprint := observation.Fingerprint(content)
	previous, err := s.store.Read(ctx)
	if err != nil {
		s.logger.Errorf("Error reading snapshot store: %v", err)
		return nil, err
	}

	event := &observation.ChangeEvent{
		Previous:    previous,
		Current:     content,
		Fingerprint: fingerprint,
	}

	switch {
	case previous == nil:
		event.FirstRun = true
		s.logger.Info("First run - saving current content as baseline")
		if err := s.persist(ctx, content); err != nil {
			return event, err
		}

	case previous.Fingerprint != fingerprint:
		event.Changed = true
		s.logger.Info("CHANGE DETECTED!")
		if err := s.persist(ctx, content); err != nil {
			return event, err
		}
		s.dispatcher.Dispatch(ctx, s.subject, s.changeMessage(previous, content))

	default:
		s.logger.Info("No changes detected")
		// The slot is refreshed even without a change so the timestamp
		// always reflects the latest observation.
		if err := s.persist(ctx, content); err != nil {
			return event, err
		}
		if s.notifyOnUnchanged {
			s.dispatcher.Dispatch(ctx, s.subject, s.heartbeatMessage(previous))
		}
	}
	return event, nil
}

func (s *MonitorService) persist(ctx context.Context, content string) error {
	if err := s.store.Write(ctx, observation.New(content, s.url)); err != nil {
		s.logger.Errorf("Error saving snapshot: %v", err)
		return fmt.Errorf("error saving snapshot: %w", err)
	}
	return nil
}

func (s *MonitorService) changeMessage(previous *observation.Observation, current string) string {
	return fmt.Sprintf(`Content change detected on the monitored page!

URL: %s
Timestamp: %s

PREVIOUS CONTENT:
%s

NEW CONTENT:
%s

This is an automated alert from your website monitor.
`, s.url, time.Now().Format("2006-01-02 15:04:05"), previous.Content, current)
}

func (s *MonitorService) heartbeatMessage(previous *observation.Observation) string {
	return fmt.Sprintf("No changes detected in monitored content\nLast change observed: %s",
		previous.Timestamp.Format(time.RFC3339))
}
