package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"web_monitor_bot/internal/domain/observation"
)

// CycleRunner is the monitoring operation the scheduler drives each interval.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*observation.ChangeEvent, error)
}

// MonitorScheduler triggers a monitoring cycle at a fixed interval. One cycle
// runs immediately on Start so a deploy gives feedback without waiting out a
// full interval.
type MonitorScheduler struct {
	cronEngine  *cron.Cron
	runner      CycleRunner
	logger      *logrus.Logger
	interval    time.Duration
	cycleBudget time.Duration
}

func NewMonitorScheduler(runner CycleRunner, interval time.Duration, logger *logrus.Logger) *MonitorScheduler {
	return &MonitorScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		runner:     runner,
		logger:     logger,
		interval:   interval,
		// A cycle that outlives its own interval is stuck; cancel it
		// before the next one fires.
		cycleBudget: interval,
	}
}

func (s *MonitorScheduler) Start() error {
	s.logger.WithField("interval", s.interval.String()).Info("Starting monitor scheduler...")

	s.runOnce()

	_, err := s.cronEngine.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		s.runOnce()
	})
	if err != nil {
		return fmt.Errorf("could not add monitoring cron job: %w", err)
	}

	s.cronEngine.Start()
	s.logger.Info("Monitor scheduler started")
	return nil
}

func (s *MonitorScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cycleBudget)
	defer cancel()

	if _, err := s.runner.RunCycle(ctx); err != nil {
		s.logger.Errorf("Monitoring cycle failed: %v", err)
	}
}

func (s *MonitorScheduler) Stop() {
	s.logger.Info("Stopping monitor scheduler...")
	ctx := s.cronEngine.Stop() // waits for a running cycle to finish
	<-ctx.Done()
	s.logger.Info("Monitor scheduler gracefully stopped")
}
