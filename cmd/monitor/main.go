package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"web_monitor_bot/internal/app"
	"web_monitor_bot/internal/infra/browser"
	"web_monitor_bot/internal/infra/config"
	"web_monitor_bot/internal/infra/fetch"
	"web_monitor_bot/internal/infra/logger"
	"web_monitor_bot/internal/infra/notify"
	"web_monitor_bot/internal/infra/scheduler"
	"web_monitor_bot/internal/infra/snapshot"
)

func main() {
	once := flag.Bool("once", false, "run a single monitoring cycle and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("Could not load application configuration: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.Environment)
	log := logger.Get()
	log.WithFields(map[string]interface{}{
		"url":      cfg.URL,
		"interval": cfg.CheckInterval.String(),
		"mode":     cfg.Mode,
		"channels": cfg.Channels.Enabled(),
	}).Info("Website monitor starting...")

	store, err := snapshot.Open(snapshot.Config{
		Backend:     cfg.SnapshotBackend,
		Path:        cfg.SnapshotPath,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		log.Fatalf("Could not open snapshot store: %v", err)
	}
	defer store.Close()
	log.WithField("backend", cfg.SnapshotBackend).Info("Snapshot store ready")

	channels, err := notify.Build(cfg.Channels, cfg.URL)
	if err != nil {
		log.Fatalf("Could not build notification channels: %v", err)
	}
	if len(channels) == 0 {
		log.Warn("No notification channels configured; changes will only be logged")
	}
	dispatcher := app.NewDispatchService(channels, log)

	var source app.ContentSource
	switch cfg.Mode {
	case config.ModeBrowser:
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		session, err := browser.NewSession(ctx)
		cancel()
		if err != nil {
			store.Close()
			log.Fatalf("Could not start render session: %v", err)
		}
		defer session.Close()
		source = app.NewBrowserSource(session, browser.DefaultLoginFlow(log), cfg.URL, cfg.Username, cfg.Password, log)
	default:
		source = app.NewStaticSource(fetch.NewHTTPFetcher(), cfg.URL, cfg.TargetTextKeywords, cfg.MinTextLength)
	}

	monitor := app.NewMonitorService(source, store, dispatcher, cfg.URL, cfg.Subject, cfg.NotifyOnUnchanged, log)

	if *once {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.CheckInterval)
		defer cancel()
		if _, err := monitor.RunCycle(ctx); err != nil {
			log.Errorf("Monitoring cycle failed: %v", err)
		}
		return
	}

	// Armed before the scheduler runs its first cycle, so a signal during
	// that cycle still goes through graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sched := scheduler.NewMonitorScheduler(monitor, cfg.CheckInterval, log)
	if err := sched.Start(); err != nil {
		// Fatalf would skip the deferred session teardown.
		log.Errorf("Could not start scheduler: %v", err)
		return
	}

	<-quit

	log.Info("Shutting down monitor...")
	sched.Stop()
	log.Info("Monitor shut down gracefully")
}
