package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SessionSpectra/internal/alerter"
	"SessionSpectra/internal/collector"
	"SessionSpectra/internal/config"
	"SessionSpectra/internal/model"
	"SessionSpectra/internal/notification"
	"SessionSpectra/internal/probe"
	"SessionSpectra/internal/report"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file")
	flag.Parse()

	log.Println("Starting ss-engine...")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	snapshotInterval, err := time.ParseDuration(cfg.Collector.SnapshotInterval)
	if err != nil {
		log.Fatalf("Invalid snapshot_interval: %v", err)
	}
	if snapshotInterval <= 0 {
		log.Fatalf("snapshot_interval must be a positive duration")
	}

	writers := report.NewWriters(cfg.Collector.Writers)
	if len(writers) == 0 {
		log.Fatalf("No enabled writers configured, engine cannot start.")
	}

	col := collector.New(snapshotInterval, cfg.Collector.MaxBins, cfg.Collector.SizeOfInputChannel, writers)

	if cfg.Alerter.Enabled {
		// For now, email is the only notifier. This can be expanded later.
		var notifier model.Notifier
		if cfg.SMTP.Host != "" {
			notifier = notification.NewEmailNotifier(cfg.SMTP)
		}
		if notifier != nil {
			col.SetObserver(alerter.NewAlerter(&cfg.Alerter, notifier))
			log.Println("Alerter enabled and initialized.")
		} else {
			log.Println("Alerter is enabled in config, but no notifiers are configured. Alerter will not run.")
		}
	}

	col.Start()

	sub, err := probe.NewSubscriber(cfg.Probe)
	if err != nil {
		log.Fatalf("Failed to create subscriber: %v", err)
	}

	if err := sub.Start(func(iv model.Interval) {
		col.Input() <- iv
	}); err != nil {
		log.Fatalf("Subscriber failed to start: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	log.Println("Shutdown signal received, stopping...")
	sub.Close()
	col.Stop()
	log.Println("Shutdown complete.")
}
