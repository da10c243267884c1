package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/audit"
	"github.com/Domenick1991/flightdesk/internal/flighttime"
	"github.com/Domenick1991/flightdesk/internal/kafka"
	"github.com/Domenick1991/flightdesk/internal/logging"
	"github.com/Domenick1991/flightdesk/internal/repository"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
	kafkaGo "github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log, os.Stdout).With("process", "worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	digests := newDigestReporter(store, logger)
	recorder := audit.NewRecorder(logger)

	eg, egCtx := errgroup.WithContext(ctx)

	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.FlightEventsTopic != "" {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.FlightEventsTopic)
		defer consumer.Close()

		eg.Go(func() error {
			err := consumer.Consume(egCtx, recorder.Record, func(msg kafkaGo.Message, err error) {
				logger.Warn("skipping undecodable event", "offset", msg.Offset, "partition", msg.Partition, "error", err)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("consumer stopped: %w", err)
		})
	} else {
		logger.Info("kafka not configured, only digests will run")
	}

	window := time.Duration(cfg.Worker.DigestWindowHours) * time.Hour
	interval := time.Duration(cfg.Worker.DigestIntervalMinutes) * time.Minute

	eg.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := recorder.Digest(egCtx, digests, time.Now(), window); err != nil {
					logger.Error("digest failed", "error", err)
				}
			case <-egCtx.Done():
				return nil
			}
		}
	})

	if err := eg.Wait(); err != nil {
		logger.Error("worker stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("worker shut down")
}

// newDigestReporter orders dates chronologically regardless of config.
// Digest windows roll across month and year boundaries.
func newDigestReporter(store *repository.Store, logger *slog.Logger) *flights.FlightService {
	return flights.NewFlightService(store.Flights, store.Aircraft, logger, flights.WithOrdering(flighttime.Chronological))
}
