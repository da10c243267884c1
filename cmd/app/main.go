package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/bootstrap"
	"github.com/Domenick1991/flightdesk/internal/cache"
	"github.com/Domenick1991/flightdesk/internal/flighttime"
	"github.com/Domenick1991/flightdesk/internal/kafka"
	"github.com/Domenick1991/flightdesk/internal/logging"
	"github.com/Domenick1991/flightdesk/internal/repository"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
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
	logger := logging.New(cfg.Log, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	var opts []flights.Option
	if cfg.Schedule.ChronologicalDates {
		opts = append(opts, flights.WithOrdering(flighttime.Chronological))
	}

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, flights are read from the database", "error", err)
		} else {
			opts = append(opts, flights.WithCache(redisCache))
		}
	}

	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.FlightEventsTopic != "" {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			logger.Warn("kafka check failed, flight events may be dropped", "error", err)
		}
		opts = append(opts, flights.WithEvents(producer, cfg.Kafka.FlightEventsTopic))
	}

	flightService := flights.NewFlightService(store.Flights, store.Aircraft, logger, opts...)

	if err := bootstrap.Run(ctx, cfg, flightService, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
