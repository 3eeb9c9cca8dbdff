package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/carrier-tracker/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/carrier-tracker/internal/adapter/kafka"
	"github.com/couchcryptid/carrier-tracker/internal/adapter/marinetraffic"
	"github.com/couchcryptid/carrier-tracker/internal/config"
	"github.com/couchcryptid/carrier-tracker/internal/domain"
	"github.com/couchcryptid/carrier-tracker/internal/observability"
	"github.com/couchcryptid/carrier-tracker/internal/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	fleet, err := config.LoadFleet(cfg.FleetConfigPath)
	if err != nil {
		logger.Error("failed to load fleet config", "error", err)
		os.Exit(1)
	}
	logger.Info("fleet loaded",
		"vessels", len(fleet.Vessels),
		"regions", len(fleet.Regions),
		"path", cfg.FleetConfigPath,
	)

	// Position provider (feature-flagged via MARINETRAFFIC_ENABLED / MARINETRAFFIC_TOKEN).
	var provider domain.PositionProvider
	dataSource := "static"
	if cfg.MarineTrafficEnabled {
		client := marinetraffic.NewClient(cfg.MarineTrafficToken, cfg.MarineTrafficTimeout, logger)
		provider = marinetraffic.NewCachedProvider(client, cfg.PositionCacheSize, cfg.PositionCacheTTL, metrics)
		dataSource = "marinetraffic"
		logger.Info("marinetraffic provider enabled",
			"cache_size", cfg.PositionCacheSize, "cache_ttl", cfg.PositionCacheTTL)
	} else {
		provider = marinetraffic.NewStaticProvider(nil)
		logger.Info("marinetraffic disabled, using static positions")
	}

	// Report publisher (feature-flagged via KAFKA_ENABLED).
	var publisher tracker.ReportPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaSinkTopic)
	}

	trk := tracker.New(provider, fleet.Vessels, fleet.Regions, publisher, logger, metrics, tracker.Config{
		ToleranceDeg:   cfg.HeadingTolerance,
		UpdateInterval: cfg.UpdateInterval,
		DataSource:     dataSource,
		ReportPath:     cfg.ReportPath,
		MapPath:        cfg.MapPath,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, trk, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start tracking loop.
	go func() {
		if err := trk.Run(ctx); err != nil {
			logger.Error("tracker error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
