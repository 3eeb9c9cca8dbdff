// Package tracker orchestrates the fetch-classify-report cycle for the
// configured carrier fleet.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/carrier-tracker/internal/domain"
	"github.com/couchcryptid/carrier-tracker/internal/mapview"
	"github.com/couchcryptid/carrier-tracker/internal/observability"
)

// ReportPublisher delivers a finished deployment report downstream.
type ReportPublisher interface {
	PublishReport(ctx context.Context, report *domain.DeploymentReport) error
}

// Config holds the tracker's behavioral settings.
type Config struct {
	ToleranceDeg   float64
	UpdateInterval time.Duration
	DataSource     string

	// Optional on-disk artifacts, written after each successful cycle.
	ReportPath string
	MapPath    string
}

// Tracker runs deployment report cycles: fetch each vessel's position,
// classify its heading, assemble the fleet report, and fan it out.
type Tracker struct {
	provider  domain.PositionProvider
	vessels   []domain.Vessel
	regions   []domain.Region
	publisher ReportPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	cfg       Config

	latest atomic.Pointer[domain.DeploymentReport]
	ready  atomic.Bool
}

// New creates a Tracker. Pass a nil publisher to disable report publishing.
func New(provider domain.PositionProvider, vessels []domain.Vessel, regions []domain.Region,
	publisher ReportPublisher, logger *slog.Logger, metrics *observability.Metrics, cfg Config) *Tracker {
	return &Tracker{
		provider:  provider,
		vessels:   vessels,
		regions:   regions,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		cfg:       cfg,
	}
}

// Regions returns the configured region list in classification order.
func (t *Tracker) Regions() []domain.Region {
	return t.regions
}

// Latest returns the most recent deployment report, or nil before the first
// successful cycle.
func (t *Tracker) Latest() *domain.DeploymentReport {
	return t.latest.Load()
}

// CheckReadiness returns nil once at least one report has been produced.
func (t *Tracker) CheckReadiness(_ context.Context) error {
	if !t.ready.Load() {
		return errors.New("no deployment report produced yet")
	}
	return nil
}

// Update runs one full report cycle. Individual vessel failures degrade the
// report (the vessel is logged, counted, and omitted); the cycle itself fails
// only when no vessel yields a position at all.
func (t *Tracker) Update(ctx context.Context) (*domain.DeploymentReport, error) {
	start := time.Now()
	carriers := make([]domain.VesselReport, 0, len(t.vessels))

	for _, vessel := range t.vessels {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		state, err := t.provider.VesselPosition(ctx, vessel.MMSI)
		if err != nil {
			outcome := "error"
			if errors.Is(err, domain.ErrVesselNotFound) {
				outcome = "not_found"
			}
			t.metrics.PositionRequests.WithLabelValues(outcome).Inc()
			t.metrics.VesselFetchErrors.Inc()
			t.logger.Warn("vessel position unavailable, omitting from report",
				"vessel", vessel.Name, "mmsi", vessel.MMSI, "error", err)
			continue
		}
		t.metrics.PositionRequests.WithLabelValues("success").Inc()

		state.Name = vessel.Name
		report, err := domain.BuildVesselReport(state, t.regions, t.cfg.ToleranceDeg)
		if err != nil {
			t.metrics.VesselFetchErrors.Inc()
			t.logger.Warn("vessel state rejected, omitting from report",
				"vessel", vessel.Name, "mmsi", vessel.MMSI, "error", err)
			continue
		}

		t.metrics.Classifications.WithLabelValues(report.TargetRegion).Inc()
		carriers = append(carriers, report)
	}

	if len(carriers) == 0 {
		t.metrics.UpdateErrors.Inc()
		return nil, fmt.Errorf("no vessel positions available (%d vessels configured)", len(t.vessels))
	}

	report := domain.NewDeploymentReport(carriers, t.regions, t.cfg.DataSource)
	t.latest.Store(&report)
	t.ready.Store(true)

	t.metrics.UpdatesTotal.Inc()
	t.metrics.VesselsTracked.Set(float64(len(carriers)))
	t.metrics.UpdateDuration.Observe(time.Since(start).Seconds())

	t.publish(ctx, &report)
	t.writeArtifacts(&report)

	t.logger.Info("deployment report updated",
		"vessels", len(carriers),
		"omitted", len(t.vessels)-len(carriers),
		"duration", time.Since(start),
	)
	return &report, nil
}

// Run executes the update loop until the context is cancelled. Failed cycles
// retry with exponential backoff (200ms doubling to 5s) instead of waiting a
// full update interval.
func (t *Tracker) Run(ctx context.Context) error {
	t.logger.Info("tracker started",
		"vessels", len(t.vessels),
		"regions", len(t.regions),
		"interval", t.cfg.UpdateInterval,
	)
	t.metrics.TrackerRunning.Set(1)
	defer t.metrics.TrackerRunning.Set(0)

	backoff := 200 * time.Millisecond
	const maxBackoff = 5 * time.Second

	for {
		wait := t.cfg.UpdateInterval
		if _, err := t.Update(ctx); err != nil {
			if ctx.Err() != nil {
				t.logger.Info("tracker stopping", "reason", ctx.Err())
				return nil
			}
			t.logger.Error("update cycle failed", "error", err, "retry_in", backoff)
			wait = backoff
			backoff = min(backoff*2, maxBackoff)
		} else {
			backoff = 200 * time.Millisecond
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			t.logger.Info("tracker stopping", "reason", ctx.Err())
			return nil
		case <-timer.C:
		}
	}
}

// publish sends the report downstream. Publishing is best-effort: a sink
// outage must not discard an otherwise good report.
func (t *Tracker) publish(ctx context.Context, report *domain.DeploymentReport) {
	if t.publisher == nil {
		return
	}
	if err := t.publisher.PublishReport(ctx, report); err != nil {
		t.logger.Error("report publish failed", "error", err)
		return
	}
	t.metrics.ReportsPublished.Inc()
}

// writeArtifacts persists the optional JSON report and map HTML files.
func (t *Tracker) writeArtifacts(report *domain.DeploymentReport) {
	if t.cfg.ReportPath != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err == nil {
			err = os.WriteFile(t.cfg.ReportPath, data, 0o644)
		}
		if err != nil {
			t.logger.Error("report file write failed", "path", t.cfg.ReportPath, "error", err)
		}
	}

	if t.cfg.MapPath != "" {
		html, err := mapview.Render(report, t.regions)
		if err == nil {
			err = os.WriteFile(t.cfg.MapPath, html, 0o644)
		}
		if err != nil {
			t.logger.Error("map file write failed", "path", t.cfg.MapPath, "error", err)
		}
	}
}
