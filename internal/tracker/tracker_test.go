package tracker_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/carrier-tracker/internal/adapter/marinetraffic"
	"github.com/couchcryptid/carrier-tracker/internal/config"
	"github.com/couchcryptid/carrier-tracker/internal/domain"
	"github.com/couchcryptid/carrier-tracker/internal/observability"
	"github.com/couchcryptid/carrier-tracker/internal/tracker"
)

type capturingPublisher struct {
	reports []*domain.DeploymentReport
	err     error
}

func (p *capturingPublisher) PublishReport(_ context.Context, report *domain.DeploymentReport) error {
	if p.err != nil {
		return p.err
	}
	p.reports = append(p.reports, report)
	return nil
}

func newTestTracker(t *testing.T, provider domain.PositionProvider, publisher tracker.ReportPublisher, cfg tracker.Config) *tracker.Tracker {
	t.Helper()
	fleet := config.DefaultFleet()
	if cfg.ToleranceDeg == 0 {
		cfg.ToleranceDeg = domain.DefaultHeadingTolerance
	}
	if cfg.DataSource == "" {
		cfg.DataSource = "static"
	}
	return tracker.New(provider, fleet.Vessels, fleet.Regions, publisher,
		slog.Default(), observability.NewMetricsForTesting(), cfg)
}

func TestUpdateClassifiesDefaultFleet(t *testing.T) {
	frozen := time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	provider := marinetraffic.NewStaticProvider(clockwork.NewFakeClockAt(frozen))
	tr := newTestTracker(t, provider, nil, tracker.Config{})

	report, err := tr.Update(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Carriers, 6)
	assert.Equal(t, frozen, report.GeneratedAt)
	assert.Equal(t, "static", report.DataSource)

	byName := make(map[string]domain.VesselReport, len(report.Carriers))
	for _, c := range report.Carriers {
		byName[c.Name] = c
	}

	// Static deployment snapshot against the default regions: the Ford off
	// Cyprus heading east and the Nimitz in the Persian Gulf heading west both
	// point at the Middle East center; the Lincoln off Singapore and the
	// Roosevelt off Hawaii point into the Indian Ocean box.
	assert.Equal(t, "Middle East", byName["USS Gerald R. Ford"].TargetRegion)
	assert.Equal(t, "Middle East", byName["USS Nimitz"].TargetRegion)
	assert.Equal(t, domain.RegionOtherOperations, byName["USS Dwight D. Eisenhower"].TargetRegion)
	assert.Equal(t, "Indian Ocean", byName["USS Abraham Lincoln"].TargetRegion)
	assert.Equal(t, domain.RegionOtherOperations, byName["USS Carl Vinson"].TargetRegion)
	assert.Equal(t, "Indian Ocean", byName["USS Theodore Roosevelt"].TargetRegion)

	assert.Len(t, report.StrategicDeployments["middle_east"], 2)
	assert.Len(t, report.StrategicDeployments["indian_ocean"], 2)
	assert.Empty(t, report.StrategicDeployments["east_asia"])
}

func TestUpdateFlipsReadiness(t *testing.T) {
	tr := newTestTracker(t, marinetraffic.NewStaticProvider(nil), nil, tracker.Config{})

	require.Error(t, tr.CheckReadiness(context.Background()))
	assert.Nil(t, tr.Latest())

	report, err := tr.Update(context.Background())
	require.NoError(t, err)

	assert.NoError(t, tr.CheckReadiness(context.Background()))
	assert.Equal(t, report, tr.Latest())
}

func TestUpdateOmitsUnavailableVessels(t *testing.T) {
	// Only two of the six configured carriers have positions.
	positions := map[string]domain.VesselState{
		"368123000": {Position: domain.Geo{Lat: 35.2, Lon: 33.1}, Course: 90, Speed: 18.5},
		"368456000": {Position: domain.Geo{Lat: 26.8, Lon: 50.3}, Course: 270, Speed: 18.5},
	}
	provider := marinetraffic.NewStaticProviderWithPositions(positions, nil)
	tr := newTestTracker(t, provider, nil, tracker.Config{})

	report, err := tr.Update(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Carriers, 2, "unavailable vessels degrade the report, they do not fail it")
}

func TestUpdateFailsWhenNoPositionsAvailable(t *testing.T) {
	provider := marinetraffic.NewStaticProviderWithPositions(map[string]domain.VesselState{}, nil)
	tr := newTestTracker(t, provider, nil, tracker.Config{})

	_, err := tr.Update(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no vessel positions available")
	assert.Error(t, tr.CheckReadiness(context.Background()), "a failed cycle does not mark the service ready")
}

func TestUpdatePublishesReport(t *testing.T) {
	publisher := &capturingPublisher{}
	tr := newTestTracker(t, marinetraffic.NewStaticProvider(nil), publisher, tracker.Config{})

	report, err := tr.Update(context.Background())
	require.NoError(t, err)

	require.Len(t, publisher.reports, 1)
	assert.Equal(t, report, publisher.reports[0])
}

func TestUpdateSurvivesPublisherFailure(t *testing.T) {
	publisher := &capturingPublisher{err: errors.New("broker unavailable")}
	tr := newTestTracker(t, marinetraffic.NewStaticProvider(nil), publisher, tracker.Config{})

	report, err := tr.Update(context.Background())
	require.NoError(t, err, "publishing is best-effort")
	assert.Equal(t, report, tr.Latest())
}

func TestUpdateWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	cfg := tracker.Config{
		ReportPath: filepath.Join(dir, "report.json"),
		MapPath:    filepath.Join(dir, "map.html"),
	}
	tr := newTestTracker(t, marinetraffic.NewStaticProvider(nil), nil, cfg)

	_, err := tr.Update(context.Background())
	require.NoError(t, err)

	reportData, err := os.ReadFile(cfg.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(reportData), "strategic_deployments")

	mapData, err := os.ReadFile(cfg.MapPath)
	require.NoError(t, err)
	assert.Contains(t, string(mapData), "leaflet")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	cfg := tracker.Config{UpdateInterval: 10 * time.Millisecond}
	tr := newTestTracker(t, marinetraffic.NewStaticProvider(nil), nil, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tr.Run(ctx) }()

	// Let at least one cycle complete, then stop.
	require.Eventually(t, func() bool {
		return tr.Latest() != nil
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
