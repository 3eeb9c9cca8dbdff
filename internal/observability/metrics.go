package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the tracker.
type Metrics struct {
	UpdatesTotal      prometheus.Counter
	UpdateErrors      prometheus.Counter
	VesselFetchErrors prometheus.Counter
	VesselsTracked    prometheus.Gauge
	TrackerRunning    prometheus.Gauge
	UpdateDuration    prometheus.Histogram

	Classifications  *prometheus.CounterVec // labels: region
	ReportsPublished prometheus.Counter

	// Position provider metrics.
	PositionRequests *prometheus.CounterVec // labels: outcome={success,not_found,error}
	PositionCache    *prometheus.CounterVec // labels: result={hit,miss,expired}
}

// NewMetrics creates and registers all tracker metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		UpdatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carrier_tracker",
			Name:      "updates_total",
			Help:      "Total completed fleet update cycles.",
		}),
		UpdateErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carrier_tracker",
			Name:      "update_errors_total",
			Help:      "Total fleet update cycles that produced no report.",
		}),
		VesselFetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carrier_tracker",
			Name:      "vessel_fetch_errors_total",
			Help:      "Total per-vessel position fetch or classification failures.",
		}),
		VesselsTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "carrier_tracker",
			Name:      "vessels_tracked",
			Help:      "Number of vessels in the most recent report.",
		}),
		TrackerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "carrier_tracker",
			Name:      "tracker_running",
			Help:      "1 when the update loop is active, 0 when shut down.",
		}),
		UpdateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "carrier_tracker",
			Name:      "update_duration_seconds",
			Help:      "Duration of a complete fetch-classify-report cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carrier_tracker",
			Name:      "classifications_total",
			Help:      "Vessel classifications by target region.",
		}, []string{"region"}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carrier_tracker",
			Name:      "reports_published_total",
			Help:      "Deployment reports published to the sink topic.",
		}),
		PositionRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carrier_tracker",
			Name:      "position_requests_total",
			Help:      "Position provider requests by outcome.",
		}, []string{"outcome"}),
		PositionCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carrier_tracker",
			Name:      "position_cache_total",
			Help:      "Position cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.UpdatesTotal,
		m.UpdateErrors,
		m.VesselFetchErrors,
		m.VesselsTracked,
		m.TrackerRunning,
		m.UpdateDuration,
		m.Classifications,
		m.ReportsPublished,
		m.PositionRequests,
		m.PositionCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		UpdatesTotal:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "carrier_tracker", Name: "updates_total"}),
		UpdateErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "carrier_tracker", Name: "update_errors_total"}),
		VesselFetchErrors: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "carrier_tracker", Name: "vessel_fetch_errors_total"}),
		VesselsTracked:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "carrier_tracker", Name: "vessels_tracked"}),
		TrackerRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "carrier_tracker", Name: "tracker_running"}),
		UpdateDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "carrier_tracker", Name: "update_duration_seconds"}),
		Classifications:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "carrier_tracker", Name: "classifications_total"}, []string{"region"}),
		ReportsPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "carrier_tracker", Name: "reports_published_total"}),
		PositionRequests:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "carrier_tracker", Name: "position_requests_total"}, []string{"outcome"}),
		PositionCache:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "carrier_tracker", Name: "position_cache_total"}, []string{"result"}),
	}
}
