package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RouteLookups    *prometheus.CounterVec
	ProviderResults *prometheus.CounterVec
	RequestSeconds  *prometheus.HistogramVec
	InsertConflicts prometheus.Counter
	ActiveWorkers   prometheus.Gauge
	HTTPSeconds     *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RouteLookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "roadbook_route_lookups_total",
			Help: "Total number of route lookups by result (hit, computed, unavailable, error).",
		}, []string{"result"}),
		ProviderResults: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "roadbook_provider_results_total",
			Help: "Total number of routing provider calls by outcome.",
		}, []string{"provider", "outcome"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roadbook_provider_request_duration_seconds",
			Help:    "Duration of requests to the routing provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		InsertConflicts: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "roadbook_route_insert_conflicts_total",
			Help: "Total number of route inserts that lost a race to another writer.",
		}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "roadbook_warm_active_workers",
			Help: "Current number of workers warming routes.",
		}),
		HTTPSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roadbook_http_request_duration_seconds",
			Help:    "Duration of API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}
