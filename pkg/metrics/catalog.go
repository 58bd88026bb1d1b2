package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeHit      = "hit"
	OutcomeEmpty    = "empty"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// CatalogMetrics records resolver outcomes and data source latency.
type CatalogMetrics struct {
	resolves  *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
// A nil registerer yields a no-op collector.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	resolves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_resolve_total",
		Help: "Catalog resolutions by data source and outcome.",
	}, []string{"source", "outcome"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fallback_total",
		Help: "Broadened search-only queries issued after an empty narrow result.",
	}, []string{"source"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_source_duration_seconds",
		Help:    "Latency of catalog data source calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source", "op"})
	reg.MustRegister(resolves, fallbacks, duration)
	return &CatalogMetrics{
		resolves:  resolves,
		fallbacks: fallbacks,
		duration:  duration,
	}
}

// IncResolve counts one resolve call with its outcome.
func (c *CatalogMetrics) IncResolve(source, outcome string) {
	if c == nil || c.resolves == nil {
		return
	}
	c.resolves.WithLabelValues(normalizeLabel(source), normalizeLabel(outcome)).Inc()
}

// IncFallback counts one broadened query.
func (c *CatalogMetrics) IncFallback(source string) {
	if c == nil || c.fallbacks == nil {
		return
	}
	c.fallbacks.WithLabelValues(normalizeLabel(source)).Inc()
}

// ObserveSource records how long a data source call took.
func (c *CatalogMetrics) ObserveSource(source, op string, d time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(source), normalizeLabel(op)).Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
