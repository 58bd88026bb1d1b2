package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCatalogMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCatalogMetrics(reg)
	m.IncResolve("memory", OutcomeFallback)
	m.IncResolve("memory", OutcomeFallback)
	m.IncFallback("memory")
	m.ObserveSource("memory", "list", 300*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "catalog_resolve_total", "outcome", OutcomeFallback); err != nil {
		t.Fatalf("fetch resolves: %v", err)
	} else if got != 2 {
		t.Fatalf("expected resolves=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "catalog_fallback_total", "source", "memory"); err != nil {
		t.Fatalf("fetch fallbacks: %v", err)
	} else if got != 1 {
		t.Fatalf("expected fallbacks=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "catalog_source_duration_seconds", "op", "list"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got < 0.3 {
		t.Fatalf("expected duration sum >= 0.3, got %f", got)
	}
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("GET", "/api/v1/sweets", 200, 10*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "/api/v1/sweets"); err != nil || got != 1 {
		t.Fatalf("expected one request, got %f (%v)", got, err)
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	var nilMetrics *CatalogMetrics
	nilMetrics.IncResolve("x", "y")
	NewCatalogMetrics(nil).IncFallback("x")
	NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Millisecond)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
