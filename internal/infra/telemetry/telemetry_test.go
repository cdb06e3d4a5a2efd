package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestAuthMetricsObserveOutcome(t *testing.T) {
	registry := prometheus.NewRegistry()

	metrics, err := NewAuthMetrics(registry)
	if err != nil {
		t.Fatalf("NewAuthMetrics returned error: %v", err)
	}

	metrics.ObserveOutcome("login", "success")
	metrics.ObserveOutcome("login", "success")
	metrics.ObserveOutcome("signup", "conflict")

	if got := testutil.ToFloat64(metrics.Outcomes().WithLabelValues("login", "success")); got != 2 {
		t.Fatalf("expected 2 successful logins, got %f", got)
	}
	if got := testutil.ToFloat64(metrics.Outcomes().WithLabelValues("signup", "conflict")); got != 1 {
		t.Fatalf("expected 1 signup conflict, got %f", got)
	}
}

func TestAuthMetricsReusesRegisteredCollector(t *testing.T) {
	registry := prometheus.NewRegistry()

	first, err := NewAuthMetrics(registry)
	if err != nil {
		t.Fatalf("first NewAuthMetrics returned error: %v", err)
	}
	second, err := NewAuthMetrics(registry)
	if err != nil {
		t.Fatalf("second NewAuthMetrics returned error: %v", err)
	}

	first.ObserveOutcome("logout", "success")
	if got := testutil.ToFloat64(second.Outcomes().WithLabelValues("logout", "success")); got != 1 {
		t.Fatalf("expected shared collector, got %f", got)
	}
}

func TestAuthMetricsNilIsNoop(t *testing.T) {
	var metrics *AuthMetrics
	metrics.ObserveOutcome("login", "success")
}

func TestExporterOptions(t *testing.T) {
	if got := len(exporterOptions("http://collector:4318")); got != 3 {
		t.Fatalf("expected timeout, url and insecure options, got %d", got)
	}
	if got := len(exporterOptions("https://collector:4318")); got != 2 {
		t.Fatalf("expected timeout and url options, got %d", got)
	}
	if got := len(exporterOptions("collector:4318")); got != 3 {
		t.Fatalf("expected timeout, endpoint and insecure options, got %d", got)
	}
}
