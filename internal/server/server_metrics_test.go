package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/preston-bernstein/metascore-lookup-service/internal/config"
	"github.com/preston-bernstein/metascore-lookup-service/internal/metrics"
	"github.com/preston-bernstein/metascore-lookup-service/internal/testutil"
)

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: true},
		Provider: "fixture",
	}

	srv := newServerWithMetrics(cfg, nil, testutil.EmptySource{}, nil)
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
}

func TestNewServerWithMetricsDisabledSkipsSetup(t *testing.T) {
	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: false},
		Provider: "fixture",
	}

	srv := newServerWithMetrics(cfg, nil, testutil.EmptySource{}, nil)
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, shutdown := testutil.NewRecorderWithShutdown()
	defer func() { _ = shutdown(context.Background()) }()
	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: true},
		Provider: "fixture",
	}

	srv := newServerWithMetrics(cfg, nil, testutil.EmptySource{}, rec)
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv.metricsStop != nil {
		t.Fatalf("expected no shutdown hook for an injected recorder")
	}
}

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
	}

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{
			Enabled: true,
			Port:    "9999",
		},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics port to be used, got %s", srv.Addr())
	}
}

func TestServerRecordsLookupMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	srv := newServerWithMetrics(testConfig(), nil, testutil.GoodSource{Entries: testutil.SampleEntries()}, rec)
	srv.Refresh(context.Background())

	testutil.Serve(srv.Handler(), http.MethodGet, "/lookup?game=celeste", nil)
	testutil.Serve(srv.Handler(), http.MethodGet, "/lookup?game=qwertyuiop", nil)

	if rec.Lookups(metrics.LookupExact) != 1 || rec.Lookups(metrics.LookupMiss) != 1 {
		t.Fatalf("unexpected lookup counts exact=%d miss=%d", rec.Lookups(metrics.LookupExact), rec.Lookups(metrics.LookupMiss))
	}
	if rec.CatalogSize() != 3 {
		t.Fatalf("expected catalog gauge 3, got %d", rec.CatalogSize())
	}
}
