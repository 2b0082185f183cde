package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"game-catalog-service/internal/config"
	"game-catalog-service/internal/metrics"
	"game-catalog-service/internal/testutil"
)

func metricsSetupSuccess(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
	rec := metrics.NewRecorder()
	return rec, http.NewServeMux(), func(context.Context) error { return nil }, nil
}

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := testConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: true}

	srv, err := newServerWithMetrics(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
}

func TestNewServerWithMetricsDisabledSkipsServer(t *testing.T) {
	srv, err := newServerWithMetrics(context.Background(), testConfig(), nil, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, _ := testutil.NewRecorderWithShutdown()
	cfg := testConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: true}

	srv, err := newServerWithMetrics(context.Background(), cfg, nil, rec)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv.metricsStop != nil {
		t.Fatalf("expected no shutdown hook for injected recorder")
	}
	if got := rec.CatalogOperations("seed", "ok"); got != 4 {
		t.Fatalf("expected 4 seeded inserts recorded on injected recorder, got %d", got)
	}
}

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = metricsSetupSuccess

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
		t.Fatalf("expected metrics addr :9999, got %s", srv.Addr())
	}
}
