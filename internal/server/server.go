package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"game-catalog-service/internal/app/games"
	"game-catalog-service/internal/config"
	httpserver "game-catalog-service/internal/http"
	"game-catalog-service/internal/http/handlers"
	"game-catalog-service/internal/http/middleware"
	"game-catalog-service/internal/logging"
	"game-catalog-service/internal/metrics"
	"game-catalog-service/internal/seed"
	"game-catalog-service/internal/store"
	"game-catalog-service/internal/store/sqlite"
	"game-catalog-service/internal/tracing"
)

var (
	metricsSetup = metrics.Setup
	tracingSetup = tracing.Setup
	seedLoader   = seed.Load
)

// catalogStore is the persistence surface the server needs: CRUD plus a readiness probe.
type catalogStore interface {
	games.Store
	handlers.Pinger
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         catalogStore
	closeStore    func() error
	gamesService  *games.Service
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	tracingStop   func(context.Context) error
}

// New builds the store, seeds the catalog, and wires telemetry and the HTTP stack.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	tp, tracingShutdown := buildTracing(ctx, cfg, logger)

	st, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		stopTelemetry(metricsShutdown, tracingShutdown)
		return nil, err
	}

	gameSvc := games.NewService(st, recorder)
	if err := seedCatalog(ctx, cfg.Seed, gameSvc, logger); err != nil {
		stopTelemetry(metricsShutdown, tracingShutdown)
		if closeStore != nil {
			_ = closeStore()
		}
		return nil, err
	}

	httpSrv := buildHTTPServer(cfg, gameSvc, st, logger, recorder, tp)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         st,
		closeStore:    closeStore,
		gamesService:  gameSvc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		tracingStop:   tracingShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, gameSvc *games.Service, httpSrv httpServer) *Server {
	return &Server{
		cfg:          cfg,
		logger:       logger,
		gamesService: gameSvc,
		httpServer:   httpSrv,
	}
}

// openStore returns the configured backend. Unknown drivers fall back to memory.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (catalogStore, func() error, error) {
	switch cfg.Driver {
	case config.StoreSQLite:
		st, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logging.Info(logger, "store ready", logging.FieldStore, config.StoreSQLite, "path", cfg.SQLitePath)
		return st, st.Close, nil
	case config.StoreMemory, "":
	default:
		logging.Warn(logger, "unknown store driver, using memory", logging.FieldStore, cfg.Driver)
	}
	logging.Info(logger, "store ready", logging.FieldStore, config.StoreMemory)
	return store.NewMemoryStore(), nil, nil
}

func seedCatalog(ctx context.Context, cfg config.SeedConfig, svc *games.Service, logger *slog.Logger) error {
	if cfg.Disabled {
		logging.Info(logger, "catalog seeding disabled")
		return nil
	}
	drafts, err := seedLoader(cfg.Path)
	if err != nil {
		return fmt.Errorf("load seed catalog: %w", err)
	}
	added, err := svc.Seed(ctx, drafts)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	logging.Info(logger, "catalog seeded", logging.FieldCount, added)
	return nil
}

func buildHTTPServer(cfg config.Config, gameSvc *games.Service, pinger handlers.Pinger, logger *slog.Logger, recorder *metrics.Recorder, tp trace.TracerProvider) httpServer {
	handler := handlers.NewHandler(gameSvc, pinger, logger)
	router := httpserver.NewRouter(handler)
	wrapped := middleware.LoggingMiddleware(logger, recorder, middleware.TracingMiddleware(tp, router))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP servers, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.tracingStop != nil {
		if err := s.tracingStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("tracing shutdown failed", "error", err)
		}
	}

	// Close the store after the HTTP server has drained.
	if s.closeStore != nil {
		if err := s.closeStore(); err != nil && s.logger != nil {
			s.logger.Error("failed to close store", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func buildTracing(ctx context.Context, cfg config.Config, logger *slog.Logger) (trace.TracerProvider, func(context.Context) error) {
	tp, shutdown, err := tracingSetup(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
	})
	if err != nil {
		if logger != nil {
			logger.Warn("tracing setup failed, continuing without spans", "err", err)
		}
		return noop.NewTracerProvider(), nil
	}
	return tp, shutdown
}

func stopTelemetry(stops ...func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, stop := range stops {
		if stop != nil {
			_ = stop(ctx)
		}
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
