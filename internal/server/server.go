package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/metascore-lookup-service/internal/app/games"
	"github.com/preston-bernstein/metascore-lookup-service/internal/catalog"
	"github.com/preston-bernstein/metascore-lookup-service/internal/config"
	httpserver "github.com/preston-bernstein/metascore-lookup-service/internal/http"
	"github.com/preston-bernstein/metascore-lookup-service/internal/http/handlers"
	"github.com/preston-bernstein/metascore-lookup-service/internal/http/middleware"
	"github.com/preston-bernstein/metascore-lookup-service/internal/logging"
	"github.com/preston-bernstein/metascore-lookup-service/internal/metrics"
	"github.com/preston-bernstein/metascore-lookup-service/internal/poller"
	"github.com/preston-bernstein/metascore-lookup-service/internal/providers"
	"github.com/preston-bernstein/metascore-lookup-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	gamesService  *games.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithSource(cfg, logger, nil)
}

func newServerWithSource(cfg config.Config, logger *slog.Logger, source providers.PageSource) *Server {
	return newServerWithMetrics(cfg, logger, source, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, source providers.PageSource, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if source == nil {
		source = newProviderFactory(logger, recorder).build(cfg)
	} else {
		source = providers.NewRetryingProvider(source, logger, recorder, normalizeProviderName(cfg.Provider, source), cfg.Source.RetryAttempts, 0)
	}
	memoryStore, gameSvc := buildServices(recorder)
	plr := poller.New(source, gameSvc, logger, recorder, cfg.RefreshInterval, cfg.Source.MaxPages)
	httpSrv := buildHTTPServer(cfg, gameSvc, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		gamesService:  gameSvc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, gameSvc *games.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:          cfg,
		logger:       logger,
		gamesService: gameSvc,
		httpServer:   httpSrv,
		poller:       plr,
	}
}

func buildServices(recorder *metrics.Recorder) (*store.MemoryStore, *games.Service) {
	memoryStore := store.NewMemoryStore()
	return memoryStore, games.NewService(memoryStore, catalog.NewMatcher(), recorder)
}

func buildHTTPServer(cfg config.Config, gameSvc *games.Service, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(gameSvc, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" && plr != nil {
		admin = handlers.NewAdminHandler(plr, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	return newNetHTTPServer(":"+cfg.Port, wrapped)
}

// Run starts the HTTP server and the poller, then waits for context
// cancellation to shut down gracefully. The first refresh runs before Run
// blocks, so /ready flips once the catalog is loaded.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

// Refresh runs one refresh cycle outside the schedule.
func (s *Server) Refresh(ctx context.Context) poller.Result {
	return s.poller.Refresh(ctx)
}

// Lookup resolves query against the current catalog.
func (s *Server) Lookup(query string) (catalog.Match, bool) {
	return s.gamesService.Lookup(query)
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
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
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown stops every component concurrently under one deadline.
// A failing component never prevents the others from shutting down.
func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			logging.Error(s.logger, "graceful shutdown failed", err)
			return err
		}
		return nil
	})
	if s.metricsServer != nil {
		g.Go(func() error {
			if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
				logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
				return err
			}
			return nil
		})
	}
	if s.metricsStop != nil {
		g.Go(func() error {
			if err := s.metricsStop(shutdownCtx); err != nil {
				logging.Warn(s.logger, "metrics shutdown failed", "error", err)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logging.Warn(s.logger, "shutdown completed with errors", "error", err)
		return
	}
	logging.Info(s.logger, "shutdown complete")
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
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "error", err)
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
