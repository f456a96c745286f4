// Package app wires configuration, the data source, cache, trigger,
// services, and the HTTP server into a running process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nkalandadze/zmna-backend/internal/adapter/dirdata"
	"github.com/nkalandadze/zmna-backend/internal/adapter/httpdata"
	"github.com/nkalandadze/zmna-backend/internal/adapter/postgres"
	"github.com/nkalandadze/zmna-backend/internal/auth"
	"github.com/nkalandadze/zmna-backend/internal/cache"
	"github.com/nkalandadze/zmna-backend/internal/config"
	"github.com/nkalandadze/zmna-backend/internal/domain"
	"github.com/nkalandadze/zmna-backend/internal/events"
	"github.com/nkalandadze/zmna-backend/internal/render"
	"github.com/nkalandadze/zmna-backend/internal/resolver"
	"github.com/nkalandadze/zmna-backend/internal/service/catalog"
	"github.com/nkalandadze/zmna-backend/internal/service/verbs"
	"github.com/nkalandadze/zmna-backend/internal/transport/middleware"
	"github.com/nkalandadze/zmna-backend/internal/transport/rest"
	"github.com/nkalandadze/zmna-backend/internal/trigger"
)

// dataSource is the surface every source mode provides.
type dataSource interface {
	FetchDocument(ctx context.Context, id int) (*domain.VerbDocument, error)
	FetchIndex(ctx context.Context) (*domain.VerbIndex, error)
}

// Run is the application entry point. It blocks until ctx is canceled,
// then shuts the HTTP server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("source_mode", cfg.Source.Mode),
		slog.String("log_level", cfg.Log.Level),
	)

	// --- Data source ---

	var (
		source dataSource
		pinger interface{ Ping(ctx context.Context) error }
	)
	switch cfg.Source.Mode {
	case config.SourceModeHTTP:
		src := httpdata.NewSource(cfg.Source, logger)
		source, pinger = src, src
	case config.SourceModeDir:
		source = dirdata.NewSource(cfg.Source.DataDir, logger)
	case config.SourceModePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		src := postgres.NewSource(pool, logger)
		source, pinger = src, src
	default:
		return fmt.Errorf("unknown source mode %q", cfg.Source.Mode)
	}

	// --- Core pipeline ---

	bus := events.NewBus()
	verbCache := cache.New(source, cfg.Cache, bus, cache.NewLogObserver(logger), logger)
	memo := resolver.NewMemo()

	renderer, err := render.New()
	if err != nil {
		return err
	}

	catalogSvc := catalog.New(source, logger)
	if err := catalogSvc.Load(ctx); err != nil {
		return err
	}

	verbTrigger := trigger.New(verbCache, cfg.Trigger, logger)
	verbTrigger.Observe(catalogSvc.IDs()...)

	verbSvc := verbs.New(catalogSvc, verbCache, memo, renderer, bus, logger)

	// Without beacons every section is warmed eagerly at startup.
	if !cfg.Trigger.BeaconsEnabled {
		go func() {
			if err := verbTrigger.WarmAll(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("warmup aborted", slog.String("error", err.Error()))
			}
		}()
	}

	// --- Transport ---

	tokens := auth.NewTokenManager(cfg.Auth.MaintainerSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	mux := rest.NewRouter(rest.RouterDeps{
		Verbs:          rest.NewVerbHandler(verbSvc, logger),
		Beacon:         rest.NewBeaconHandler(verbTrigger, cfg.Trigger.BeaconsEnabled, logger),
		Admin:          rest.NewAdminHandler(verbSvc, logger),
		Health:         rest.NewHealthHandler(pinger, BuildVersion()),
		MaintainerAuth: middleware.MaintainerAuth(tokens),
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimitPerMin),
	)(mux)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
