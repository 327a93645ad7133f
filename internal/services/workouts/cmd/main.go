package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sjsjaniw/workout-backend/internal/pkg/middleware"
	"github.com/sjsjaniw/workout-backend/internal/pkg/router"
	migrations "github.com/sjsjaniw/workout-backend/internal/services/workouts/db"
	"github.com/sjsjaniw/workout-backend/internal/services/workouts/internal/config"
	"github.com/sjsjaniw/workout-backend/internal/services/workouts/internal/rest"
	"github.com/sjsjaniw/workout-backend/internal/services/workouts/internal/service"
	"github.com/sjsjaniw/workout-backend/internal/services/workouts/internal/store"
)

const metricsNamespace = "workouts"

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}

	return slog.New(slog.NewJSONHandler(w, opts))
}

func run(ctx context.Context) error {
	cfg := config.FromEnv()
	slog.SetDefault(newLogger(os.Stdout, cfg.Log.Format, cfg.Log.Level))
	slog.Info("starting workouts service")

	pgCfg := store.PostgresConfig{
		Host:            cfg.DB.Host,
		Port:            cfg.DB.Port,
		User:            cfg.DB.User,
		Password:        cfg.DB.Password,
		DB:              cfg.DB.Name,
		SSLMode:         cfg.DB.SSLMode,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	}

	db, err := store.NewPostgresDB(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to db: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := store.Migrate(pgCfg, migrations.Migrations()); err != nil {
			return fmt.Errorf("failed to migrate db: %w", err)
		}
		slog.Info("database migrations applied")
	}

	pgs := store.NewPostgresStore(db)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, metricsNamespace),
	)
	metrics := service.NewMetrics(reg, metricsNamespace)

	var apiMiddleware []router.Middleware
	if cfg.AuthSecret != "" {
		apiMiddleware = append(apiMiddleware, middleware.Auth([]byte(cfg.AuthSecret)))
	} else {
		slog.Warn("AUTH_SECRET is not set, API is unauthenticated")
	}

	api := rest.NewAPI(
		service.NewUsers(service.WithUserStore(pgs), service.WithUserMetrics(metrics)),
		service.NewCategories(service.WithCategoryStore(pgs), service.WithCategoryMetrics(metrics)),
		service.NewWorkouts(service.WithWorkoutStore(pgs), service.WithWorkoutMetrics(metrics)),
		apiMiddleware...,
	)

	rt := router.New()
	rt.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Log(),
		middleware.NewHTTPMetrics(reg, metricsNamespace, append(rest.Mounts(), "/healthz", "/readyz", "/metrics")...).Middleware(),
	)
	rt.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rt.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pgs.Ping(pingCtx); err != nil {
			slog.Warn("readiness check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	rt.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	rt.Handle("/", api)

	httpSrv := &http.Server{
		Addr:         cfg.HTTP.ListenAddr,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		Handler:      rt,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("workouts service terminated with error", "error", err)
		os.Exit(1)
	}
}
