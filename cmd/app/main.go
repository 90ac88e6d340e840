package main

import (
	"context"
	"errors"
	"flag"
	"github.com/burenotti/go_bodyfat_backend/internal/adapter/api"
	"github.com/burenotti/go_bodyfat_backend/internal/adapter/cache"
	"github.com/burenotti/go_bodyfat_backend/internal/adapter/metrics"
	"github.com/burenotti/go_bodyfat_backend/internal/app/estimation"
	"github.com/burenotti/go_bodyfat_backend/internal/app/locale"
	"github.com/burenotti/go_bodyfat_backend/internal/app/messagebus"
	"github.com/burenotti/go_bodyfat_backend/internal/app/questionnaire"
	"github.com/burenotti/go_bodyfat_backend/internal/config"
	"github.com/burenotti/go_bodyfat_backend/internal/domain"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/wizard"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	logger := initLogger(cfg)

	bus := messagebus.New(logger)
	registerHandlers(bus, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collectorSet := metrics.New(registry)

	locales, err := locale.New(cfg.App.DefaultLocale)
	if err != nil {
		panic("failed to load locales: " + err.Error())
	}

	estimateCache, closeCache := initCache(cfg, logger)
	defer closeCache()

	estimationService := estimation.New(logger, estimateCache, collectorSet, bus)
	questionnaireService := questionnaire.New(logger, estimationService, bus, collectorSet, questionnaire.Config{
		LoadingDelay: cfg.Questionnaire.LoadingDelay,
		SessionTTL:   cfg.Questionnaire.SessionTTL,
	})

	server := api.NewServer(
		api.Addr(cfg.Server.Host, cfg.Server.Port),
		api.Logger(logger),
		api.EstimationService(estimationService),
		api.QuestionnaireService(questionnaireService),
		api.Locales(locales),
		api.Metrics(collectorSet, registry),
	)

	ctx := context.Background()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error)

	go func() {
		defer close(errCh)
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server was not shutdown gracefully", "error", err)
		}
	case err := <-errCh:
		if err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server closed with unexpected error", "error", err)
			}
		}
	}

	questionnaireService.Close()
	bus.Close()
	logger.Info("server shutdown")
}

func registerHandlers(bus *messagebus.MessageBus, logger *slog.Logger) {
	bus.Register(estimation.EventComputed, func(event domain.Event) error {
		e := event.(*estimation.ComputedEvent)
		logger.Debug("estimate computed", "sex", e.Sex, "category", e.Category, "cached", e.Cached)
		return nil
	})
	bus.Register(wizard.EventCompleted, func(event domain.Event) error {
		e := event.(*wizard.CompletedEvent)
		logger.Info("questionnaire completed", "session_id", e.SessionID)
		return nil
	})
	bus.Register(wizard.EventReset, func(event domain.Event) error {
		e := event.(*wizard.ResetEvent)
		logger.Info("questionnaire reset", "session_id", e.SessionID)
		return nil
	})
	bus.Register(questionnaire.EventRecomputed, func(event domain.Event) error {
		e := event.(*questionnaire.RecomputedEvent)
		logger.Info("questionnaire recomputed", "session_id", e.SessionID, "changed", e.Changed)
		return nil
	})
}

// initCache falls back to the in-memory cache when redis cannot be reached.
func initCache(cfg *config.Config, logger *slog.Logger) (estimation.Cache, func()) {
	if cfg.Cache.Driver != config.CacheRedis {
		return newMemoryCache(cfg)
	}

	rdb := cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.TTL)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx); err != nil {
		logger.Warn("redis is unavailable, using in-memory cache", "addr", cfg.Cache.RedisAddr, "error", err)
		_ = rdb.Close()
		return newMemoryCache(cfg)
	}

	return rdb, func() {
		if err := rdb.Close(); err != nil {
			logger.Error("failed to close redis client", "error", err)
		}
	}
}

// newMemoryCache purges expired entries every ttl until the returned func runs.
func newMemoryCache(cfg *config.Config) (estimation.Cache, func()) {
	c := cache.NewMemoryCache(cfg.Cache.TTL)
	return c, c.PurgeEvery(cfg.Cache.TTL)
}

func initLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	switch cfg.App.Env {
	case config.Development:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: true,
			Level:     slog.LevelDebug,
		})
	case config.Production:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: false,
			Level:     slog.LevelInfo,
		})
	default:
		panic("invalid env")
	}

	return slog.New(handler)
}
