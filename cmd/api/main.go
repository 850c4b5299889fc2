package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jordanveras/threadline-backend/api/controllers"
	"github.com/jordanveras/threadline-backend/api/routes"
	"github.com/jordanveras/threadline-backend/internal/catalog"
	"github.com/jordanveras/threadline-backend/pkg/config"
	"github.com/jordanveras/threadline-backend/pkg/db"
	"github.com/jordanveras/threadline-backend/pkg/localstore"
	"github.com/jordanveras/threadline-backend/pkg/logger"
	"github.com/jordanveras/threadline-backend/pkg/metrics"
	"github.com/jordanveras/threadline-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	catalogRepo := catalog.NewRepository(dbClient.DB())
	if cfg.Catalog.AutoMigrate {
		if err := catalogRepo.AutoMigrate(); err != nil {
			logg.Error(context.Background(), "failed to migrate catalog", err)
			os.Exit(1)
		}
	}
	if cfg.Catalog.AutoSeed {
		if err := catalog.SeedIfEmpty(context.Background(), catalogRepo, logg); err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	storage, err := buildStorage(cfg.Storage, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap snapshot storage", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storeMetrics := metrics.NewStoreMetrics(registry)

	var redisPinger controllers.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Normalized(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisPinger,
			catalogService,
			storage,
			storeMetrics,
			registry,
		),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func buildStorage(cfg config.StorageConfig, redisClient *redis.Client) (localstore.Storage, error) {
	switch cfg.Normalized() {
	case config.StorageBackendMemory:
		return localstore.NewMemory(), nil
	case config.StorageBackendRedis:
		return localstore.NewRedis(redisClient)
	default:
		return localstore.NewFile(cfg.Dir)
	}
}
