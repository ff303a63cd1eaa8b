package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/vendorlink/vendorlink-backend/api/routes"
	"github.com/vendorlink/vendorlink-backend/internal/activity"
	"github.com/vendorlink/vendorlink-backend/internal/bids"
	"github.com/vendorlink/vendorlink-backend/internal/coverage"
	"github.com/vendorlink/vendorlink-backend/internal/directory"
	"github.com/vendorlink/vendorlink-backend/internal/matching"
	"github.com/vendorlink/vendorlink-backend/internal/notify"
	"github.com/vendorlink/vendorlink-backend/internal/projects"
	"github.com/vendorlink/vendorlink-backend/internal/routing"
	"github.com/vendorlink/vendorlink-backend/pkg/config"
	"github.com/vendorlink/vendorlink-backend/pkg/db"
	"github.com/vendorlink/vendorlink-backend/pkg/logger"
	"github.com/vendorlink/vendorlink-backend/pkg/migrate"
	"github.com/vendorlink/vendorlink-backend/pkg/pubsub"
	"github.com/vendorlink/vendorlink-backend/pkg/redis"
)

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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	notifier := notify.NewNoopNotifier()
	if cfg.PubSub.Enabled() {
		psClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := psClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		notifier, err = notify.NewPubSubNotifier(psClient, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create notifier", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "lifecycle topic not configured, dropping lifecycle events")
	}

	activityRepo := activity.NewRepository(dbClient.DB())
	recorder, err := activity.NewRecorder(activityRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create activity recorder", err)
		os.Exit(1)
	}

	directoryRepo := directory.NewRepository(dbClient.DB())
	directoryService, err := directory.NewService(directoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create directory service", err)
		os.Exit(1)
	}

	resolver, err := coverage.NewResolver(
		coverage.NewRepository(dbClient.DB()),
		redisClient,
		cfg.Coverage.CacheTTL,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create coverage resolver", err)
		os.Exit(1)
	}

	routingRepo := routing.NewRepository(dbClient.DB())
	projectRepo := projects.NewRepository(dbClient.DB())
	bidRepo := bids.NewRepository(dbClient.DB())

	leadService, err := routing.NewService(dbClient, routingRepo, bidRepo, recorder, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create lead service", err)
		os.Exit(1)
	}

	leadRouter, err := matching.NewRouter(dbClient, directoryRepo, resolver, routingRepo, recorder, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create lead router", err)
		os.Exit(1)
	}

	bidService, err := bids.NewService(dbClient, bidRepo, routingRepo, projectRepo, recorder, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create bid service", err)
		os.Exit(1)
	}

	projectService, err := projects.NewService(
		dbClient,
		projectRepo,
		routingRepo,
		bidRepo,
		recorder,
		activityRepo,
		leadRouter,
		notifier,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create project service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, projectService, leadService, bidService, directoryService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
