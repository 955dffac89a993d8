package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wagerworks/wagerbook-backend/api/controllers"
	"github.com/wagerworks/wagerbook-backend/api/routes"
	"github.com/wagerworks/wagerbook-backend/internal/events"
	"github.com/wagerworks/wagerbook-backend/internal/odds"
	"github.com/wagerworks/wagerbook-backend/internal/payouts"
	"github.com/wagerworks/wagerbook-backend/internal/results"
	"github.com/wagerworks/wagerbook-backend/internal/wagers"
	"github.com/wagerworks/wagerbook-backend/pkg/config"
	"github.com/wagerworks/wagerbook-backend/pkg/db"
	"github.com/wagerworks/wagerbook-backend/pkg/logger"
	"github.com/wagerworks/wagerbook-backend/pkg/metrics"
	"github.com/wagerworks/wagerbook-backend/pkg/migrate"
	"github.com/wagerworks/wagerbook-backend/pkg/outbox"
	"github.com/wagerworks/wagerbook-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	intake := metrics.NewIntakeMetrics(registry)

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)
	oddsCache := odds.NewCache(redisClient, 0)

	eventsService, err := events.NewService(events.NewRepository(dbClient.DB()), dbClient, outboxService)
	if err != nil {
		logg.Error(context.Background(), "failed to create events service", err)
		os.Exit(1)
	}

	wagersService, err := wagers.NewService(
		wagers.NewRepository(dbClient.DB()),
		dbClient,
		outboxService,
		oddsCache,
		intake,
		logg,
		cfg.Wagering.StakeLimitCents,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create wagers service", err)
		os.Exit(1)
	}

	resultsService, err := results.NewService(
		results.NewRepository(dbClient.DB()),
		dbClient,
		outboxService,
		cfg.Oracle.Address,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create results service", err)
		os.Exit(1)
	}

	payoutsService, err := payouts.NewService(payouts.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create payouts service", err)
		os.Exit(1)
	}

	oddsService, err := odds.NewService(odds.NewRepository(dbClient.DB()), oddsCache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create odds service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:  cfg,
			Logger:  logg,
			Events:  eventsService,
			Wagers:  wagersService,
			Results: resultsService,
			Payouts: payoutsService,
			Odds:    oddsService,
			Pingers: map[string]controllers.Pinger{
				"database": dbClient,
				"redis":    redisClient,
			},
			Registry: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
