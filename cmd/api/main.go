package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/vuminhngo/techstore-backend/api/routes"
	"github.com/vuminhngo/techstore-backend/internal/inventory"
	"github.com/vuminhngo/techstore-backend/internal/loyalty"
	"github.com/vuminhngo/techstore-backend/internal/notifications"
	"github.com/vuminhngo/techstore-backend/internal/orders"
	"github.com/vuminhngo/techstore-backend/internal/users"
	"github.com/vuminhngo/techstore-backend/pkg/config"
	"github.com/vuminhngo/techstore-backend/pkg/db"
	"github.com/vuminhngo/techstore-backend/pkg/logger"
	"github.com/vuminhngo/techstore-backend/pkg/metrics"
	"github.com/vuminhngo/techstore-backend/pkg/migrate"
	"github.com/vuminhngo/techstore-backend/pkg/redis"
	"github.com/vuminhngo/techstore-backend/pkg/suid"
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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	generator, err := suid.New(cfg.Generator.DatacenterID, cfg.Generator.WorkerID)
	if err != nil {
		logg.Error(context.Background(), "failed to build identifier generator", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	lifecycleMetrics := metrics.NewLifecycleMetrics(registry)

	var sender notifications.Sender
	if cfg.SMTP.Enabled() {
		sender = notifications.NewSMTPSender(cfg.SMTP)
	} else {
		sender = notifications.NewLogSender(logg)
	}
	dispatcher := notifications.NewDispatcher(sender, cfg.Notifications.QueueSize, logg, lifecycleMetrics)

	thresholds := loyalty.NewThresholdSource(redisClient, logg)

	ordersService, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		users.NewRepository(dbClient.DB()),
		dbClient,
		generator,
		inventory.NewLedger(),
		thresholds,
		dispatcher,
		lifecycleMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:     cfg,
		Logger:     logg,
		DBPinger:   dbClient,
		Redis:      redisClient,
		Orders:     ordersService,
		Thresholds: thresholds,
		Settings:   redisClient,
		Registry:   registry,
	})

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
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
		cancel()
	}

	closeErr := multierr.Combine(
		dispatcher.Close(),
		redisClient.Close(),
		dbClient.Close(),
	)
	if closeErr != nil {
		logg.Error(ctx, "error closing resources", closeErr)
		os.Exit(1)
	}
}
