package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/services"
	"go.uber.org/zap"
)

// feedsync polls the external disaster feeds and keeps the Redis
// snapshots fresh for the alert aggregation endpoint. It runs as a
// standalone process so the API never blocks on upstream providers.
func main() {
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Snapshots live in Redis only; Mongo is not needed here.
	config.InitRedis()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		logging.Logger.Info("shutting down feed sync", zap.String("signal", sig.String()))
		cancel()
	}()

	poller := services.NewFeedPoller(logging.Logger)

	logging.Logger.Info("starting feed sync",
		zap.Duration("interval", config.AppConfig.AlertPollInterval),
		zap.String("usgs_feed", config.AppConfig.USGSFeedURL),
	)
	poller.Run(ctx)

	logging.Logger.Info("feed sync exited")
}
