package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"game-catalog-service/internal/config"
	"game-catalog-service/internal/logging"
	"game-catalog-service/internal/server"
)

const (
	appName    = "game-catalog-service"
	appVersion = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error(logging.NewLogger(logging.Config{Service: appName, Version: appVersion}), "invalid configuration", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: appName,
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "server startup failed", err)
		stop()
		os.Exit(1)
	}
	srv.Run(ctx, stop)
}
