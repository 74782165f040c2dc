// Package main is the entry point for the gold rate service.
//
// @title Gold Rate API
// @version 1.0.1
// @description Publishes the daily gold buy/sell rate. Writes are guarded by a static bearer token.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Static token returned by /login, sent as "Bearer <token>".
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "goldrateservice/internal/api/docs"
	"goldrateservice/internal/app"
	"goldrateservice/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	sugar := zapLogger.Sugar()

	if !cfg.Server.SelfListen() {
		sugar.Infow("Listener disabled; serve through the serverless handler instead",
			"environment", cfg.Server.Environment)
		return
	}

	sugar.Infow("Starting Gold Rate Service", "port", cfg.Server.Port, "version", app.Version)

	a, err := app.NewApp(cfg, sugar)
	if err != nil {
		sugar.Fatalw("Failed to initialize app", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		sugar.Fatalw("Application error", "error", err)
	}
}
