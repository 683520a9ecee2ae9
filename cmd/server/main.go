package main

import (
	"log/slog"
	"net/http"

	"github.com/careconnect/careconnect/internal/app"
	"github.com/careconnect/careconnect/internal/config"
	"github.com/careconnect/careconnect/internal/logger"
	"github.com/careconnect/careconnect/internal/routes"
	"github.com/careconnect/careconnect/internal/seed"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	if cfg.SeedDemoData {
		if err := seed.Run(app); err != nil {
			slog.Error("failed to seed demo data", "error", err)
		}
	}

	handler := routes.SetupRoutes(app)
	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "url", "http://localhost:"+cfg.Port)

	err = http.ListenAndServe(":"+cfg.Port, handler)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}
