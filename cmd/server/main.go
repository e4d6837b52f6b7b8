package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/campusvibes/backend/internal/realtime"
	"github.com/campusvibes/backend/internal/router"
	"github.com/campusvibes/backend/pkg/config"
	"github.com/campusvibes/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := config.InitDB()
	if err != nil {
		logger.Error("connect databases", "error", err)
		os.Exit(1)
	}
	defer db.CloseDB()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := realtime.NewHub(logger)
	go hub.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e, cfg)
	sampler, err := router.SetupRoutes(e, db, cfg, hub, logger)
	if err != nil {
		logger.Error("setup routes", "error", err)
		os.Exit(1)
	}

	if err := sampler.Start(); err != nil {
		logger.Error("start active user sampler", "error", err)
		os.Exit(1)
	}
	defer sampler.Stop()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		cancel()
		e.Close()
	}()

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
	}
}
