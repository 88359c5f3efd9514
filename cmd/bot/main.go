package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/Cowboybot7/Google-Drive-CB/internal/adapter/api/handler"
	"github.com/Cowboybot7/Google-Drive-CB/internal/adapter/bot"
	"github.com/Cowboybot7/Google-Drive-CB/internal/infrastructure/gdrive"
	"github.com/Cowboybot7/Google-Drive-CB/internal/infrastructure/telegram"
	"github.com/Cowboybot7/Google-Drive-CB/internal/usecase"
	"github.com/Cowboybot7/Google-Drive-CB/pkg/config"
	"github.com/Cowboybot7/Google-Drive-CB/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The client keeps this context for credential refreshes, so it must
	// outlive a shutdown signal.
	driveClient, err := gdrive.NewDriveClient(context.Background(), cfg.ServiceCredential, cfg.TargetFolderID)
	if err != nil {
		log.Fatalf("Failed to initialize Drive client: %v", err)
	}

	gateway, err := telegram.NewGateway(cfg.BotToken)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram gateway: %v", err)
	}
	logger.Info("Authorized as @%s", gateway.Username())

	relayUseCase := usecase.NewRelayUseCase(gateway, driveClient, cfg.MaxFileBytes)
	responder := bot.NewResponder(gateway)
	dispatcher := bot.NewDispatcher(relayUseCase, responder)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	healthHandler := handler.NewHealthHandler(gateway.Username())
	e.GET("/health", healthHandler.CheckHealth)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting bot...")
		// Pipelines get a fresh context: a signal stops the polling, but
		// relays already in flight run to completion, not cancellation.
		dispatcher.Run(context.Background(), gateway.Updates())
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting health server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		gateway.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Shutting down: %v", err)
	}
	logger.Info("Bot stopped")
}
