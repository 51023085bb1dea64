package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Evgen-Mutagen/online-banking/internal/app"
	"github.com/Evgen-Mutagen/online-banking/internal/util/logger"
	"go.uber.org/zap"
)

func main() {
	cfg := app.NewConfigFromFlags()

	if err := logger.Init(cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg, app.WithLogger(logger.Log))
	if err != nil {
		logger.Log.Fatal("Application initialization failed", zap.Error(err))
	}
	defer application.Close()

	runServer(ctx, application, cfg)
}

func runServer(ctx context.Context, application *app.App, cfg *app.Config) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sweepInterval := cfg.GuestIdleTimeout / 2
	go app.StartSessionSweeper(ctx, application.Sessions, sweepInterval, cfg.GuestIdleTimeout, application.Logger)

	application.Server = &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		application.Logger.Info("Starting HTTP server",
			zap.String("address", cfg.RunAddress),
			zap.Duration("session_timeout", cfg.SessionTimeout))
		if err := application.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			application.Logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	application.Logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		application.Logger.Error("Server shutdown error", zap.Error(err))
	}
	cancel()
}
