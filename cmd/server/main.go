package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/glasspro/auth"
	"github.com/diewo77/glasspro/internal/config"
	"github.com/diewo77/glasspro/internal/metrics"
	"github.com/diewo77/glasspro/internal/services"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(cfg)
	auth.SetSecret(cfg.Auth.SessionSecret)

	ctx := context.Background()
	st, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open store")
	}
	defer closeStore()

	if *migrateOnlyFlag {
		logger.WithField("driver", cfg.Store.Driver).Info("migrations completed successfully")
		return
	}

	shop, err := services.NewShop(ctx, services.Options{
		Store:       st,
		Logger:      logger,
		Username:    cfg.Auth.Username,
		Password:    cfg.Auth.Password,
		PhoneRegion: cfg.App.PhoneRegion,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to load shop state")
	}

	appHandler, err := NewApp(cfg, shop, logger, metrics.New())
	if err != nil {
		logger.WithError(err).Fatal("failed to build router")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      appHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Server.Port, "env": cfg.App.Env, "store": cfg.Store.Driver}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("error during shutdown")
	}
	logger.Info("server stopped gracefully")
}
