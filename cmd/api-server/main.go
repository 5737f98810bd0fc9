package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"novelhub/database"
	"novelhub/internal/config"
	"novelhub/internal/logger"
	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/router"
	"novelhub/internal/session"
	"novelhub/internal/storage"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer lg.Sync()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("api server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	db, err := database.Connect(cfg, lg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	denylist, err := session.NewDenylist(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		return err
	}
	defer denylist.Close()
	if !denylist.Enabled() {
		lg.Warn("REDIS_URL not set, logout will not revoke tokens")
	}

	media, err := storage.New(cfg)
	if err != nil {
		return err
	}

	if err := dto.RegisterValidators(); err != nil {
		return err
	}

	engine := router.Build(router.Deps{
		DB:       db,
		Config:   cfg,
		Logger:   lg,
		Denylist: denylist,
		Media:    media,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("api server listening", zap.String("addr", srv.Addr), zap.String("media_driver", cfg.MediaDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		lg.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
