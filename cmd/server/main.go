package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/stargate-tracker/internal/api"
	"github.com/dom/stargate-tracker/internal/config"
	"github.com/dom/stargate-tracker/internal/logger"
	"github.com/dom/stargate-tracker/internal/metrics"
	"github.com/dom/stargate-tracker/internal/repository"
	"github.com/dom/stargate-tracker/internal/repository/memory"
	"github.com/dom/stargate-tracker/internal/repository/postgres"
	"github.com/dom/stargate-tracker/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gormLogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "stargate-api")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLog.Sync()

	// Initialize repositories
	repos, closeStore, err := openStore(cfg)
	if err != nil {
		zapLog.Fatal("failed to open store", zap.String("driver", string(cfg.StoreDriver)), zap.Error(err))
	}
	defer closeStore()

	// Initialize services
	m := metrics.New()
	services := service.NewServices(repos, cfg, zapLog, m)

	// Initialize router
	router := api.NewRouter(services, m, zapLog, cfg)

	// Create server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zapLog.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("store", string(cfg.StoreDriver)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		// Wait for interrupt signal or a failed listener
		<-gctx.Done()
		zapLog.Info("shutting down server")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zapLog.Error("server stopped with error", zap.Error(err))
		return
	}

	zapLog.Info("server stopped")
}

func openStore(cfg *config.Config) (*repository.Repositories, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		return memory.NewRepositories(memory.NewStore()), func() {}, nil
	}

	logLevel := gormLogger.Warn
	if cfg.Environment == "development" {
		logLevel = gormLogger.Info
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL, logLevel)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}

	return postgres.NewRepositories(db), func() { sqlDB.Close() }, nil
}
