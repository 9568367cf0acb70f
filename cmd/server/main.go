package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/print-shop-booking/internal/config"
	"github.com/iliyamo/print-shop-booking/internal/database"
	"github.com/iliyamo/print-shop-booking/internal/handler"
	"github.com/iliyamo/print-shop-booking/internal/middleware"
	"github.com/iliyamo/print-shop-booking/internal/queue"
	"github.com/iliyamo/print-shop-booking/internal/repository"
	"github.com/iliyamo/print-shop-booking/internal/router"
	"github.com/iliyamo/print-shop-booking/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger depends on config, so this one goes to stderr.
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		if err := database.Migrate(db, cfg.DBName); err != nil {
			log.Fatal("apply migrations", zap.Error(err))
		}
		log.Info("migrations applied")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []service.Option{service.WithStrictTransitions(cfg.StrictTransitions)}
	if cfg.EventsEnabled {
		opts = append(opts, service.WithPublisher(service.NewAMQPPublisher(cfg.AMQPURL, log)))
		go func() {
			err := queue.StartEventConsumer(ctx, cfg.AMQPURL, cfg.EventLogDir, log)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error("event consumer stopped", zap.Error(err))
			}
		}()
	}
	reservations := service.NewReservationService(repository.NewReservationRepo(db), log, opts...)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable; catalog cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		echomw.Recover(),
		echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}),
	)

	router.Register(e, router.Deps{
		Cfg:          cfg,
		Cache:        config.LoadCacheConfig(),
		RateLimit:    config.LoadRateLimitConfig(),
		Redis:        rdb,
		Reservations: handler.NewReservationHandler(reservations, log),
		Catalog:      handler.NewCatalogHandler(repository.NewEditorRepo(db), repository.NewServiceRepo(db), log),
		Auth:         handler.NewAuthHandler(cfg, repository.NewAdminRepo(db), log),
	})

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env),
		zap.Bool("staff_auth", cfg.StaffAuthRequired), zap.Bool("strict_transitions", cfg.StrictTransitions))

	srvErr := make(chan error, 1)
	go func() { srvErr <- e.Start(addr) }()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}
