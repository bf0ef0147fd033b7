package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Raymond9734/smallbiz-crm/internal/config"
	"github.com/Raymond9734/smallbiz-crm/internal/db"
	"github.com/Raymond9734/smallbiz-crm/internal/handler"
	"github.com/Raymond9734/smallbiz-crm/internal/ratelimit"
	"github.com/Raymond9734/smallbiz-crm/internal/repository"
	"github.com/Raymond9734/smallbiz-crm/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.App.SlogLevel()}))
	slog.SetDefault(logger)

	logger.Info("starting CRM API server", slog.String("env", cfg.App.Env))

	// Connect to database
	database, err := db.New(db.Config{
		DSN:             cfg.Database.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	logger.Info("connected to database")

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(context.Background(), database.DB, logger); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Rate-limit counters live in Redis when configured, otherwise in memory
	var (
		counters    ratelimit.Store
		redisHealth handler.HealthChecker
	)
	if cfg.Redis.URL != "" {
		var client *redis.Client
		client, err = ratelimit.Connect(context.Background(), cfg.Redis.URL)
		if err != nil {
			logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer client.Close()

		store := ratelimit.NewRedisStore(client)
		counters, redisHealth = store, store
		logger.Info("connected to Redis rate limit store")
	} else {
		counters = ratelimit.NewMemoryStore(nil)
		logger.Info("using in-memory rate limit store")
	}

	proxies, err := ratelimit.ParseTrustedProxies(cfg.API.TrustedProxies)
	if err != nil {
		logger.Error("invalid TRUSTED_PROXIES", slog.String("error", err.Error()))
		os.Exit(1)
	}

	limiters, err := newLimiters(cfg.RateLimit, counters)
	if err != nil {
		logger.Error("failed to configure rate limits", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)
	followupRepo := repository.NewFollowupRepository(database.DB)

	// Initialize services
	customerSvc := service.NewCustomerService(customerRepo, logger)
	orderSvc := service.NewOrderService(orderRepo, customerRepo, logger)
	followupSvc := service.NewFollowupService(followupRepo, logger)

	// Initialize handlers
	errs := handler.NewErrorHandler(logger, cfg.App.ExposeErrors())

	router := handler.NewRouter(handler.RouterConfig{
		Prefix:         cfg.API.Prefix,
		AllowedOrigins: cfg.API.AllowedOrigins,
		TrustedProxies: proxies,
		Limiters:       limiters,
		Customers:      handler.NewCustomerHandler(customerSvc, errs),
		Orders:         handler.NewOrderHandler(orderSvc, errs),
		Followups:      handler.NewFollowupHandler(followupSvc, customerSvc, errs),
		Health:         handler.NewHealthHandler(database, redisHealth, logger),
		Errors:         errs,
		Logger:         logger,
	})

	// Create server
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening",
			slog.String("addr", addr),
			slog.String("prefix", cfg.API.Prefix),
		)
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}

func newLimiters(cfg config.RateLimitConfig, store ratelimit.Store) (handler.Limiters, error) {
	general, err := ratelimit.New("general", cfg.General, cfg.GeneralWindow, store)
	if err != nil {
		return handler.Limiters{}, fmt.Errorf("general limiter: %w", err)
	}
	mutating, err := ratelimit.New("mutating", cfg.Mutating, cfg.MutatingWindow, store)
	if err != nil {
		return handler.Limiters{}, fmt.Errorf("mutating limiter: %w", err)
	}
	exports, err := ratelimit.New("export", cfg.Export, cfg.ExportWindow, store)
	if err != nil {
		return handler.Limiters{}, fmt.Errorf("export limiter: %w", err)
	}

	return handler.Limiters{
		General:       general,
		Mutating:      mutating,
		Export:        exports,
		SkipLocalhost: cfg.SkipLocalhost != nil && *cfg.SkipLocalhost,
	}, nil
}
