package main

import (
	"context"
	"errors"
	"fmt"
	"loan-schedule/internal/api"
	"loan-schedule/internal/batch"
	"loan-schedule/internal/config"
	"loan-schedule/internal/domain/calendar"
	"loan-schedule/internal/domain/product"
	"loan-schedule/internal/domain/schedule"
	"loan-schedule/internal/event"
	"loan-schedule/internal/infrastructure/cache"
	"loan-schedule/internal/infrastructure/database/postgres"
	"loan-schedule/internal/infrastructure/logging"
	"loan-schedule/internal/infrastructure/memory"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// closer releases one external resource on shutdown.
type closer struct {
	name  string
	close func() error
}

// @title Loan Schedule API
// @version 1.0
// @description Repayment schedule calculator for the loan product catalog.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	holidays, err := loadHolidays(cfg.Calendar)
	if err != nil {
		logger.Error("Invalid holiday calendar", "error", err)
		os.Exit(1)
	}

	var closers []closer
	defer func() { closeResources(closers, logger) }()

	catalog, err := initializeCatalog(ctx, cfg, logger, &closers)
	if err != nil {
		logger.Error("Failed to initialize loan product catalog", "error", err)
		closeResources(closers, logger)
		os.Exit(1)
	}
	publisher := initializePublisher(cfg.RabbitMQ, logger, &closers)

	productService, scheduleService := initializeServices(catalog, publisher, holidays, logger)

	auditJob := batch.NewCatalogAuditJob(catalog, logger)
	cronScheduler := startBatchJobs(cfg, logger, auditJob)
	router := api.SetupRouter(ctx, productService, scheduleService, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func loadHolidays(cfg config.CalendarConfig) (calendar.HolidayFunc, error) {
	dates, err := calendar.ParseDates(cfg.Holidays)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, nil
	}
	return calendar.HolidaySet(dates...), nil
}

// initializeCatalog reads products from PostgreSQL when a database URL is set
// and from the configured seed list otherwise. Redis, when enabled, caches
// lookups in front of either source.
func initializeCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger, closers *[]closer) (product.Repository, error) {
	var repo product.Repository

	if cfg.Database.URL != "" {
		logger.Info("Initializing database connection pool...")
		dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, closer{name: "database pool", close: func() error {
			dbPool.Close()
			return nil
		}})
		repo = postgres.NewProductRepository(dbPool, logger)
	} else {
		products, err := memory.ProductsFromConfig(cfg.Catalog.Products)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog configuration: %w", err)
		}
		memRepo, err := memory.NewProductRepository(products)
		if err != nil {
			return nil, err
		}
		logger.Info("Serving loan products from configuration", "count", len(products))
		repo = memRepo
	}

	if !cfg.Redis.Enabled {
		return repo, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unavailable, serving catalog without cache", "addr", cfg.Redis.Addr, "error", err)
		client.Close()
		return repo, nil
	}
	*closers = append(*closers, closer{name: "redis client", close: client.Close})
	logger.Info("Caching loan products in Redis", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	return cache.NewProductRepository(repo, client, cfg.Redis.TTL, logger), nil
}

// initializePublisher returns a RabbitMQ publisher when enabled and reachable,
// and a no-op publisher otherwise.
func initializePublisher(cfg config.RabbitMQConfig, logger *slog.Logger, closers *[]closer) event.Publisher {
	if !cfg.Enabled {
		return event.NoopPublisher{}
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, schedule events disabled", "error", err)
		return event.NoopPublisher{}
	}

	publisher, err := event.NewRabbitMQPublisher(conn, cfg.ExchangeName, logger)
	if err != nil {
		logger.Warn("Failed to set up RabbitMQ publisher, schedule events disabled", "error", err)
		conn.Close()
		return event.NoopPublisher{}
	}
	*closers = append(*closers, closer{name: "rabbitmq connection", close: conn.Close})
	logger.Info("Publishing schedule events to RabbitMQ", "exchange", cfg.ExchangeName)
	return publisher
}

func initializeServices(catalog product.Repository, publisher event.Publisher, holidays calendar.HolidayFunc, logger *slog.Logger) (product.ProductService, schedule.ScheduleService) {
	logger.Info("Initializing application components...")
	productService := product.NewProductService(catalog, logger)
	scheduleService := schedule.NewScheduleService(catalog, publisher, holidays, logger)
	return productService, scheduleService
}

func closeResources(closers []closer, logger *slog.Logger) {
	for i := len(closers) - 1; i >= 0; i-- {
		c := closers[i]
		logger.Info("Closing resource...", "resource", c.name)
		if err := c.close(); err != nil {
			logger.Warn("Failed to close resource", "resource", c.name, "error", err)
		}
	}
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
		}
		triggerReason = "server exited"
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	if triggerReason != "server exited" {
		select {
		case err := <-serverErrors:
			if err != nil {
				logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
			} else {
				logger.Info("Server goroutine confirmed exit.")
			}
		case <-time.After(5 * time.Second):
			logger.Warn("Timed out waiting for server goroutine confirmation.")
		}
	}

	logger.Info("Application shutdown process complete.")
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, auditJob *batch.CatalogAuditJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.CatalogAuditSchedule
	if scheduleSpec == "" {
		scheduleSpec = "0 * * * *"
		logger.Warn("Catalog audit schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.CatalogAuditTimeout
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "CatalogAudit")
		jobLogger.Info("Cron triggered: Running catalog audit job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := auditJob.Run(ctx); runErr != nil {
			jobLogger.Error("Catalog audit job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Catalog audit job finished successfully.")
		}
	}))

	if err != nil {
		logger.Error("Failed to schedule catalog audit job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled catalog audit job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}
