package api

import (
	"context"
	_ "loan-schedule/docs"
	"loan-schedule/internal/api/handler"
	mw "loan-schedule/internal/api/middleware"
	"loan-schedule/internal/config"
	"loan-schedule/internal/domain/product"
	"loan-schedule/internal/domain/schedule"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const defaultRequestTimeout = 60 * time.Second

// SetupRouter builds the HTTP surface. ctx bounds background work started by
// middleware such as the rate limiter sweeper.
func SetupRouter(ctx context.Context, productService product.ProductService, scheduleService schedule.ScheduleService, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(ctx, router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, cfg, logger)
	setupLoanRoutes(router, productService, scheduleService, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(ctx context.Context, router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(timeout))
	router.Use(mw.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupLoanRoutes(router *chi.Mux, productService product.ProductService, scheduleService schedule.ScheduleService, cfg *config.Config, logger *slog.Logger) {
	productHandler := handler.NewProductHandler(productService, logger)
	scheduleHandler := handler.NewScheduleHandler(scheduleService, logger)

	router.Route("/loan", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{productKey}", productHandler.GetProduct)
		r.Post("/calc", scheduleHandler.Calculate)
	})
}
