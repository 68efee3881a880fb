package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meridian-oms/meridian/internal/app"
	"github.com/meridian-oms/meridian/internal/billing"
	"github.com/meridian-oms/meridian/internal/masterdata/suppliers"
	"github.com/meridian-oms/meridian/internal/observability"
	"github.com/meridian-oms/meridian/internal/platform/cache"
	"github.com/meridian-oms/meridian/internal/reports"
	"github.com/meridian-oms/meridian/internal/sales/customers"
	"github.com/meridian-oms/meridian/internal/sales/orders"
	"github.com/meridian-oms/meridian/internal/seed"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// Reports fall back to live computation when Redis is absent.
		logger.Warn("redis unavailable, report caching disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	customerRepo := customers.NewMemoryRepository()
	supplierRepo := suppliers.NewMemoryRepository()
	orderRepo := orders.NewMemoryRepository()
	invoiceRepo := billing.NewMemoryRepository()

	if cfg.SeedFixtures {
		fixtures, err := seed.Load()
		if err != nil {
			logger.Error("load fixtures", slog.Any("error", err))
			os.Exit(1)
		}
		if err := fixtures.Apply(ctx, seed.Repositories{
			Customers: customerRepo,
			Suppliers: supplierRepo,
			Orders:    orderRepo,
			Invoices:  invoiceRepo,
		}); err != nil {
			logger.Error("apply fixtures", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("fixtures loaded")
	}

	customerService := customers.NewService(customerRepo)
	supplierService := suppliers.NewService(supplierRepo)
	orderService := orders.NewService(orderRepo, customerService)
	invoiceService := billing.NewService(invoiceRepo, customerService)

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportService := reports.NewService(customerRepo, supplierRepo, orderRepo, invoiceRepo, reportCache)

	// Every write bumps the report cache version so the next dashboard read
	// recomputes from the live store.
	customerService.WithReportInvalidator(reportCache)
	supplierService.WithReportInvalidator(reportCache)
	orderService.WithReportInvalidator(reportCache)
	invoiceService.WithReportInvalidator(reportCache)

	if err := reportService.Refresh(ctx); err != nil {
		logger.Warn("report cache warmup", slog.Any("error", err))
	}

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CustomersHandler: customers.NewHandler(logger, customerService),
		SuppliersHandler: suppliers.NewHandler(logger, supplierService),
		OrdersHandler:    orders.NewHandler(logger, orderService),
		InvoicesHandler:  billing.NewHandler(logger, invoiceService),
		ReportsHandler:   reports.NewHandler(logger, reportService),
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
