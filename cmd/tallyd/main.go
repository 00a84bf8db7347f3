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

	"github.com/tallyhq/tally/internal/application/usecase"
	"github.com/tallyhq/tally/internal/infrastructure/config"
	"github.com/tallyhq/tally/internal/infrastructure/messaging"
	infraPG "github.com/tallyhq/tally/internal/infrastructure/postgres"
	"github.com/tallyhq/tally/internal/infrastructure/storage"
	grpcPresentation "github.com/tallyhq/tally/internal/presentation/grpc"
	"github.com/tallyhq/tally/internal/presentation/rest"
	"github.com/tallyhq/tally/pkg/auth"
	kafkapkg "github.com/tallyhq/tally/pkg/kafka"
	"github.com/tallyhq/tally/pkg/observability"
	pgpkg "github.com/tallyhq/tally/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg := config.Load()
	cfg.Validate()

	// Initialize logger
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)

	logger.Info("starting tally-ledger",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize metrics
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "tally-ledger",
		Port:        cfg.HTTPPort,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without metrics", "error", err)
	} else {
		defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort shutdown
	}

	// Initialize database
	pool, err := pgpkg.NewPool(ctx, pgpkg.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	dsn := pgpkg.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}.DSN()
	if err = pgpkg.RunMigrations(dsn, "internal/infrastructure/postgres/migrations"); err != nil {
		logger.Warn("migration warning", "error", err)
	}

	// Initialize Kafka producer
	producer := kafkapkg.NewProducer(kafkapkg.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer producer.Close() //nolint:errcheck // best-effort close

	// Receipt storage
	receipts, err := storage.NewFilesystemReceiptStore(cfg.Ledger.ReceiptDir)
	if err != nil {
		logger.Error("failed to initialize receipt store", "error", err)
		os.Exit(1)
	}

	// Wire dependencies (DI via constructors)
	coordinator := infraPG.NewCoordinator(pool)
	invoiceRepo := infraPG.NewInvoiceRepo(pool)
	paymentRepo := infraPG.NewPaymentRepo(pool)
	customerRepo := infraPG.NewCustomerRepo(pool)
	outletRepo := infraPG.NewOutletRepo(pool)
	productRepo := infraPG.NewProductRepo(pool)

	// Use cases
	createInvoiceUC := usecase.NewCreateInvoice(coordinator, invoiceRepo, paymentRepo, customerRepo, outletRepo, productRepo, productRepo, cfg.Ledger.TaxRate)
	editInvoiceUC := usecase.NewEditInvoice(coordinator, invoiceRepo, paymentRepo, customerRepo, productRepo, productRepo, cfg.Ledger.TaxRate)
	deleteInvoiceUC := usecase.NewDeleteInvoice(coordinator, invoiceRepo, paymentRepo, customerRepo, productRepo)
	getInvoiceUC := usecase.NewGetInvoice(invoiceRepo)
	listInvoicesUC := usecase.NewListInvoices(invoiceRepo)
	recordPaymentUC := usecase.NewRecordPayment(coordinator, paymentRepo, invoiceRepo, customerRepo, receipts)
	editPaymentUC := usecase.NewEditPayment(coordinator, paymentRepo, invoiceRepo, customerRepo)
	deletePaymentUC := usecase.NewDeletePayment(coordinator, paymentRepo, invoiceRepo, customerRepo, cfg.Ledger.PaymentDeleteWindow)
	getCustomerUC := usecase.NewGetCustomer(customerRepo)

	// JWT service
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.Issuer,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// Outbox relay publishes staged domain events to Kafka.
	relay := messaging.NewRelay(pool, producer, logger)
	go relay.Run(ctx)

	// gRPC server
	handler := grpcPresentation.NewLedgerHandler(
		createInvoiceUC, editInvoiceUC, deleteInvoiceUC,
		getInvoiceUC, listInvoicesUC,
		recordPaymentUC, editPaymentUC, deletePaymentUC,
		getCustomerUC,
		logger,
	)
	grpcServer := grpcPresentation.NewServer(handler, logger, cfg.GRPCPort, jwtSvc)

	// HTTP server (health checks + metrics)
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger)
	healthHandler.RegisterRoutes(mux)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers
	errCh := make(chan error, 2)

	go func() {
		errCh <- grpcServer.Start()
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown
	if err := httpServer.Shutdown(context.Background()); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	grpcServer.Stop()
	logger.Info("tally-ledger stopped")
}
