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

	"github.com/shopspring/decimal"

	"github.com/vittamlabs/origination/internal/application/usecase"
	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/port"
	"github.com/vittamlabs/origination/internal/domain/service"
	"github.com/vittamlabs/origination/internal/domain/valueobject"
	"github.com/vittamlabs/origination/internal/infrastructure/adapter"
	"github.com/vittamlabs/origination/internal/infrastructure/config"
	"github.com/vittamlabs/origination/internal/infrastructure/messaging"
	"github.com/vittamlabs/origination/internal/infrastructure/persistence/memory"
	pgRepo "github.com/vittamlabs/origination/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/vittamlabs/origination/internal/presentation/grpc"
	"github.com/vittamlabs/origination/internal/presentation/rest"
	pkgkafka "github.com/vittamlabs/origination/pkg/kafka"
	"github.com/vittamlabs/origination/pkg/observability"
	pkgpostgres "github.com/vittamlabs/origination/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: "json",
	})
	slog.SetDefault(logger)

	logger.Info("starting originationd",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"store", cfg.StoreDriver,
	)

	// Metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without", "error", err)
	}

	// Persistence: postgres when configured, table-indexed memory otherwise.
	var (
		sessions  port.SessionRepository
		sanctions port.SanctionRecordRepository
		offers    port.OfferCatalog
		ready     func() error
	)
	if cfg.StoreDriver == config.StorePostgres {
		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		defer dbCancel()

		pool, err := pkgpostgres.NewPool(dbCtx, cfg.DB)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("connected to database")

		if migErr := pkgpostgres.RunMigrations(cfg.DB.DSN(), cfg.MigrationsDir); migErr != nil {
			logger.Warn("migration warning", "error", migErr)
		}

		sessions = pgRepo.NewSessionRepo(pool)
		sanctions = pgRepo.NewSanctionRepo(pool)
		offers = pgRepo.NewOfferRepo(pool)
		ready = func() error {
			probeCtx, probeCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer probeCancel()
			return pkgpostgres.HealthCheck(probeCtx, pool)
		}
	} else {
		sessions = memory.NewSessionStore()
		sanctions = memory.NewSanctionStore()
		offers = memory.NewSeededOfferCatalog()
	}

	// Event publisher: Kafka when enabled, structured log otherwise.
	var publisher port.EventPublisher
	if cfg.Kafka.Enabled {
		producer := pkgkafka.NewProducer(pkgkafka.Config{
			Brokers:  cfg.Kafka.Brokers,
			ClientID: cfg.ServiceName,
		})
		defer producer.Close()
		publisher = messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)
	} else {
		publisher = messaging.NewLogEventPublisher(logger)
	}

	// Collaborators: HTTP clients when base URLs are configured, stubs otherwise.
	var kycClient port.KYCClient
	if cfg.Collaborators.KYCBaseURL != "" {
		kycClient = adapter.NewHTTPKYCClient(adapter.KYCConfig{
			BaseURL: cfg.Collaborators.KYCBaseURL,
			APIKey:  os.Getenv("KYC_API_KEY"),
		})
	} else {
		kycClient = adapter.SeededStubKYCClient()
	}

	var bureauClient port.CreditBureauClient
	if cfg.Collaborators.BureauBaseURL != "" {
		bureauClient = adapter.NewHTTPCreditBureauClient(adapter.CreditBureauConfig{
			BaseURL: cfg.Collaborators.BureauBaseURL,
			APIKey:  os.Getenv("CREDIT_BUREAU_API_KEY"),
		})
	} else {
		// Demo customer gets a profile that walks the instant-approval path.
		bureauClient = adapter.NewStubCreditBureauClient().WithProfile("9876543210", model.CreditProfile{
			Score:                750,
			PreApprovedLimit:     decimal.NewFromInt(200000),
			ExistingLoanEMITotal: decimal.Zero,
			MonthlySalary:        decimal.NewFromInt(80000),
		})
	}

	// Domain services and policy.
	policy := valueobject.DefaultPolicy()
	calc := service.NewFinanceCalculator()
	engine := service.NewUnderwritingEngine(policy, calc)
	matcher := service.NewIdentityMatcher()
	assembler := service.NewSanctionAssembler(policy, cfg.DisbursementAccountRef)

	// Wire use cases.
	startUC := usecase.NewStartSessionUseCase(sessions, publisher, logger)
	processUC := usecase.NewProcessMessageUseCase(
		sessions, sanctions, offers, kycClient, bureauClient, publisher,
		matcher, engine, assembler, policy, logger,
	)
	historyUC := usecase.NewGetHistoryUseCase(sessions)
	deleteUC := usecase.NewDeleteSessionUseCase(sessions, logger)
	sanctionUC := usecase.NewGetSanctionUseCase(sanctions)

	// gRPC server.
	handler := grpcPresentation.NewConversationHandler(startUC, processUC, historyUC, deleteUC)
	grpcServer := grpcPresentation.NewServer(handler, logger)

	// HTTP server (chat widget contract, health, metrics).
	mux := http.NewServeMux()
	rest.NewHealthHandler(logger, ready).RegisterRoutes(mux)
	rest.NewSessionHandler(startUC, processUC, historyUC, deleteUC, sanctionUC, logger).RegisterRoutes(mux)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           rest.LoggingMiddleware(logger)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("originationd stopped")
}
