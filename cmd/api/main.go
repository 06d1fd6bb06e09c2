package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbuddy-api/internal/application/service"
	"github.com/sangkips/billbuddy-api/internal/config"
	"github.com/sangkips/billbuddy-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billbuddy-api/internal/domain/repository"
	"github.com/sangkips/billbuddy-api/internal/infrastructure/database"
	"github.com/sangkips/billbuddy-api/internal/infrastructure/repository"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/handler"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/middleware"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/routes"
	"github.com/sangkips/billbuddy-api/pkg/events"
	"github.com/sangkips/billbuddy-api/pkg/logger"
	"github.com/sangkips/billbuddy-api/pkg/printer"
	"github.com/sangkips/billbuddy-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.Open(&cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err := database.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	if err := database.SeedCatalog(ctx, db); err != nil {
		log.WithError(err).Warn("Failed to seed catalog")
	}

	ids, err := utils.NewIDGenerator(cfg.IDs.Node)
	if err != nil {
		log.WithError(err).Fatal("Failed to create id generator")
	}
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db)
	billingRepo := repository.NewBillingRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Bill events are optional
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Broker.URL != "" {
		amqpPublisher, err := events.DialAMQP(cfg.Broker.URL, cfg.Broker.Exchange)
		if err != nil {
			log.WithError(err).Warn("Failed to connect to broker, bill events disabled")
		} else {
			publisher = amqpPublisher
		}
	}
	defer publisher.Close()

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to initialize printer")
		thermalPrinter, _ = printer.New(printer.Config{Type: "none"})
	}

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo, log)
	if err := catalogService.Load(ctx); err != nil {
		log.WithError(err).Fatal("Failed to load catalog")
	}
	ledger := service.NewLedger(cfg.Ledger.DefaultTaxPct)
	billingService := service.NewBillingService(ledger, billingRepo, ids, publisher, log)
	historyService := service.NewHistoryService(historyRepo, analyticsRepo)
	printerService := service.NewPrinterService(thermalPrinter, historyService, entity.ReceiptHeader{
		StoreName: cfg.Printer.StoreName,
		Address:   cfg.Printer.Address2,
		Phone:     cfg.Printer.Phone,
	}, cfg.Printer.Width, cfg.Printer.Type, log)

	// Initialize handlers
	handlers := &routes.Handlers{
		Ledger:  handler.NewLedgerHandler(ledger, catalogService),
		Billing: handler.NewBillingHandler(billingService),
		History: handler.NewHistoryHandler(historyService),
		Catalog: handler.NewCatalogHandler(catalogService),
		Printer: handler.NewPrinterHandler(printerService),
		Stream:  handler.NewLedgerStreamHandler(ledger, log),
	}

	rateLimiter := middleware.NewClientRateLimiter(
		middleware.RateLimiterConfigFromWindow(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Close()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Log:             log,
	})

	go purgeIdempotencyKeys(ctx, idempotencyRepo, log)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{Addr: ":" + port, Handler: router}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	log.WithFields(logrus.Fields{
		"port": port,
		"env":  cfg.App.Env,
		"db":   cfg.Database.Driver,
	}).Infof("Starting %s server", cfg.App.Name)

	select {
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Graceful shutdown failed")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Server stopped")
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// purgeIdempotencyKeys drops expired keys hourly until ctx is done
func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log *logrus.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.WithError(err).Warn("Failed to purge idempotency keys")
			}
		}
	}
}
