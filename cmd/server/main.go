package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "garbage-billing-backend/internal/api/http"
	"garbage-billing-backend/internal/backend"
	"garbage-billing-backend/internal/config"
	"garbage-billing-backend/internal/jobs"
	"garbage-billing-backend/internal/logger"
	"garbage-billing-backend/internal/repository/document"
	"garbage-billing-backend/internal/scheduler"
	"garbage-billing-backend/internal/security"
	"garbage-billing-backend/internal/service"
	"garbage-billing-backend/internal/validation"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Garbage Billing Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())

	ctx := context.Background()

	// Initialize document and blob stores
	backends, err := backend.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open backends", "error", err)
		log.Fatalf("Failed to open backends: %v", err)
	}
	defer backends.Close()

	// Initialize Repositories
	store := document.NewStore(backends.Docs)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Services
	v := validation.New()
	authSvc := service.NewAuthService(store.UserRepository, v)
	profileSvc := service.NewProfileService(store.UserRepository, backends.Blobs, v)
	invoiceSvc := service.NewInvoiceService(store.UserRepository, store.InvoiceRepository)
	paymentSvc := service.NewPaymentService(
		store.UserRepository,
		store.InvoiceRepository,
		store.PaymentRepository,
		invoiceSvc,
		backends.Blobs,
	)
	reportSvc := service.NewReportService(store.UserRepository, store.ReportRepository, backends.Blobs, v)
	announcementSvc := service.NewAnnouncementService(store.AnnouncementRepository)

	// Initialize HTTP handlers
	maxUpload := cfg.MaxUploadBytes()
	handlers := httpapi.Handlers{
		Auth:          httpapi.NewAuthHandler(authSvc, profileSvc, tokenManager),
		Profile:       httpapi.NewProfileHandler(profileSvc, maxUpload),
		Billing:       httpapi.NewBillingHandler(profileSvc, invoiceSvc, paymentSvc, maxUpload),
		Reports:       httpapi.NewReportHandler(reportSvc, maxUpload),
		Announcements: httpapi.NewAnnouncementHandler(announcementSvc),
	}
	if backends.Local != nil {
		handlers.Files = httpapi.NewDownloadHandler(backends.Local)
	}
	router := httpapi.NewRouter(handlers, tokenManager)

	// Report caches live in this process, so their reconciliation runs here.
	jobRunner := jobs.NewJobRunner(store, &jobs.Services{Reports: reportSvc}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
