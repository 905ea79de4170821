package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"garbage-billing-backend/internal/backend"
	"garbage-billing-backend/internal/config"
	"garbage-billing-backend/internal/jobs"
	"garbage-billing-backend/internal/logger"
	"garbage-billing-backend/internal/repository/document"
	"garbage-billing-backend/internal/scheduler"
	"garbage-billing-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'outstanding-digest', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Garbage Billing Cronjob Runner...", "log_level", cfg.Log.Level)

	backends, err := backend.Open(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to open backends", "error", err)
		log.Fatalf("Failed to open backends: %v", err)
	}
	defer backends.Close()

	// Initialize Repositories
	store := document.NewStore(backends.Docs)

	// Initialize Services
	var emailService service.EmailService
	if cfg.Email.APIKey != "" {
		emailService = service.NewSendGridEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	} else {
		logger.Warn("SendGrid API key not set; digests will only be logged")
		emailService = service.NewLogEmailService()
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store, &jobs.Services{Email: emailService}, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "outstanding-digest":
		jobRunner.SendOutstandingDigest()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - outstanding-digest\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
