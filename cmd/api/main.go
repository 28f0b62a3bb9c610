package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estatedesk/internal/api"
	"estatedesk/internal/config"
	"estatedesk/internal/database"
	"estatedesk/internal/metrics"
	"estatedesk/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	dbStatsInterval = 30 * time.Second
)

func main() {
	// Initialize structured logging
	log.SetPrefix("[API] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate critical configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	log.Printf("Starting %s v%s", cfg.App.Name, cfg.App.Version)
	log.Printf("Environment: debug=%v, port=%s, host=%s", cfg.App.Debug, cfg.App.Port, cfg.App.Host)

	// Initialize database
	log.Println("Initializing database connection...")
	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		log.Println("Closing database connections...")
		if sqlDB, err := database.GetDB().DB(); err == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				log.Printf("Error closing database: %v", closeErr)
			}
		}
	}()

	// Keep the connection pool gauges on /metrics current
	stopStats := make(chan struct{})
	go pollDBStats(stopStats)
	defer close(stopStats)

	// Create service instances
	log.Println("Initializing services...")
	db := database.GetDB()
	emailSvc := services.NewEmailService(&cfg.Email)
	smsSvc := services.NewSMSService(&cfg.SMS)
	authSvc := services.NewAuthService(db)
	inquirySvc := services.NewInquiryService(db, emailSvc, smsSvc, &cfg.Admin)
	builderSvc := services.NewBuilderInquiryService(db, emailSvc, &cfg.Admin)
	locationSvc := services.NewLocationInquiryService(db, emailSvc, &cfg.Admin)
	careerSvc := services.NewCareerService(db, emailSvc, &cfg.Admin)
	newsletterSvc := services.NewNewsletterService(db, emailSvc, &cfg.Admin)
	projectSvc := services.NewProjectService(db)
	healthSvc := services.NewHealthService()

	handlers := api.NewHandlers(authSvc, inquirySvc, builderSvc, locationSvc, careerSvc, newsletterSvc, projectSvc, healthSvc)

	log.Println("Mounting HTTP handlers...")
	router := api.SetupRoutes(handlers, cfg)

	// Create HTTP server with timeouts
	addr := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     log.New(os.Stderr, "[HTTP] ", log.LstdFlags),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatalf("Server failed to start: %v", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v. Starting graceful shutdown...", sig)
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Error during graceful shutdown: %v", err)
		if err == context.DeadlineExceeded {
			log.Println("Shutdown timeout exceeded, forcing close...")
			httpServer.Close()
		}
	}

	log.Println("Server shutdown complete")
}

// pollDBStats refreshes the connection pool gauges until stop is closed
func pollDBStats(stop <-chan struct{}) {
	ticker := time.NewTicker(dbStatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			stats, err := database.GetStats()
			if err != nil {
				log.Printf("Failed to read database stats: %v", err)
				continue
			}
			metrics.UpdateDBStats(stats.InUse, stats.Idle)
		case <-stop:
			return
		}
	}
}

// validateConfig validates critical configuration values
func validateConfig(cfg *config.Config) error {
	if cfg.Auth.SecretKey == "" || cfg.Auth.SecretKey == "your-secret-key-change-in-production" {
		return fmt.Errorf("JWT_SECRET must be set and changed from default value")
	}
	if len(cfg.Auth.SecretKey) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for security")
	}
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	return nil
}
