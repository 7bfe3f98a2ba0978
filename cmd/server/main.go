package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brackenhill/bakehouse/internal"
	"github.com/brackenhill/bakehouse/internal/domain"
	"github.com/brackenhill/bakehouse/internal/email"
	"github.com/brackenhill/bakehouse/internal/handler"
	"github.com/brackenhill/bakehouse/internal/notify"
	"github.com/brackenhill/bakehouse/internal/router"
	"github.com/brackenhill/bakehouse/internal/service"
	"github.com/brackenhill/bakehouse/internal/sheets"
	"github.com/brackenhill/bakehouse/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Catalog and pricing
	catalog := domain.DefaultCatalog()
	pricer, err := service.NewPricer(catalog)
	if err != nil {
		return fmt.Errorf("failed to initialize pricer: %w", err)
	}

	// Outbound email provider
	var sender email.Sender
	switch cfg.Email.Provider {
	case "sendgrid":
		sender = email.NewSendGridSender(cfg.Email.SendGridAPIKey, cfg.Email.From, cfg.Email.FromName, logger)
		logger.Info("Email provider initialized", "provider", "sendgrid")
	default:
		sender = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     int(cfg.Email.Port),
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		}, logger)
		logger.Info("Email provider initialized", "provider", "smtp", "host", cfg.Email.Host)
	}
	emailService := email.NewService(sender, cfg.Email.From, cfg.Email.FromName, cfg.Email.OrderTo)

	// Spreadsheet backend
	var sheet sheets.Appender
	if cfg.Sheets.SpreadsheetID != "" {
		googleSheet, err := sheets.NewGoogleAppender(ctx, sheets.GoogleConfig{
			SpreadsheetID:    cfg.Sheets.SpreadsheetID,
			OrdersSheet:      cfg.Sheets.OrdersSheet,
			SubscribersSheet: cfg.Sheets.SubscribersSheet,
			CredentialsJSON:  cfg.Sheets.CredentialsJSON,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize sheets client: %w", err)
		}
		sheet = googleSheet
		logger.Info("Google Sheets client initialized")
	} else {
		sheet = sheets.NewLogAppender(logger)
		logger.Warn("GOOGLE_SHEET_ID not set, spreadsheet rows will only be logged")
	}

	// Order notification collaborator
	notifier := notify.NewNotifier(emailService, sheet, logger)

	// Metrics
	metrics := telemetry.NewMetrics("bakehouse")

	// Routes
	r := router.New(
		router.RequestID,
		router.Logger(logger),
		router.Recovery(logger),
		metrics.Middleware,
	)

	orderHandler := handler.NewOrderHandler(catalog, pricer, notifier, metrics, logger).
		WithNoticeDelay(cfg.NoticeDelay)
	newsletterHandler := handler.NewNewsletterHandler(sheet, metrics, logger)

	r.Post("/api/orders", orderHandler.Submit)
	r.Post("/api/newsletter", newsletterHandler.Subscribe)
	r.Get("/healthz", handler.Health)
	r.Handle(http.MethodGet, "/metrics", metrics.Handler())
	r.Static("/", "web/static")

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Serve until interrupted, then drain
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
