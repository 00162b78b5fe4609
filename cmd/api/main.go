package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/keysbycaleb/booking-platform/cmd/mainconfig"
	"github.com/keysbycaleb/booking-platform/internal/api/router"
	appconfig "github.com/keysbycaleb/booking-platform/internal/config"
	"github.com/keysbycaleb/booking-platform/internal/http/handlers"
	"github.com/keysbycaleb/booking-platform/internal/notify"
	"github.com/keysbycaleb/booking-platform/internal/observability/metrics"
	"github.com/keysbycaleb/booking-platform/internal/relay"
	"github.com/keysbycaleb/booking-platform/internal/submissions"
	"github.com/keysbycaleb/booking-platform/internal/wizard"
	"github.com/keysbycaleb/booking-platform/pkg/logging"
)

func main() {
	// Load .env in development; production injects real env vars.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Storage: Postgres when configured, in-memory otherwise.
	var repo submissions.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = submissions.NewPostgresRepository(pool)
		logger.Info("submission storage: postgres")
	} else {
		repo = submissions.NewInMemoryRepository()
		logger.Warn("submission storage: in-memory (DATABASE_URL not set)")
	}

	// Wizard sessions: Redis when configured, in-memory otherwise.
	var sessionStore wizard.SessionStore
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		defer client.Close()
		sessionStore = wizard.NewRedisStore(client, cfg.WizardSessionTTL)
		logger.Info("wizard sessions: redis", "addr", cfg.RedisAddr)
	} else {
		sessionStore = wizard.NewMemoryStore()
		logger.Warn("wizard sessions: in-memory (REDIS_ADDR not set)")
	}

	// Spreadsheet relay queue, optional.
	var queue relay.Queue
	if cfg.RelayQueueURL != "" {
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		queue = relay.NewSQSQueue(sqs.NewFromConfig(awsCfg), cfg.RelayQueueURL)
		logger.Info("relay queue: sqs", "url", cfg.RelayQueueURL)
	}

	// Owner notifications. The provider constructors return nil when
	// unconfigured, and a nil *SendGridSender stored in the interface
	// is not a nil interface, so fall back to the stub explicitly.
	var emailSender notify.EmailSender = notify.NewStubEmailSender(logger)
	switch cfg.EmailProvider {
	case "sendgrid":
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sender != nil {
			emailSender = sender
		} else {
			logger.Warn("sendgrid not configured, email notifications disabled")
		}
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		if sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sender != nil {
			emailSender = sender
		}
	}
	notifier := notify.NewService(emailSender, notify.Owner{
		Email: cfg.OwnerEmail,
		Name:  cfg.OwnerName,
	}, logger.WithComponent("notify"))

	reg := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(reg)

	// Initialize handlers
	submissionsHandler := submissions.NewHandler(repo, queue, notifier, bookingMetrics, logger)
	submitter := wizard.NewHTTPSubmitter(cfg.PublicBaseURL+"/", cfg.SubmitTimeout, logger)
	wizardSessions := handlers.NewWizardSessions(sessionStore, submitter,
		cfg.PaymentLinkFull, cfg.PaymentLinkHourly, bookingMetrics, logger.WithComponent("wizard"),
		wizard.WithTransitionDelay(cfg.TransitionDelay))

	// Setup router
	routerCfg := &router.Config{
		Logger:             logger,
		SubmissionsHandler: submissionsHandler,
		WizardSessions:     wizardSessions,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SubmitRateLimit:    cfg.SubmitRateLimit,
		SubmitBurst:        cfg.SubmitRateBurst,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
