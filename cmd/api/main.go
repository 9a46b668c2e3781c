package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medibook-ai/booking-assistant/internal/api/router"
	"github.com/medibook-ai/booking-assistant/internal/app/bootstrap"
	"github.com/medibook-ai/booking-assistant/internal/availability"
	appconfig "github.com/medibook-ai/booking-assistant/internal/config"
	"github.com/medibook-ai/booking-assistant/internal/dialogue"
	"github.com/medibook-ai/booking-assistant/internal/observability/metrics"
	"github.com/medibook-ai/booking-assistant/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking-assistant API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	loc, err := bootstrap.BuildLocation(cfg)
	if err != nil {
		logger.Error("failed to load timezone", "error", err)
		os.Exit(1)
	}

	calendarService, err := bootstrap.BuildCalendarService(ctx, cfg, logger, loc)
	if err != nil {
		logger.Error("failed to build calendar service", "error", err)
		os.Exit(1)
	}

	ext, closeExtractor, err := bootstrap.BuildExtractor(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build extractor", "error", err)
		os.Exit(1)
	}
	defer closeExtractor()

	store := bootstrap.BuildSessionStore(ctx, cfg, logger)
	conversationMetrics := metrics.NewConversationMetrics(nil)

	controller := dialogue.NewController(dialogue.ControllerConfig{
		Calendar:      calendarService,
		Extractor:     ext,
		Logger:        logger,
		Metrics:       conversationMetrics,
		CalendarID:    cfg.CalendarID,
		Hours:         availability.WorkHours{Start: cfg.WorkDayStart, End: cfg.WorkDayEnd},
		SlotDuration:  time.Duration(cfg.SlotMinutes) * time.Minute,
		MaxDaysAhead:  cfg.MaxDaysAhead,
		MaxSlotsShown: cfg.MaxSlotsShown,
		Location:      loc,
	})
	service := dialogue.NewService(controller, store, logger)
	handler := dialogue.NewHandler(service, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		DialogueHandler:    handler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MessageRatePerSec:  cfg.MessageRatePerSec,
		MessageBurst:       cfg.MessageBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
