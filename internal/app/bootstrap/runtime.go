// Package bootstrap builds the shared runtime collaborators the binaries
// need: redis, session storage, the calendar backend and the extractor.
package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medibook-ai/booking-assistant/internal/calendar"
	appconfig "github.com/medibook-ai/booking-assistant/internal/config"
	"github.com/medibook-ai/booking-assistant/internal/dialogue"
	"github.com/medibook-ai/booking-assistant/internal/extractor"
	"github.com/medibook-ai/booking-assistant/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildSessionStore selects redis-backed or in-memory session persistence.
// Redis is preferred; the memory store is the fallback when redis is
// unavailable or explicitly disabled.
func BuildSessionStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) dialogue.SessionStore {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg != nil && !cfg.UseMemoryStore {
		if client := BuildRedisClient(ctx, cfg, logger, true); client != nil {
			logger.Info("using redis session store", "addr", cfg.RedisAddr)
			return dialogue.NewRedisStore(client, nil, cfg.SessionTTL)
		}
	}
	logger.Info("using in-memory session store")
	return dialogue.NewMemoryStore()
}

// BuildCalendarService returns the Google Calendar backend when credentials
// are configured, otherwise the in-memory calendar for local development.
func BuildCalendarService(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, loc *time.Location) (calendar.Service, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg == nil || strings.TrimSpace(cfg.GoogleCredentialsFile) == "" {
		logger.Info("no calendar credentials configured, using in-memory calendar")
		return calendar.NewMemoryService(), nil
	}

	svc, err := calendar.NewGoogleService(ctx, cfg.GoogleCredentialsFile, loc)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: google calendar: %w", err)
	}
	logger.Info("using google calendar", "calendar_id", cfg.CalendarID)
	return svc, nil
}

// BuildExtractor wires the Gemini-backed intent extractor. The returned
// closer releases the underlying client connection.
func BuildExtractor(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*extractor.Extractor, func(), error) {
	if cfg == nil || strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, nil, fmt.Errorf("bootstrap: GEMINI_API_KEY is required")
	}
	client, err := extractor.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap: gemini client: %w", err)
	}
	return extractor.New(client, logger), func() { _ = client.Close() }, nil
}

// BuildLocation loads the configured scheduling timezone.
func BuildLocation(cfg *appconfig.Config) (*time.Location, error) {
	name := "Asia/Kolkata"
	if cfg != nil && strings.TrimSpace(cfg.Timezone) != "" {
		name = cfg.Timezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: load timezone %q: %w", name, err)
	}
	return loc, nil
}
