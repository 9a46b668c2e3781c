// Package router assembles the HTTP surface of the booking assistant.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medibook-ai/booking-assistant/internal/dialogue"
	httpmiddleware "github.com/medibook-ai/booking-assistant/internal/http/middleware"
	"github.com/medibook-ai/booking-assistant/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger          *logging.Logger
	DialogueHandler *dialogue.Handler
	MetricsHandler  http.Handler

	CORSAllowedOrigins []string

	// MessageRatePerSec limits message turns per client IP; zero disables
	// the limiter. Message turns call out to the LLM, so the default
	// deployments set this.
	MessageRatePerSec float64
	MessageBurst      int
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.DialogueHandler != nil {
		r.Route("/sessions", func(s chi.Router) {
			if cfg.MessageRatePerSec > 0 {
				s.Use(httpmiddleware.RateLimit(cfg.MessageRatePerSec, cfg.MessageBurst))
			}
			s.Post("/", cfg.DialogueHandler.Start)
			s.Post("/{sessionID}/messages", cfg.DialogueHandler.Message)
			s.Post("/{sessionID}/reset", cfg.DialogueHandler.Reset)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
