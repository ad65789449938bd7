// Package router assembles the intake API's HTTP surface.
package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dialastudent/stocktaker-intake/internal/booking"
	httpmiddleware "github.com/dialastudent/stocktaker-intake/internal/httpx/middleware"
	"github.com/dialastudent/stocktaker-intake/internal/intake"
	"github.com/dialastudent/stocktaker-intake/internal/users"
	"github.com/dialastudent/stocktaker-intake/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	UsersHandler       *users.Handler
	IntakeHandler      *intake.Handler
	BookingHandler     *booking.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Per-IP rate limit; disabled when RateLimitPerSecond is zero.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

var startTime = time.Now()

// New creates a new Chi router with all routes configured.
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
	if cfg.RateLimitPerSecond > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst,
			"/api/health", "/metrics"))
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", health)
		api.Get("/test", testEndpoint)

		if cfg.UsersHandler != nil {
			api.Get("/users/{userID}/status", cfg.UsersHandler.Status)
			api.Post("/users/upsert", cfg.UsersHandler.Upsert)
		}
		if cfg.IntakeHandler != nil {
			api.Post("/users/submit", cfg.IntakeHandler.Submit)
			api.Post("/apply", cfg.IntakeHandler.Apply)
		}
		if cfg.BookingHandler != nil {
			api.Get("/booked-slots", cfg.BookingHandler.BookedSlots)
			api.Post("/book-slot", cfg.BookingHandler.Book)
		}
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    time.Since(startTime).Seconds(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func testEndpoint(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "API is working",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
