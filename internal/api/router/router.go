package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/keysbycaleb/booking-platform/internal/http/handlers"
	httpmiddleware "github.com/keysbycaleb/booking-platform/internal/http/middleware"
	"github.com/keysbycaleb/booking-platform/internal/submissions"
	"github.com/keysbycaleb/booking-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	SubmissionsHandler *submissions.Handler
	WizardSessions     *handlers.WizardSessions
	MetricsHandler     http.Handler
	AdminAuthSecret    string
	CORSAllowedOrigins []string

	// Submit rate limiting (requests/sec per IP). Zero disables it.
	SubmitRateLimit float64
	SubmitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
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

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		// The endpoint the booking pages post their serialized form to.
		if cfg.SubmissionsHandler != nil {
			submit := public
			if cfg.SubmitRateLimit > 0 {
				submit = public.With(httpmiddleware.RateLimit(cfg.SubmitRateLimit, cfg.SubmitBurst))
			}
			submit.Post("/", cfg.SubmissionsHandler.Create)
			submit.Post("/submissions", cfg.SubmissionsHandler.Create)
		}

		if cfg.WizardSessions != nil {
			public.Route("/booking/wizard/sessions", func(r chi.Router) {
				r.Post("/", cfg.WizardSessions.Create)
				r.Post("/{id}/events", cfg.WizardSessions.ApplyEvent)
				r.Delete("/{id}", cfg.WizardSessions.Delete)
			})
		}
	})

	// Admin routes (protected by JWT)
	if cfg.AdminAuthSecret != "" && cfg.SubmissionsHandler != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Get("/submissions", cfg.SubmissionsHandler.List)
			admin.Get("/submissions/{id}", cfg.SubmissionsHandler.Get)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
