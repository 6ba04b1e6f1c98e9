package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pksaconstruction/pksa-api/internal/infrastructure/http/handlers"
	"github.com/pksaconstruction/pksa-api/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	ContactHandler   *handlers.ContactHandler
	AdminHandler     *handlers.AdminHandler
	ProjectHandler   *handlers.ProjectHandler
	SettingsHandler  *handlers.SettingsHandler
	HealthHandler    *handlers.HealthHandler
	RequireAdmin     func(http.Handler) http.Handler
	ContactRateLimit func(http.Handler) http.Handler
	Secure           func(http.Handler) http.Handler
	CORS             func(http.Handler) http.Handler
	Log              zerolog.Logger
	Metrics          bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		// Public surface
		if cfg.ContactRateLimit != nil {
			r.With(cfg.ContactRateLimit).Post("/contact", cfg.ContactHandler.Submit)
		} else {
			r.Post("/contact", cfg.ContactHandler.Submit)
		}
		r.Get("/settings", cfg.SettingsHandler.Public)
		r.Get("/projects", cfg.ProjectHandler.List)
		r.Get("/projects/{id}", cfg.ProjectHandler.Get)

		// Admin-only project mutations
		r.With(cfg.RequireAdmin).Delete("/projects/{id}", cfg.ProjectHandler.Delete)
		r.With(cfg.RequireAdmin).Post("/projects/upload", cfg.ProjectHandler.Upload)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", cfg.AdminHandler.Login)
			r.Get("/session", cfg.AdminHandler.Session)

			r.Group(func(r chi.Router) {
				r.Use(cfg.RequireAdmin)
				r.Post("/logout", cfg.AdminHandler.Logout)
				r.Get("/contact-messages", cfg.AdminHandler.ListMessages)
				r.Delete("/contact-messages/delete", cfg.AdminHandler.DeleteMessage)
				r.Get("/settings", cfg.SettingsHandler.Get)
				r.Put("/settings", cfg.SettingsHandler.Update)
			})
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
