package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"estatedesk/internal/config"
	"estatedesk/internal/metrics"
)

// SetupRoutes configures the full HTTP surface
func SetupRoutes(h *Handlers, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(metrics.PrometheusMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	// Operational endpoints
	r.Get("/health", h.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	// Public lead capture
	r.Post("/inquiry", h.SubmitInquiry)

	// Login lives under both prefixes; the dashboard has used both.
	r.Post("/admin/login", h.Login)

	// Legacy admin prefix kept alongside /api/admin
	r.Route("/admin/inquiries", func(r chi.Router) {
		r.Use(RequireAuth)
		r.Get("/", h.ListInquiries)
		r.Put("/{id}", h.UpdateInquiry)
		r.Delete("/{id}", h.DeleteInquiry)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/newsletter", h.SubscribeNewsletter)
		r.Post("/newsletter/unsubscribe", h.UnsubscribeNewsletter)
		r.Post("/career", h.SubmitCareer)
		r.Post("/builder-inquiry", h.SubmitBuilderInquiry)
		r.Post("/location-inquiry", h.SubmitLocationInquiry)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/search", h.SearchProjects)
			r.Get("/locations", h.ProjectLocations)
			r.Get("/builders", h.ProjectBuilders)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/reset-password", h.ResetPassword)

			// Everything else under /api/admin needs a bearer token
			r.Group(func(r chi.Router) {
				r.Use(RequireAuth)

				r.Route("/inquiries", func(r chi.Router) {
					r.Get("/", h.ListInquiries)
					r.Put("/{id}", h.UpdateInquiry)
					r.Delete("/{id}", h.DeleteInquiry)
				})

				r.Route("/builder-inquiries", func(r chi.Router) {
					r.Get("/", h.ListBuilderInquiries)
					r.Delete("/{id}", h.DeleteBuilderInquiry)
				})

				r.Route("/location-inquiries", func(r chi.Router) {
					r.Get("/", h.ListLocationInquiries)
					r.Put("/{id}/status", h.UpdateLocationInquiryStatus)
					r.Delete("/{id}", h.DeleteLocationInquiry)
				})

				r.Route("/career-submissions", func(r chi.Router) {
					r.Get("/", h.ListCareerSubmissions)
					r.Put("/{id}", h.UpdateCareerSubmission)
					r.Delete("/{id}", h.DeleteCareerSubmission)
				})

				r.Route("/newsletter-subscriptions", func(r chi.Router) {
					r.Get("/", h.ListNewsletterSubscriptions)
					r.Delete("/{id}", h.DeleteNewsletterSubscription)
				})

				r.Post("/properties", h.CreateProject)
			})
		})
	})

	return r
}

// securityHeaders adds baseline security headers to every response
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
