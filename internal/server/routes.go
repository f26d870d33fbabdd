package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/footballnews/landing/internal/handler"
	"github.com/footballnews/landing/internal/middleware"
)

// Routes holds everything NewRouter mounts.
type Routes struct {
	Contact   *handler.ContactHandler
	Subscribe *handler.SubscribeHandler
	Health    *handler.HealthHandler
	Metrics   *handler.MetricsHandler

	Logger        *slog.Logger
	IsDevelopment bool
	// MaxBodySize caps relay request bodies. Zero disables the cap.
	MaxBodySize int64
	// StaticDir serves the landing site from disk. Empty serves a JSON info document at /.
	StaticDir string
}

// NewRouter builds the chi router for the relay API and the optional static site.
func NewRouter(rt Routes) *chi.Mux {
	h := handler.New()
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(rt.Logger))
	r.Use(middleware.Recoverer(rt.Logger))

	r.Get("/healthz", rt.Health.Healthz)
	r.Get("/readyz", rt.Health.Readyz)
	if rt.Metrics != nil {
		r.Get("/metrics", rt.Metrics.Metrics)
	}

	apiSecurity := middleware.DefaultSecurityConfig()
	apiSecurity.IsDevelopment = rt.IsDevelopment

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Security(apiSecurity))
		r.Use(middleware.CORS(middleware.RelayCORSConfig()))
		if rt.MaxBodySize > 0 {
			r.Use(middleware.MaxBodySize(rt.MaxBodySize))
		}

		r.NotFound(h.NotFound)
		r.MethodNotAllowed(h.MethodNotAllowed)

		r.Post("/contact", rt.Contact.Submit)
		r.Options("/contact", h.Preflight)
		r.Post("/subscribe", rt.Subscribe.Subscribe)
		r.Options("/subscribe", h.Preflight)
	})

	if rt.StaticDir != "" {
		files := http.FileServer(http.Dir(rt.StaticDir))
		site := r.With(middleware.Security(middleware.SiteSecurityConfig(rt.IsDevelopment)))
		site.Get("/*", files.ServeHTTP)
		site.Head("/*", files.ServeHTTP)
	} else {
		r.Get("/", h.Info)
	}

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
