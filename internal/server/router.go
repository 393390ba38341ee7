// Package server assembles the HTTP surface: liveness probe, login,
// and the token-guarded prediction endpoints.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/guifav/iris-api/internal/auth"
	"github.com/guifav/iris-api/internal/services/prediction"
)

// RouterOptions controls the construction of the HTTP router.
type RouterOptions struct {
	Service     *prediction.Service
	Issuer      *auth.Issuer
	Verifier    *auth.Verifier
	Version     string
	CORSOptions *cors.Options
	Middleware  []func(http.Handler) http.Handler
}

// DefaultCORSOptions returns the shared development CORS policy.
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}
}

// NewRouter assembles a chi.Router with shared middleware and the API
// handlers mounted. The router can be tailored via RouterOptions for
// CLI usage or tests.
func NewRouter(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	// Baseline middleware shared across entrypoints.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	corsCfg := DefaultCORSOptions()
	if opts.CORSOptions != nil {
		corsCfg = *opts.CORSOptions
	}
	r.Use(cors.Handler(corsCfg))

	for _, mw := range opts.Middleware {
		if mw != nil {
			r.Use(mw)
		}
	}

	r.Get("/", HandleHealth(opts.Version))
	r.Handle("/metrics", promhttp.Handler())

	if opts.Issuer != nil {
		r.Post("/login", HandleLogin(opts.Issuer))
	}

	if opts.Service != nil && opts.Verifier != nil {
		r.Group(func(protected chi.Router) {
			protected.Use(auth.RequireToken(opts.Verifier, authFailureResponder))
			protected.Post("/predict", HandlePredict(opts.Service))
			protected.Get("/predictions", HandlePredictions(opts.Service))
		})
	}

	return r
}
