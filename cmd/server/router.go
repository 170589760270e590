package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"podcasts/internal/admin"
	"podcasts/internal/config"
	"podcasts/internal/handlers"
	"podcasts/internal/middleware"
)

// newRouter wires every route. site may be nil, in which case /admin/ is not served.
func newRouter(cfg *config.Config, h *handlers.Handlers, site *admin.Site, logger zerolog.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Home).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/feed.xml", h.GetRSSFeed).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	if site != nil {
		limiter := middleware.NewRateLimiterMiddleware(rate.Limit(cfg.AdminRateLimit), cfg.AdminRateBurst)
		// Outermost first: failed logins must spend rate limit tokens.
		site.Register(r,
			limiter.Middleware,
			middleware.BasicAuth(cfg.AdminUsername, cfg.AdminPasswordHash),
			middleware.CSRF(cfg.CSRFKey, cfg.AdminPlaintextHTTP),
		)
	}

	return middleware.RequestLogger(logger)(r)
}
