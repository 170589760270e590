package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// RequestLogger attaches logger to every request, tags it with a request id
// and the remote address, and writes one access line per request.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	attach := hlog.NewHandler(logger)
	remote := hlog.RemoteAddrHandler("ip")
	requestID := hlog.RequestIDHandler("req_id", "X-Request-Id")
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})

	return func(next http.Handler) http.Handler {
		return attach(remote(requestID(access(next))))
	}
}
