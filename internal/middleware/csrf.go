package middleware

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/rs/zerolog/hlog"
)

// CSRF requires a token on every unsafe request and rejects cross-origin
// posts. plaintextHTTP must be set when the admin is served without TLS,
// otherwise same-origin browser posts fail the https origin check.
func CSRF(authKey []byte, plaintextHTTP bool) func(http.Handler) http.Handler {
	protect := csrf.Protect(authKey,
		csrf.Path("/admin"),
		csrf.Secure(!plaintextHTTP),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		if !plaintextHTTP {
			return protected
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	hlog.FromRequest(r).Warn().Err(csrf.FailureReason(r)).Str("origin", r.Header.Get("Origin")).Msg("CSRF check failed")
	http.Error(w, "Forbidden", http.StatusForbidden)
}
