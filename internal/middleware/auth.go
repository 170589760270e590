package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/hlog"
	"golang.org/x/crypto/bcrypt"
)

const adminRealm = `Basic realm="podcasts admin", charset="UTF-8"`

// BasicAuth guards next with a single admin account. passwordHash is a bcrypt hash.
func BasicAuth(username, passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", adminRealm)
				http.Error(w, "Authorization required", http.StatusUnauthorized)
				return
			}

			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
			passOK := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pass)) == nil
			if !userOK || !passOK {
				hlog.FromRequest(r).Warn().Str("user", user).Msg("Invalid admin credentials")
				w.Header().Set("WWW-Authenticate", adminRealm)
				http.Error(w, "Invalid credentials", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
