package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/service"
)

const KeyJwtSessionCookieName = "jwt_session"

// JWTMiddleware returns a wrapper that rejects requests without a valid
// session token. The token is read from the session cookie, or from an
// "Authorization: Bearer" header. On success the claims are put in the
// request context under service.KeyCtxUserCredClaims.
func JWTMiddleware(secret []byte) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				http.Error(w, "missing session token", http.StatusUnauthorized)
				return
			}

			claims, err := service.ParseToken(secret, tokenString)
			if err != nil {
				log.WithField("path", r.URL.Path).Warn(err)
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			next(w, r.WithContext(service.WithClaims(r.Context(), claims)))
		}
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(KeyJwtSessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
