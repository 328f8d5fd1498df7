package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"gadict/internal/auth"
	"gadict/internal/httputil"
)

// Auth validates the Bearer token when one is present and annotates the
// request context with the caller's identity and dictionary role. Requests
// without a token pass through unauthenticated; handlers that need an
// actor reject those themselves. A token that is present but invalid is
// rejected here.
func Auth(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "malformed Authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUser(r, claims.GetUserID(), string(claims.GetDictRole())))
		})
	}
}
