package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/pkg/handlers"
)

// Authenticate returns middleware that validates the request's bearer token
// or session cookie and stores the resulting principal in the request
// context. Requests matching an exempt path prefix pass through
// unauthenticated.
func Authenticate(tokens *auth.Tokens, cookieName string, logger *slog.Logger, exempt ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range exempt {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			raw := BearerToken(r)
			if raw == "" && cookieName != "" {
				if c, err := r.Cookie(cookieName); err == nil {
					raw = c.Value
				}
			}
			if raw == "" {
				handlers.RespondError(w, logger, http.StatusUnauthorized, auth.ErrAuthRequired)
				return
			}

			principal, err := tokens.Verify(raw)
			if err != nil {
				handlers.RespondError(w, logger, http.StatusUnauthorized, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequirePermission wraps a handler so it only runs when the request
// principal holds the permission codename.
func RequirePermission(codename string, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFrom(r.Context())
			if !ok {
				handlers.RespondError(w, logger, http.StatusUnauthorized, auth.ErrAuthRequired)
				return
			}
			if !principal.Can(codename) {
				handlers.RespondError(w, logger, http.StatusForbidden, auth.ErrPermissionDenied)
				return
			}
			next(w, r)
		}
	}
}

// BearerToken extracts the token from an Authorization: Bearer header,
// or returns an empty string when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
