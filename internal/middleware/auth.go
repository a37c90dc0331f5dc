package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"flexboard/internal/model"
)

// AuthCookieName is the cookie set at login; it carries "Bearer <token>".
const AuthCookieName = "Authorization"

type authenticator interface {
	Authenticate(ctx context.Context, token string) (model.User, error)
}

type contextKey string

const userContextKey contextKey = "auth_user"

type AuthMiddleware struct {
	authenticator authenticator
}

func NewAuthMiddleware(authenticator authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// RequireAuth resolves the bearer token from the Authorization header, or from
// the login cookie when no header is sent, and stores the user in the context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeUnauthorized(w, "missing or invalid authorization header")
			return
		}

		user, err := m.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, model.ErrUnauthorized) {
				slog.DebugContext(r.Context(), "authentication rejected", "error", err)
				writeUnauthorized(w, "could not validate credentials")
				return
			}
			slog.ErrorContext(r.Context(), "authentication failed", "error", err)
			writeFailure(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected server error")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (m *AuthMiddleware) RequireSuperuser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeUnauthorized(w, "authentication required")
			return
		}

		if !user.IsSuperuser {
			writeFailure(w, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userContextKey).(model.User)
	return user, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		if cookie, err := r.Cookie(AuthCookieName); err == nil {
			header = strings.TrimSpace(cookie.Value)
		}
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeFailure(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}
