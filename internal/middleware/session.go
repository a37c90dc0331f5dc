package middleware

import (
	"context"
	"log/slog"
	"net/http"
)

type SessionScoper interface {
	Scope(ctx context.Context) (context.Context, func(), error)
}

// Session gives each request its own database connection and releases it when
// the handler returns, including when it panics.
func Session(scoper SessionScoper) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, release, err := scoper.Scope(r.Context())
			if err != nil {
				slog.ErrorContext(r.Context(), "acquire database session", "request_id", RequestIDFromContext(r.Context()), "error", err)
				w.Header().Set("Retry-After", "5")
				writeFailure(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "database unavailable")
				return
			}
			defer release()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
