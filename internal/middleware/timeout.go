package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"flexboard/internal/model"
)

const defaultRequestTimeout = 30 * time.Second

// Timeout cancels the request context after d and answers 503 with the usual
// failure envelope. Headers set by a handler that finishes in time replace
// the preset Content-Type.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	if d <= 0 {
		d = defaultRequestTimeout
	}

	body, _ := json.Marshal(model.Failure("REQUEST_TIMEOUT", "request timed out"))

	return func(next http.Handler) http.Handler {
		bounded := http.TimeoutHandler(next, d, string(body))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			bounded.ServeHTTP(w, r)
		})
	}
}
