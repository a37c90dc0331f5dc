package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware_UnlimitedGeneral(t *testing.T) {
	handler := NewRateLimitMiddleware(0, 1).Handler(okHandler())

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/list", nil))
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
}

func TestRateLimitMiddleware_LimitedLogin(t *testing.T) {
	handler := NewRateLimitMiddleware(0, 1).Handler(okHandler())

	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, httptest.NewRequest(http.MethodPost, "/login/token", nil))
	assert.Equal(t, http.StatusOK, rec1.Code)

	// Burst is 1, so the immediate second attempt is throttled.
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, httptest.NewRequest(http.MethodPost, "/login/token", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
	assert.Equal(t, "60", rec2.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"success":false,"error":{"code":"RATE_LIMITED","message":"Too many requests"}}`, rec2.Body.String())
}

func TestRateLimitMiddleware_PerClient(t *testing.T) {
	handler := NewRateLimitMiddleware(0, 1).Handler(okHandler())

	first := httptest.NewRequest(http.MethodPost, "/login/token", nil)
	first.RemoteAddr = "10.0.0.1:4000"
	second := httptest.NewRequest(http.MethodPost, "/login/token", nil)
	second.RemoteAddr = "10.0.0.2:4000"

	for _, req := range []*http.Request{first, second} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitMiddleware_Configuration(t *testing.T) {
	mw := NewRateLimitMiddleware(-1, 0)
	assert.Equal(t, -1, mw.generalRPM)
	assert.Equal(t, 10, mw.authRPM)
	assert.True(t, mw.isAuthPath("/users/create-user"))
	assert.False(t, mw.isAuthPath("/users/me"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:5555"
	assert.Equal(t, "192.0.2.7", ClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.1")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.1")
	assert.Equal(t, "192.0.2.7", ClientIP(req))

	// RealIP leaves a bare address without a port.
	req.RemoteAddr = "203.0.113.9"
	assert.Equal(t, "203.0.113.9", ClientIP(req))

	req.RemoteAddr = ""
	assert.Equal(t, "unknown", ClientIP(req))
}

func TestRateLimitMiddleware_IgnoresForwardedFor(t *testing.T) {
	handler := NewRateLimitMiddleware(0, 1).Handler(okHandler())

	codes := make([]int, 0, 2)
	for _, forwarded := range []string{"10.0.0.1", "10.0.0.2"} {
		req := httptest.NewRequest(http.MethodPost, "/login/token", nil)
		req.RemoteAddr = "192.0.2.7:5555"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
