package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sessionKey struct{}

type fakeScoper struct {
	acquired int
	released int
	err      error
}

func (s *fakeScoper) Scope(ctx context.Context) (context.Context, func(), error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	s.acquired++
	return context.WithValue(ctx, sessionKey{}, s.acquired), func() { s.released++ }, nil
}

func TestSession(t *testing.T) {
	t.Parallel()

	t.Run("handler sees the scoped context and the session is released", func(t *testing.T) {
		scoper := &fakeScoper{}
		var seen any
		handler := Session(scoper)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.Context().Value(sessionKey{})
			w.WriteHeader(http.StatusNoContent)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/list", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, 1, seen)
		assert.Equal(t, 1, scoper.released)
	})

	t.Run("released after an error response", func(t *testing.T) {
		scoper := &fakeScoper{}
		handler := Session(scoper)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeFailure(w, http.StatusNotFound, "NOT_FOUND", "missing")
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/jobs/9", nil))

		assert.Equal(t, 1, scoper.released)
	})

	t.Run("released when the handler panics", func(t *testing.T) {
		scoper := &fakeScoper{}
		handler := Recovery(Session(scoper)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/9", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, 1, scoper.released)
	})

	t.Run("acquire failure is service unavailable", func(t *testing.T) {
		scoper := &fakeScoper{err: errors.New("pool closed")}
		called := false
		handler := Session(scoper)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/list", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.False(t, called)
	})
}
