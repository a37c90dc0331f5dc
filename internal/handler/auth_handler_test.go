package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flexboard/internal/model"
)

func TestReadLoginRequest(t *testing.T) {
	t.Parallel()

	t.Run("form body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login/token", strings.NewReader("username=+ann+&password=pw"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		payload, err := readLoginRequest(httptest.NewRecorder(), req)
		require.NoError(t, err)
		assert.Equal(t, model.LoginRequest{Username: "ann", Password: "pw"}, payload)
	})

	t.Run("json body with charset", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login/token", strings.NewReader(`{"username":"ann@example.com","password":"pw"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		payload, err := readLoginRequest(httptest.NewRecorder(), req)
		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", payload.Username)
	})

	t.Run("missing password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login/token", strings.NewReader("username=ann"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		_, err := readLoginRequest(httptest.NewRecorder(), req)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("broken json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login/token", strings.NewReader(`{"username":`))
		req.Header.Set("Content-Type", "application/json")

		_, err := readLoginRequest(httptest.NewRecorder(), req)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}
