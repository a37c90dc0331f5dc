package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flexboard/internal/model"
	"flexboard/pkg/apierror"
)

func TestWriteError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
		code   string
		bearer bool
	}{
		{"api error keeps its fields", apierror.BadRequest("title is required", "title"), http.StatusBadRequest, "BAD_REQUEST", false},
		{"unknown user", model.ErrUserNotFound, http.StatusBadRequest, "INVALID_CREDENTIALS", true},
		{"bad password", model.ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS", true},
		{"gate failure", fmt.Errorf("%w: %w", model.ErrUnauthorized, model.ErrUserNotFound), http.StatusUnauthorized, "UNAUTHORIZED", true},
		{"expired token", model.ErrExpiredToken, http.StatusUnauthorized, "UNAUTHORIZED", true},
		{"duplicate user", model.ErrUserAlreadyExists, http.StatusConflict, "ALREADY_EXISTS", false},
		{"not owner", model.ErrForbidden, http.StatusForbidden, "FORBIDDEN", false},
		{"missing job", fmt.Errorf("load: %w", model.ErrJobNotFound), http.StatusNotFound, "NOT_FOUND", false},
		{"bare invalid input", model.ErrInvalidInput, http.StatusBadRequest, "BAD_REQUEST", false},
		{"anything else", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

			assert.Equal(t, tc.status, rec.Code)

			var body model.APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.code, body.Error.Code)

			if tc.bearer {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			} else {
				assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestInternalErrorHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))

	assert.NotContains(t, rec.Body.String(), "password authentication")
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id, err := parseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		_, err := parseID(raw)
		assert.ErrorIs(t, err, model.ErrInvalidInput, raw)
	}
}

func TestNormalizeYAML(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"responses": map[any]any{200: "ok", "404": []any{map[any]any{true: "x"}}},
	}

	raw, err := json.Marshal(normalizeYAML(in))
	require.NoError(t, err)
	assert.JSONEq(t, `{"responses":{"200":"ok","404":[{"true":"x"}]}}`, string(raw))
}
