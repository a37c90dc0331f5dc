package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"flexboard/pkg/apierror"
)

var errDatabaseUnavailable = apierror.New("SERVICE_UNAVAILABLE", "database unavailable", "", http.StatusServiceUnavailable)

type pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db      pinger
	version string
}

func NewHealthHandler(db pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		slog.WarnContext(r.Context(), "health check failed", "error", err)
		writeError(w, r, errDatabaseUnavailable)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok", "version": h.version}, nil)
}
