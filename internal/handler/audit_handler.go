package handler

import (
	"net/http"
	"strconv"
	"strings"

	"flexboard/internal/model"
	"flexboard/internal/service"
	"flexboard/pkg/apierror"
)

type AuditHandler struct {
	service *service.AuditService
}

func NewAuditHandler(service *service.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var actorID int64
	if raw := strings.TrimSpace(query.Get("actor_id")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "actor_id must be an integer", raw, http.StatusBadRequest))
			return
		}
		actorID = parsed
	}

	items, meta, err := h.service.Query(r.Context(), model.AuditQuery{
		Action:  strings.TrimSpace(query.Get("action")),
		ActorID: actorID,
		Page:    parseIntOrDefault(query.Get("page"), 1),
		Limit:   parseIntOrDefault(query.Get("limit"), 50),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.AuditListData{Items: items}, &meta)
}
