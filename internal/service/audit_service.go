package service

import (
	"context"
	"log/slog"
	"time"

	"flexboard/internal/model"
)

const (
	AuditStatusSuccess = "success"
	AuditStatusDenied  = "denied"
	AuditStatusFailed  = "failed"
)

type AuditStore interface {
	Log(ctx context.Context, entry model.AuditEntry) error
	Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error)
}

type AuditService struct {
	store AuditStore
	now   func() time.Time
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store, now: time.Now}
}

// Record stores an entry. Storage failures are logged and swallowed so an audit
// outage never fails the audited operation.
func (s *AuditService) Record(ctx context.Context, action string, actor model.Actor, status string, resource string, before any, after any, errText string) {
	if s == nil || s.store == nil {
		return
	}

	entry := model.AuditEntry{
		Action:     action,
		OccurredAt: s.now().UTC().Format(time.RFC3339Nano),
		Actor: model.AuditActor{
			UserID:   actor.User.ID,
			Username: actor.User.Username,
			IP:       actor.IP,
		},
		Status:   status,
		Resource: resource,
		Before:   before,
		After:    after,
		Error:    errText,
	}

	if err := s.store.Log(ctx, entry); err != nil {
		slog.WarnContext(ctx, "audit entry not recorded", "action", action, "resource", resource, "error", err)
	}
}

func (s *AuditService) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 50
	}
	if query.Limit > 200 {
		query.Limit = 200
	}

	return s.store.Query(ctx, query)
}
