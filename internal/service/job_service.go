package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"flexboard/internal/model"
	"flexboard/pkg/apierror"
)

type JobStore interface {
	Create(ctx context.Context, job model.Job) (model.Job, error)
	FindByID(ctx context.Context, id int64) (model.Job, error)
	ListActive(ctx context.Context) ([]model.Job, error)
	Update(ctx context.Context, id int64, patch model.JobPatch) (model.Job, error)
	Delete(ctx context.Context, id int64) error
}

type JobService struct {
	jobs  JobStore
	audit *AuditService
	now   func() time.Time
}

func NewJobService(jobs JobStore, audit *AuditService) *JobService {
	return &JobService{jobs: jobs, audit: audit, now: time.Now}
}

func (s *JobService) Create(ctx context.Context, actor model.Actor, req model.CreateJobRequest) (model.JobView, error) {
	job := model.Job{
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		CompanyURL:  strings.TrimSpace(req.CompanyURL),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		IsActive:    true,
		OwnerID:     actor.User.ID,
	}

	required := []struct{ field, value string }{
		{"title", job.Title},
		{"company", job.Company},
		{"company_url", job.CompanyURL},
		{"description", job.Description},
	}
	for _, r := range required {
		if r.value == "" {
			return model.JobView{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", r.field+" is required", r.field, http.StatusBadRequest)
		}
	}

	if job.Location == "" {
		job.Location = model.DefaultJobLocation
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}

	job.DatePosted = truncateToDate(s.now())
	if raw := strings.TrimSpace(req.DatePosted); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			return model.JobView{}, err
		}
		job.DatePosted = date
	}

	created, err := s.jobs.Create(ctx, job)
	if err != nil {
		s.audit.Record(ctx, "job.create", actor, AuditStatusFailed, "job", nil, job.View(), err.Error())
		return model.JobView{}, err
	}

	view := created.View()
	s.audit.Record(ctx, "job.create", actor, AuditStatusSuccess, jobResource(created.ID), nil, view, "")
	return view, nil
}

func (s *JobService) Get(ctx context.Context, id int64) (model.JobView, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return model.JobView{}, err
	}
	return job.View(), nil
}

// List returns active postings only; inactive ones are hidden from everyone.
func (s *JobService) List(ctx context.Context) ([]model.JobView, error) {
	jobs, err := s.jobs.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]model.JobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, job.View())
	}
	return views, nil
}

// Update applies the supplied, non-empty fields after the ownership check.
func (s *JobService) Update(ctx context.Context, actor model.Actor, id int64, req model.UpdateJobRequest) (model.JobView, error) {
	patch, err := buildPatch(req)
	if err != nil {
		return model.JobView{}, err
	}

	current, err := s.authorize(ctx, actor, id, "job.update")
	if err != nil {
		return model.JobView{}, err
	}

	updated, err := s.jobs.Update(ctx, id, patch)
	if err != nil {
		s.audit.Record(ctx, "job.update", actor, AuditStatusFailed, jobResource(id), current.View(), nil, err.Error())
		return model.JobView{}, err
	}

	view := updated.View()
	s.audit.Record(ctx, "job.update", actor, AuditStatusSuccess, jobResource(id), current.View(), view, "")
	return view, nil
}

func (s *JobService) Delete(ctx context.Context, actor model.Actor, id int64) (model.DeleteJobResult, error) {
	current, err := s.authorize(ctx, actor, id, "job.delete")
	if err != nil {
		return model.DeleteJobResult{}, err
	}

	if err := s.jobs.Delete(ctx, id); err != nil {
		s.audit.Record(ctx, "job.delete", actor, AuditStatusFailed, jobResource(id), current.View(), nil, err.Error())
		return model.DeleteJobResult{}, err
	}

	s.audit.Record(ctx, "job.delete", actor, AuditStatusSuccess, jobResource(id), current.View(), nil, "")
	return model.DeleteJobResult{Message: fmt.Sprintf("Success, job %d has been deleted.", id)}, nil
}

func (s *JobService) authorize(ctx context.Context, actor model.Actor, id int64, action string) (model.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return model.Job{}, err
	}

	if err := AuthorizeMutation(job.OwnerID, actor.User); err != nil {
		s.audit.Record(ctx, action, actor, AuditStatusDenied, jobResource(id), nil, nil, err.Error())
		return model.Job{}, err
	}
	return job, nil
}

func buildPatch(req model.UpdateJobRequest) (model.JobPatch, error) {
	patch := model.JobPatch{
		Title:       nonEmpty(req.Title),
		Company:     nonEmpty(req.Company),
		CompanyURL:  nonEmpty(req.CompanyURL),
		Description: nonEmpty(req.Description),
		Location:    nonEmpty(req.Location),
		IsActive:    req.IsActive,
	}

	if raw := nonEmpty(req.DatePosted); raw != nil {
		date, err := parseDate(*raw)
		if err != nil {
			return model.JobPatch{}, err
		}
		patch.DatePosted = &date
	}

	return patch, nil
}

func nonEmpty(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func parseDate(raw string) (time.Time, error) {
	if date, err := time.Parse(model.DateLayout, raw); err == nil {
		return date, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return truncateToDate(ts), nil
	}
	return time.Time{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "date_posted must be YYYY-MM-DD or RFC3339", raw, http.StatusBadRequest)
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func jobResource(id int64) string {
	return fmt.Sprintf("job:%d", id)
}

