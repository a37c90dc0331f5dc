package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"flexboard/internal/database"
	"flexboard/internal/model"
)

const jobColumns = `id, title, company, company_url, description, location, date_posted, is_active, owner_id`

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func (r *JobRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.pool)
}

func (r *JobRepository) Create(ctx context.Context, job model.Job) (model.Job, error) {
	err := r.q(ctx).QueryRow(ctx,
		`INSERT INTO jobs (title, company, company_url, description, location, date_posted, is_active, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+jobColumns,
		job.Title, job.Company, job.CompanyURL, job.Description,
		job.Location, job.DatePosted, job.IsActive, job.OwnerID).
		Scan(jobScanTargets(&job)...)
	if err != nil {
		return model.Job{}, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id int64) (model.Job, error) {
	var job model.Job
	err := r.q(ctx).QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id).
		Scan(jobScanTargets(&job)...)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Job{}, model.ErrJobNotFound
	}
	if err != nil {
		return model.Job{}, fmt.Errorf("find job: %w", err)
	}
	return job, nil
}

func (r *JobRepository) ListActive(ctx context.Context) ([]model.Job, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.Job, 0)
	for rows.Next() {
		var job model.Job
		if err := rows.Scan(jobScanTargets(&job)...); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Update applies only the non-nil fields of patch in a single statement.
func (r *JobRepository) Update(ctx context.Context, id int64, patch model.JobPatch) (model.Job, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	set := make([]string, 0, 7)
	args := make([]any, 0, 8)
	argIdx := 1

	add := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Company != nil {
		add("company", *patch.Company)
	}
	if patch.CompanyURL != nil {
		add("company_url", *patch.CompanyURL)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.DatePosted != nil {
		add("date_posted", *patch.DatePosted)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}

	query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), argIdx, jobColumns)
	args = append(args, id)

	var job model.Job
	err := r.q(ctx).QueryRow(ctx, query, args...).Scan(jobScanTargets(&job)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Job{}, model.ErrJobNotFound
	}
	if err != nil {
		return model.Job{}, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrJobNotFound
	}
	return nil
}

func jobScanTargets(job *model.Job) []any {
	return []any{
		&job.ID, &job.Title, &job.Company, &job.CompanyURL, &job.Description,
		&job.Location, &job.DatePosted, &job.IsActive, &job.OwnerID,
	}
}
