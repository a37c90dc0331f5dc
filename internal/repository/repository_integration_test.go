//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flexboard/internal/database"
	"flexboard/internal/model"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, database.MigrateUp(url))

	ctx := context.Background()
	db, err := database.New(ctx, url, 4, 0)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.Pool.Exec(ctx, `TRUNCATE audit_entries, jobs, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, repo *UserRepository, name string) model.User {
	t.Helper()

	user, err := repo.Create(context.Background(), model.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "{bcrypt}$2a$04$placeholder",
		IsActive:     true,
	})
	require.NoError(t, err)
	return user
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db.Pool)
	ctx := context.Background()

	ann := createUser(t, repo, "ann")
	assert.Positive(t, ann.ID)
	assert.False(t, ann.CreatedAt.IsZero())

	byName, err := repo.FindByUsernameOrEmail(ctx, "ann")
	require.NoError(t, err)
	byEmail, err := repo.FindByUsernameOrEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, byName.ID)
	assert.Equal(t, ann.ID, byEmail.ID)
	assert.Equal(t, "{bcrypt}$2a$04$placeholder", byName.PasswordHash)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	_, err = repo.Create(ctx, model.User{Username: "ann", Email: "other@example.com", PasswordHash: "x", IsActive: true})
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)
}

func TestJobRepository(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db.Pool)
	repo := NewJobRepository(db.Pool)
	ctx := context.Background()

	owner := createUser(t, users, "owner")
	posted := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, model.Job{
		Title: "Go developer", Company: "Acme", CompanyURL: "https://acme.test", Description: "APIs",
		Location: "Remote", DatePosted: posted, IsActive: true, OwnerID: owner.ID,
	})
	require.NoError(t, err)
	second, err := repo.Create(ctx, model.Job{
		Title: "SRE", Company: "Acme", CompanyURL: "https://acme.test", Description: "Ops",
		Location: "Riga", DatePosted: posted, IsActive: false, OwnerID: owner.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-02-03", first.DatePosted.Format(model.DateLayout))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, first.ID, active[0].ID)

	title := "Senior Go developer"
	updated, err := repo.Update(ctx, first.ID, model.JobPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "Remote", updated.Location)

	unchanged, err := repo.Update(ctx, first.ID, model.JobPatch{})
	require.NoError(t, err)
	assert.Equal(t, updated, unchanged)

	activate := true
	_, err = repo.Update(ctx, second.ID, model.JobPatch{IsActive: &activate})
	require.NoError(t, err)
	active, err = repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, model.ErrJobNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), model.ErrJobNotFound)
	_, err = repo.Update(ctx, first.ID, model.JobPatch{Title: &title})
	assert.ErrorIs(t, err, model.ErrJobNotFound)
}

func TestRepositoriesUseScopedConnection(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db.Pool)

	ctx, release, err := db.Scope(context.Background())
	require.NoError(t, err)

	created, err := users.Create(ctx, model.User{Username: "scoped", Email: "scoped@example.com", PasswordHash: "x", IsActive: true})
	require.NoError(t, err)
	found, err := users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "scoped", found.Username)

	assert.Equal(t, int32(1), db.Pool.Stat().AcquiredConns())
	release()
	assert.Equal(t, int32(0), db.Pool.Stat().AcquiredConns())
}

func TestAuditRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuditRepository(db.Pool)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	for i, action := range []string{"job.create", "job.update", "job.delete"} {
		require.NoError(t, repo.Log(ctx, model.AuditEntry{
			Action:     action,
			OccurredAt: base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339Nano),
			Actor:      model.AuditActor{UserID: int64(i + 1), Username: "ann", IP: "10.0.0.1"},
			Status:     "success",
			Resource:   "job:1",
			After:      map[string]any{"title": "Go developer"},
		}))
	}

	entries, meta, err := repo.Query(ctx, model.AuditQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
	require.Len(t, entries, 2)
	assert.Equal(t, "job.delete", entries[0].Action)
	assert.Equal(t, map[string]any{"title": "Go developer"}, entries[0].After)

	entries, _, err = repo.Query(ctx, model.AuditQuery{Action: "JOB.UPDATE", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].Actor.UserID)

	entries, _, err = repo.Query(ctx, model.AuditQuery{ActorID: 1, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "job.create", entries[0].Action)
}
