package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flexboard/internal/model"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (model.User, error) {
	args := m.Called(ctx, usernameOrEmail)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(model.User), args.Error(1)
}

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, job model.Job) (model.Job, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(model.Job), args.Error(1)
}

func (m *MockJobRepository) FindByID(ctx context.Context, id int64) (model.Job, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Job), args.Error(1)
}

func (m *MockJobRepository) ListActive(ctx context.Context) ([]model.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Job), args.Error(1)
}

func (m *MockJobRepository) Update(ctx context.Context, id int64, patch model.JobPatch) (model.Job, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.Job), args.Error(1)
}

func (m *MockJobRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Log(ctx context.Context, entry model.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Get(1).(model.Meta), args.Error(2)
	}
	return args.Get(0).([]model.AuditEntry), args.Get(1).(model.Meta), args.Error(2)
}
