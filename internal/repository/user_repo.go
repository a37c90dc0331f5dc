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

const userColumns = `id, username, email, hashed_password, is_active, is_superuser, created_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.pool)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.TrimSpace(email))
}

// FindByUsernameOrEmail matches the value exactly against either column and
// returns the first row.
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (model.User, error) {
	return r.findOne(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE username = $1 OR email = $1
		 ORDER BY id
		 LIMIT 1`, strings.TrimSpace(usernameOrEmail))
}

func (r *UserRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	err := r.q(ctx).QueryRow(ctx,
		`INSERT INTO users (username, email, hashed_password, is_active, is_superuser)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.Username, u.Email, u.PasswordHash, u.IsActive, u.IsSuperuser).
		Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err) {
		return model.User{}, model.ErrUserAlreadyExists
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	err := r.q(ctx).QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsSuperuser, &u.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}
