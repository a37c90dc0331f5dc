package service

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"flexboard/internal/model"
	"flexboard/pkg/apierror"
)

const maxUsernameLength = 30

type UserService struct {
	users     UserStore
	passwords *PasswordHasher
}

func NewUserService(users UserStore, passwords *PasswordHasher) *UserService {
	return &UserService{users: users, passwords: passwords}
}

// Register validates and stores a new user. Only administrative callers pass
// superuser=true; the HTTP surface always registers regular users.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest, superuser bool) (model.UserView, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" || utf8.RuneCountInString(username) > maxUsernameLength {
		return model.UserView{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "username must be 1 to 30 characters", "username", http.StatusBadRequest)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return model.UserView{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "email is not a valid address", "email", http.StatusBadRequest)
	}

	if req.Password == "" {
		return model.UserView{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "password is required", "password", http.StatusBadRequest)
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return model.UserView{}, err
	}

	user, err := s.users.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: EncodeStoredHash(hash),
		IsActive:     true,
		IsSuperuser:  superuser,
	})
	if err != nil {
		return model.UserView{}, err
	}

	return user.View(), nil
}
