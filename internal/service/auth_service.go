package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"flexboard/internal/model"
)

type UserStore interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}

// AuthService turns credentials into tokens (Login) and tokens back into
// users (Authenticate).
type AuthService struct {
	users     UserStore
	passwords *PasswordHasher
	tokens    *TokenService
	accessTTL time.Duration

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users UserStore, passwords *PasswordHasher, tokens *TokenService, accessTTL time.Duration) *AuthService {
	return &AuthService{users: users, passwords: passwords, tokens: tokens, accessTTL: accessTTL}
}

// Login accepts either a username or an email. It fails with
// model.ErrUserNotFound or model.ErrInvalidCredentials; callers that face
// clients should not tell the two apart.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail string, password string) (model.Token, error) {
	user, err := s.users.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.burnVerify(password)
		}
		return model.Token{}, err
	}

	ok, err := s.passwords.Verify(password, ExtractHash(user.PasswordHash))
	if err != nil {
		return model.Token{}, fmt.Errorf("verify password for user %d: %w", user.ID, err)
	}
	if !ok || !user.IsActive {
		return model.Token{}, model.ErrInvalidCredentials
	}

	accessToken, _, err := s.tokens.Issue(user.Email, s.accessTTL)
	if err != nil {
		return model.Token{}, err
	}

	return model.Token{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}

// burnVerify spends one bcrypt comparison so an unknown account costs the
// same wall time as a wrong password.
func (s *AuthService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.passwords.Hash("flexboard-unknown-account")
	})
	_, _ = s.passwords.Verify(password, s.dummyHash)
}

// Authenticate resolves a bearer token to an active user. Every failure,
// whether a bad token or a vanished user, is reported as model.ErrUnauthorized
// with the cause wrapped for logging.
func (s *AuthService) Authenticate(ctx context.Context, token string) (model.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %w", model.ErrUnauthorized, err)
	}

	user, err := s.users.FindByEmail(ctx, subject)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, fmt.Errorf("%w: %w", model.ErrUnauthorized, err)
	}
	if err != nil {
		return model.User{}, err
	}

	if !user.IsActive {
		return model.User{}, fmt.Errorf("%w: user %d is inactive", model.ErrUnauthorized, user.ID)
	}

	return user, nil
}
