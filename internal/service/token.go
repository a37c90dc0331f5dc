package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"flexboard/internal/model"
)

// TokenService issues and verifies stateless HMAC-signed access tokens whose
// subject is the user's email.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

func NewTokenService(secret string, algorithm string) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token secret is required")
	}

	method, ok := jwt.GetSigningMethod(strings.ToUpper(strings.TrimSpace(algorithm))).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported token algorithm %q", algorithm)
	}

	return &TokenService{secret: []byte(secret), method: method, now: time.Now}, nil
}

// SetClock replaces the time source used for issuing and validating tokens.
func (s *TokenService) SetClock(now func() time.Time) {
	s.now = now
}

// Issue signs a token for subject expiring at now+ttl.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)

	token := jwt.NewWithClaims(s.method, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry and returns the subject.
// Failures are model.ErrExpiredToken or model.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %w", model.ErrExpiredToken, err)
		}
		return "", fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", model.ErrInvalidToken
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", fmt.Errorf("%w: missing subject", model.ErrInvalidToken)
	}
	return subject, nil
}
