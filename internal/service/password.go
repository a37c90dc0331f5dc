package service

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"flexboard/internal/model"
)

// bcryptTag prefixes stored hashes so the algorithm can be identified later.
const bcryptTag = "{bcrypt}"

type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns a fresh salted bcrypt hash; two calls never return the same value.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A mismatch is (false, nil);
// a hash bcrypt cannot parse is an error wrapping model.ErrMalformedHash.
func (h *PasswordHasher) Verify(plaintext string, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", model.ErrMalformedHash, err)
	}
}

func EncodeStoredHash(hash string) string {
	return bcryptTag + hash
}

// ExtractHash returns the algorithm-specific segment of a stored value, i.e.
// everything after the closing brace of the tag. Untagged values pass through.
func ExtractHash(stored string) string {
	if strings.HasPrefix(stored, "{") {
		if idx := strings.Index(stored, "}"); idx >= 0 {
			return stored[idx+1:]
		}
	}
	return stored
}
