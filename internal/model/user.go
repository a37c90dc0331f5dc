package model

import "time"

// User is the stored identity. PasswordHash holds the tagged composite value
// ("{bcrypt}<hash>") and is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserView is the public representation returned by the API.
type UserView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func (u User) View() UserView {
	return UserView{ID: u.ID, Username: u.Username, Email: u.Email, IsActive: u.IsActive}
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Actor is the authenticated caller of a mutating operation.
type Actor struct {
	User User
	IP   string
}
