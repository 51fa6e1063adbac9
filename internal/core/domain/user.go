package domain

import "time"

// User is an account allowed to obtain bearer tokens.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Identity is what a verified bearer token carries.
type Identity struct {
	UserID   int64
	Username string
}
