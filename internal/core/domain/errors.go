package domain

import "errors"

var (
	ErrGuestNotFound      = errors.New("guest not found")
	ErrEpisodeNotFound    = errors.New("episode not found")
	ErrAppearanceNotFound = errors.New("appearance not found")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUser        = errors.New("username and password (min 6 chars) are required")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUnauthorized       = errors.New("unauthorized")
)
