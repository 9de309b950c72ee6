package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidLimit  = errors.New("invalid leaderboard limit")
	ErrAlreadyExists = errors.New("screening already exists")
	ErrInvalidEntry  = errors.New("invalid talent pool entry")
)
