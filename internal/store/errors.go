package store

import "errors"

// Sentinel errors shared by both backends.
var (
	ErrNotFound      = errors.New("store: record not found")
	ErrUsernameTaken = errors.New("store: username already exists")
)
