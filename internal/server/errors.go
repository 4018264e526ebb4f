package server

import (
	"fmt"
	"net/http"
)

// ErrUsernameExists indicates the username is already registered.
type ErrUsernameExists struct {
	Username string
}

func (e *ErrUsernameExists) Error() string {
	return fmt.Sprintf("username already exists: %s", e.Username)
}

// ErrEmailAlreadyExists indicates the email is already registered. The
// email itself is deliberately not carried on the error.
type ErrEmailAlreadyExists struct{}

func (e *ErrEmailAlreadyExists) Error() string {
	return "email already registered"
}

// ErrInvalidCredentials indicates invalid login credentials.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid username or password"
}

// ErrUserNotFound indicates the user was not found.
type ErrUserNotFound struct {
	UserID string
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrUsernameExists, *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
