// Package types provides type definitions for structured data used throughout the talent-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// RegisterRequest represents the request to register a new account.
// Usernames are 3-20 characters, alphanumeric plus underscore.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20,alphanumunderscore"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LinkProfileRequest links an account to a candidate profile.
type LinkProfileRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	CandidateID string `json:"candidate_id" validate:"required"`
}

// User represents an account for API responses. The email is stored
// encrypted and only decrypted for responses; password material never
// leaves the store layer.
type User struct {
	UserID             string `json:"user_id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	CreatedAt          string `json:"created_at,omitempty"`
	LastLogin          string `json:"last_login,omitempty"`
	IsActive           bool   `json:"is_active"`
	CandidateProfileID string `json:"candidate_profile_id,omitempty"`
}

// LoginResponse carries the authenticated user and a signed JWT.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// validator has no built-in for the username charset; register one.
	_ = v.RegisterValidation("alphanumunderscore", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			switch {
			case r >= 'a' && r <= 'z':
			case r >= 'A' && r <= 'Z':
			case r >= '0' && r <= '9':
			case r == '_':
			default:
				return false
			}
		}
		return true
	})
	return v
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the LinkProfileRequest using the validator.
func (r *LinkProfileRequest) Validate() error {
	return validate.Struct(r)
}
