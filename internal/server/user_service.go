package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marcus/talent-match/internal/config"
	"github.com/marcus/talent-match/internal/secrets"
	"github.com/marcus/talent-match/internal/store"
	"github.com/marcus/talent-match/internal/types"
)

// UserService provides business logic for account operations: emails
// are encrypted before they reach the store and decrypted on the way
// out; passwords are hashed and never stored in any other form.
type UserService struct {
	users          store.UserStore
	passwordConfig *config.PasswordConfig
	cipher         *secrets.Cipher
	now            func() time.Time
}

// NewUserService creates a new UserService with the given dependencies.
func NewUserService(users store.UserStore, passwordConfig *config.PasswordConfig, cipher *secrets.Cipher) *UserService {
	return &UserService{
		users:          users,
		passwordConfig: passwordConfig,
		cipher:         cipher,
		now:            time.Now,
	}
}

// toUser converts a store record to the API shape, decrypting the email.
// Password material never leaves this layer.
func (s *UserService) toUser(record *store.UserRecord) (*types.User, error) {
	email, err := s.cipher.Decrypt(record.EmailEncrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt email for %s: %w", record.UserID, err)
	}
	return &types.User{
		UserID:             record.UserID,
		Username:           record.Username,
		Email:              email,
		CreatedAt:          record.CreatedAt,
		LastLogin:          record.LastLogin,
		IsActive:           record.IsActive,
		CandidateProfileID: record.CandidateProfileID,
	}, nil
}

// Register creates a new account with an encrypted email and a hashed
// password.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	if err := req.Validate(); err != nil {
		return nil, &ErrValidation{Message: err.Error()}
	}

	if _, err := s.users.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, &ErrUsernameExists{Username: req.Username}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	taken, err := s.emailTaken(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &ErrEmailAlreadyExists{}
	}

	userID, err := store.NewUserID(s.now())
	if err != nil {
		return nil, err
	}
	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	emailEncrypted, err := s.cipher.Encrypt(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt email: %w", err)
	}

	record := &store.UserRecord{
		UserID:         userID,
		Username:       req.Username,
		EmailEncrypted: emailEncrypted,
		PasswordHash:   passwordHash,
		CreatedAt:      s.now().Format(time.RFC3339),
		IsActive:       true,
	}
	if err := s.users.CreateUser(ctx, record); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return nil, &ErrUsernameExists{Username: req.Username}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.toUser(record)
}

// emailTaken reports whether any existing account decrypts to the given
// email. Ciphertexts are randomized, so this is a scan, not a lookup;
// rows that fail to decrypt are skipped.
func (s *UserService) emailTaken(ctx context.Context, email string) (bool, error) {
	records, err := s.users.ListUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list users: %w", err)
	}
	for _, record := range records {
		existing, err := s.cipher.Decrypt(record.EmailEncrypted)
		if err != nil {
			continue
		}
		if existing == email {
			return true, nil
		}
	}
	return false, nil
}

// Login authenticates an account and records the login time.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	if err := req.Validate(); err != nil {
		return nil, &ErrValidation{Message: err.Error()}
	}

	record, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Generic error: do not reveal whether the username exists.
			return nil, &ErrInvalidCredentials{}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.passwordConfig.VerifyPassword(req.Password, record.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	if !record.IsActive {
		return nil, &ErrInvalidCredentials{}
	}

	lastLogin := s.now().Format(time.RFC3339)
	if err := s.users.UpdateLastLogin(ctx, record.UserID, lastLogin); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	record.LastLogin = lastLogin

	return s.toUser(record)
}

// GetUser returns an account by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*types.User, error) {
	record, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &ErrUserNotFound{UserID: userID}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return s.toUser(record)
}

// LinkProfile ties an account to a candidate profile.
func (s *UserService) LinkProfile(ctx context.Context, req *types.LinkProfileRequest) error {
	if err := req.Validate(); err != nil {
		return &ErrValidation{Message: err.Error()}
	}
	if err := s.users.LinkProfile(ctx, req.UserID, req.CandidateID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &ErrUserNotFound{UserID: req.UserID}
		}
		return fmt.Errorf("failed to link profile: %w", err)
	}
	return nil
}
