// Package store persists candidates, job postings, and user accounts.
// Two backends exist: a Google Sheets store matching the spreadsheet
// layout the platform launched with, and a PostgreSQL store for
// deployments that outgrew it.
package store

import (
	"context"

	"github.com/marcus/talent-match/internal/types"
)

// UserRecord is the stored shape of an account. The email is encrypted
// at rest; decryption happens in the account service, never here.
type UserRecord struct {
	UserID             string
	Username           string
	EmailEncrypted     string
	PasswordHash       string
	CreatedAt          string
	LastLogin          string
	IsActive           bool
	CandidateProfileID string
}

// CandidateStore persists candidate profiles.
type CandidateStore interface {
	AddCandidate(ctx context.Context, candidate *types.CandidateProfile) error
	GetCandidate(ctx context.Context, candidateID string) (*types.CandidateProfile, error)
	ListCandidates(ctx context.Context) ([]*types.CandidateProfile, error)
}

// JobStore persists job postings.
type JobStore interface {
	AddJob(ctx context.Context, job *types.JobPosting) error
	GetJob(ctx context.Context, jobID string) (*types.JobPosting, error)
	ListJobs(ctx context.Context) ([]*types.JobPosting, error)
}

// UserStore persists user accounts. Uniqueness of usernames is enforced
// here; email uniqueness cannot be (ciphertexts are not comparable), so
// the account service checks it by decrypting ListUsers output.
type UserStore interface {
	CreateUser(ctx context.Context, user *UserRecord) error
	GetUserByUsername(ctx context.Context, username string) (*UserRecord, error)
	GetUserByID(ctx context.Context, userID string) (*UserRecord, error)
	ListUsers(ctx context.Context) ([]*UserRecord, error)
	UpdateLastLogin(ctx context.Context, userID, lastLogin string) error
	LinkProfile(ctx context.Context, userID, candidateID string) error
}

// Store is the full persistence surface the server wires up.
type Store interface {
	CandidateStore
	JobStore
	UserStore

	Close()
}
