package server

import (
	"context"
	"sync"

	"github.com/marcus/talent-match/internal/store"
	"github.com/marcus/talent-match/internal/types"
)

// fakeStore is an in-memory store.Store for handler tests.
type fakeStore struct {
	mu         sync.Mutex
	candidates []*types.CandidateProfile
	jobs       []*types.JobPosting
	users      []*store.UserRecord

	listCandidatesErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) AddCandidate(ctx context.Context, candidate *types.CandidateProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.candidates = append(f.candidates, candidate)
	return nil
}

func (f *fakeStore) GetCandidate(ctx context.Context, candidateID string) (*types.CandidateProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.candidates {
		if c.CandidateID == candidateID {
			return c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListCandidates(ctx context.Context) ([]*types.CandidateProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listCandidatesErr != nil {
		return nil, f.listCandidatesErr
	}
	out := make([]*types.CandidateProfile, len(f.candidates))
	copy(out, f.candidates)
	return out, nil
}

func (f *fakeStore) AddJob(ctx context.Context, job *types.JobPosting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeStore) GetJob(ctx context.Context, jobID string) (*types.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jobs {
		if j.JobID == jobID {
			return j, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListJobs(ctx context.Context) ([]*types.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.JobPosting, len(f.jobs))
	copy(out, f.jobs)
	return out, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, user *store.UserRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return store.ErrUsernameTaken
		}
	}
	clone := *user
	f.users = append(f.users, &clone)
	return nil
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*store.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetUserByID(ctx context.Context, userID string) (*store.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.UserID == userID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]*store.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*store.UserRecord, 0, len(f.users))
	for _, u := range f.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeStore) UpdateLastLogin(ctx context.Context, userID, lastLogin string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.UserID == userID {
			u.LastLogin = lastLogin
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) LinkProfile(ctx context.Context, userID, candidateID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.UserID == userID {
			u.CandidateProfileID = candidateID
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) Close() {}
