// Package storagetest provides an in-memory storage.Storage for handler
// tests.
package storagetest

import (
	"context"
	"sync"

	"github.com/aanand-mishra/hackathon-api/internal/types"
)

// Store keeps rows in memory. Setting CreateErr or ListErr makes the
// matching calls fail.
type Store struct {
	mu            sync.Mutex
	Registrations []types.Registration
	Submissions   []types.Submission

	CreateErr error
	ListErr   error
}

func (s *Store) CreateRegistration(_ context.Context, r types.Registration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return 0, s.CreateErr
	}
	r.ID = int64(len(s.Registrations) + 1)
	s.Registrations = append(s.Registrations, r)
	return r.ID, nil
}

func (s *Store) CreateSubmission(_ context.Context, sub types.Submission) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return 0, s.CreateErr
	}
	sub.ID = int64(len(s.Submissions) + 1)
	s.Submissions = append(s.Submissions, sub)
	return sub.ID, nil
}

// ListSubmissions returns the submissions newest first.
func (s *Store) ListSubmissions(context.Context) ([]types.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	out := make([]types.Submission, 0, len(s.Submissions))
	for i := len(s.Submissions) - 1; i >= 0; i-- {
		out = append(out, s.Submissions[i])
	}
	return out, nil
}

// SavedRegistrations returns a copy of the stored registrations.
func (s *Store) SavedRegistrations() []types.Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Registration(nil), s.Registrations...)
}
