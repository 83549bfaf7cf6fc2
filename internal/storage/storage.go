// Package storage defines the Storage interface, the contract any record
// store must satisfy to back the registration and submission forms.
//
// Handlers and forms only know this interface. The SQLite implementation
// lives in storage/sqlite; tests pass small fakes.
//
// Records are append-only; there is no update or delete.
package storage

import (
	"context"

	"github.com/aanand-mishra/hackathon-api/internal/types"
)

type Storage interface {
	// CreateRegistration inserts a registration and returns its id.
	CreateRegistration(ctx context.Context, r types.Registration) (int64, error)

	// CreateSubmission inserts a project submission and returns its id.
	CreateSubmission(ctx context.Context, s types.Submission) (int64, error)

	// ListSubmissions returns every submission, newest SubmittedAt first.
	// Returns an empty slice (not nil) if there are none.
	ListSubmissions(ctx context.Context) ([]types.Submission, error)
}
