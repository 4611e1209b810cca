// Package session defines the interface for invite session persistence
package session

//go:generate mockgen -destination=mock/mock_repository.go -package=sessionmock github.com/mythostools/investigator-api/internal/repositories/session Repository

import (
	"context"

	"github.com/mythostools/investigator-api/internal/entities/coc"
)

// Repository defines the interface for invite session persistence.
// Sessions are seeded by the administrative surface and read by the
// creation flow; the attempt counter is the only field the flow mutates.
type Repository interface {
	// Create stores a new session and its invite-code mapping
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if the code is taken
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session by ID
	// Returns errors.NotFound if the session doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetByCode retrieves a session by its invite code
	// Returns errors.NotFound if no session holds the code
	GetByCode(ctx context.Context, input GetByCodeInput) (*GetByCodeOutput, error)

	// Update replaces the stored session configuration. The attempt
	// counter is not written through this path.
	// Returns errors.NotFound if the session doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// IncrementAttempts atomically consumes one attempt and returns the
	// new attempts-used count.
	// Returns errors.NotFound if the session doesn't exist
	IncrementAttempts(ctx context.Context, input IncrementAttemptsInput) (*IncrementAttemptsOutput, error)

	// Delete removes a session, its code mapping, and its attempt counter
	// Returns errors.NotFound if the session doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a session
type CreateInput struct {
	Session *coc.Session
}

// CreateOutput defines the output for creating a session
type CreateOutput struct {
	Session *coc.Session
}

// GetInput defines the input for getting a session
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a session
type GetOutput struct {
	Session *coc.Session
}

// GetByCodeInput defines the input for the invite-code lookup
type GetByCodeInput struct {
	Code string
}

// GetByCodeOutput defines the output for the invite-code lookup
type GetByCodeOutput struct {
	Session *coc.Session
}

// UpdateInput defines the input for updating a session
type UpdateInput struct {
	Session *coc.Session
}

// UpdateOutput defines the output for updating a session
type UpdateOutput struct {
	Session *coc.Session
}

// IncrementAttemptsInput defines the input for consuming an attempt
type IncrementAttemptsInput struct {
	SessionID string
}

// IncrementAttemptsOutput defines the output for consuming an attempt
type IncrementAttemptsOutput struct {
	AttemptsUsed int
}

// DeleteInput defines the input for deleting a session
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a session
type DeleteOutput struct{}
