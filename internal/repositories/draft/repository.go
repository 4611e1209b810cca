// Package draft defines the interface for creation draft persistence
package draft

//go:generate mockgen -destination=mock/mock_repository.go -package=draftmock github.com/mythostools/investigator-api/internal/repositories/draft Repository

import (
	"context"

	"github.com/mythostools/investigator-api/internal/entities/coc"
)

// Repository defines the interface for creation draft persistence.
// Implements a single-draft-per-session pattern: resuming a session
// always finds at most one in-flight draft.
type Repository interface {
	// Create creates or replaces a session's draft
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a draft by ID
	// Returns errors.NotFound if the draft doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetBySessionID retrieves the session's single draft
	// Returns errors.NotFound if the session has no draft
	GetBySessionID(ctx context.Context, input GetBySessionIDInput) (*GetBySessionIDOutput, error)

	// Update updates an existing draft
	// Returns errors.NotFound if the draft doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete deletes a draft and its session mapping
	// Returns errors.NotFound if the draft doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a draft
type CreateInput struct {
	Draft *coc.Draft
}

// CreateOutput defines the output for creating a draft
type CreateOutput struct {
	Draft *coc.Draft
}

// GetInput defines the input for getting a draft
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a draft
type GetOutput struct {
	Draft *coc.Draft
}

// GetBySessionIDInput defines the input for getting a session's draft
type GetBySessionIDInput struct {
	SessionID string
}

// GetBySessionIDOutput defines the output for getting a session's draft
type GetBySessionIDOutput struct {
	Draft *coc.Draft
}

// UpdateInput defines the input for updating a draft
type UpdateInput struct {
	Draft *coc.Draft
}

// UpdateOutput defines the output for updating a draft
type UpdateOutput struct {
	Draft *coc.Draft
}

// DeleteInput defines the input for deleting a draft
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a draft
type DeleteOutput struct{}
