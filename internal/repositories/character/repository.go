// Package character defines the interface for finished character persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/mythostools/investigator-api/internal/repositories/character Repository

import (
	"context"

	"github.com/mythostools/investigator-api/internal/entities/coc"
)

// Repository defines the interface for finished character persistence.
// A session owns at most one character; submitting replaces any prior one.
type Repository interface {
	// Submit atomically replaces the session's character and consumes one
	// attempt. A failure partway must leave neither two characters on the
	// session nor an incremented counter without a stored character.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Submit(ctx context.Context, input SubmitInput) (*SubmitOutput, error)

	// Get retrieves a character by ID
	// Returns errors.NotFound if the character doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetBySessionID retrieves the session's character
	// Returns errors.NotFound if the session has no character
	GetBySessionID(ctx context.Context, input GetBySessionIDInput) (*GetBySessionIDOutput, error)

	// Delete removes a character and its session mapping
	// Returns errors.NotFound if the character doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// SubmitInput defines the input for submitting a character
type SubmitInput struct {
	Character *coc.Character
}

// SubmitOutput defines the output for submitting a character
type SubmitOutput struct {
	Character *coc.Character

	// AttemptsUsed is the session's counter after the submit
	AttemptsUsed int
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *coc.Character
}

// GetBySessionIDInput defines the input for getting a session's character
type GetBySessionIDInput struct {
	SessionID string
}

// GetBySessionIDOutput defines the output for getting a session's character
type GetBySessionIDOutput struct {
	Character *coc.Character
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct{}
