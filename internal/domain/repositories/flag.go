package repositories

import (
	"context"

	"github.com/google/uuid"

	"gadict/internal/domain/models"
)

// FlagQuery describes a flag listing request. Nil filters mean "any".
type FlagQuery struct {
	WordID *uuid.UUID
	Status *models.FlagStatus
	Limit  int
	Offset int
}

// FlagRepository defines data access for word flags. Flags are never
// deleted; they transition once into a terminal state.
type FlagRepository interface {
	// Create inserts a new flag. Returns DuplicateReportError if the
	// reporter already has an OPEN flag on the same word.
	Create(ctx context.Context, flag *models.Flag) error

	// GetByID retrieves a flag by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Flag, error)

	// GetByIDForUpdate retrieves a flag by ID with a row lock. Must run
	// inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Flag, error)

	// HasOpenFlag reports whether the reporter has an OPEN flag on the word.
	HasOpenFlag(ctx context.Context, wordID, reporterID uuid.UUID) (bool, error)

	// UpdateResolution writes the status, resolver bookkeeping and updated_at.
	UpdateResolution(ctx context.Context, flag *models.Flag) error

	// List retrieves flags matching the query, newest first, plus the
	// total match count.
	List(ctx context.Context, q FlagQuery) ([]models.Flag, int, error)

	// CountByStatus counts flags in the given status.
	CountByStatus(ctx context.Context, status models.FlagStatus) (int, error)
}
