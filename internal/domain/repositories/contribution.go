package repositories

import (
	"context"

	"github.com/google/uuid"

	"gadict/internal/domain/models"
)

// ContributionQuery describes a contribution listing request. Nil filters
// mean "any".
type ContributionQuery struct {
	UserID *uuid.UUID
	Status *models.ContributionStatus
	Type   *models.ContributionType
	Limit  int
	Offset int
}

// ContributionRepository defines data access for contributions.
// Contributions are append-and-transition only; they are never deleted.
type ContributionRepository interface {
	// Create inserts a new contribution.
	Create(ctx context.Context, contribution *models.Contribution) error

	// GetByID retrieves a contribution by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contribution, error)

	// GetByIDForUpdate retrieves a contribution by ID with a row lock,
	// so a status re-check and the subsequent transition are serialized
	// against concurrent reviewers. Must run inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Contribution, error)

	// UpdateReview writes the status, reviewer bookkeeping and updated_at.
	UpdateReview(ctx context.Context, contribution *models.Contribution) error

	// List retrieves contributions matching the query, newest first, plus
	// the total match count.
	List(ctx context.Context, q ContributionQuery) ([]models.Contribution, int, error)

	// CountByStatus counts contributions in the given status.
	CountByStatus(ctx context.Context, status models.ContributionStatus) (int, error)
}
