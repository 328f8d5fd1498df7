package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gadict/internal/domain/models"
)

// UserRepository defines the account operations the moderation core
// performs. The engines only ever mutate users additively.
type UserRepository interface {
	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// IncrementContributionCount bumps contributionCount by one and
	// refreshes lastActive.
	IncrementContributionCount(ctx context.Context, id uuid.UUID) error

	// ApplyApproval applies the approval bookkeeping (approvalCount +1,
	// reputation + the fixed award) and returns the updated user. Runs
	// inside the review transaction.
	ApplyApproval(ctx context.Context, id uuid.UUID) (*models.User, error)

	// CountActiveContributors counts users with at least one contribution
	// whose lastActive is at or after the given time.
	CountActiveContributors(ctx context.Context, activeSince time.Time) (int, error)
}
