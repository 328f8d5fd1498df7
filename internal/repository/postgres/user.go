package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"gadict/internal/domain"
	"gadict/internal/domain/models"
	"gadict/internal/domain/repositories"
)

const userColumns = `id, email, name, role, contribution_count, approval_count,
		reputation, last_active, created_at, updated_at`

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, userColumns, r.tables.Users)

	var user models.User
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.ContributionCount,
		&user.ApprovalCount,
		&user.Reputation,
		&user.LastActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// IncrementContributionCount bumps contributionCount and refreshes lastActive
func (r *PostgresUserRepository) IncrementContributionCount(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET contribution_count = contribution_count + 1, last_active = NOW(), updated_at = NOW()
		WHERE id = $1
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment contribution count: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ApplyApproval applies the approval bookkeeping and returns the updated
// user. The increments mirror domain.ApplyApproval.
func (r *PostgresUserRepository) ApplyApproval(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET approval_count = approval_count + 1, reputation = reputation + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING %s
	`, r.tables.Users, userColumns)

	var user models.User
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, domain.ReputationPerApproval, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.ContributionCount,
		&user.ApprovalCount,
		&user.Reputation,
		&user.LastActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("apply approval: %w", err)
	}

	return &user, nil
}

// CountActiveContributors counts users with at least one contribution
// active since the given time
func (r *PostgresUserRepository) CountActiveContributors(ctx context.Context, activeSince time.Time) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s
		WHERE contribution_count > 0 AND last_active >= $1
	`, r.tables.Users)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, activeSince).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active contributors: %w", err)
	}

	return count, nil
}
