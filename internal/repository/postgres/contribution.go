package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"gadict/internal/domain"
	"gadict/internal/domain/models"
	"gadict/internal/domain/repositories"
)

const contributionColumns = `id, word_id, user_id, type, status, proposed_data,
		original_data, review_notes, reviewed_by, reviewed_at, created_at, updated_at`

// PostgresContributionRepository implements the ContributionRepository interface
type PostgresContributionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewContributionRepository creates a new contribution repository
func NewContributionRepository(config *RepositoryConfig) repositories.ContributionRepository {
	return &PostgresContributionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new contribution
func (r *PostgresContributionRepository) Create(ctx context.Context, c *models.Contribution) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, r.tables.Contributions, contributionColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		c.ID,
		c.WordID,
		c.UserID,
		c.Type,
		c.Status,
		c.ProposedData,
		c.OriginalData,
		c.ReviewNotes,
		c.ReviewedBy,
		c.ReviewedAt,
		c.CreatedAt,
		c.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("create contribution: %w", err)
	}

	return nil
}

// GetByID retrieves a contribution by ID
func (r *PostgresContributionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Contribution, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, contributionColumns, r.tables.Contributions)
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate retrieves a contribution by ID with a row lock.
// The lock spans the status re-check through the transition write, so of
// two concurrent reviewers exactly one sees PENDING.
func (r *PostgresContributionRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Contribution, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, contributionColumns, r.tables.Contributions)
	return r.getOne(ctx, query, id)
}

func (r *PostgresContributionRepository) getOne(ctx context.Context, query string, id uuid.UUID) (*models.Contribution, error) {
	var c models.Contribution
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.WordID,
		&c.UserID,
		&c.Type,
		&c.Status,
		&c.ProposedData,
		&c.OriginalData,
		&c.ReviewNotes,
		&c.ReviewedBy,
		&c.ReviewedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("contribution %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get contribution: %w", err)
	}

	return &c, nil
}

// UpdateReview writes the status, reviewer bookkeeping and updated_at
func (r *PostgresContributionRepository) UpdateReview(ctx context.Context, c *models.Contribution) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, review_notes = $2, reviewed_by = $3, reviewed_at = $4, updated_at = $5
		WHERE id = $6
	`, r.tables.Contributions)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		c.Status,
		c.ReviewNotes,
		c.ReviewedBy,
		c.ReviewedAt,
		c.UpdatedAt,
		c.ID,
	)

	if err != nil {
		return fmt.Errorf("update contribution review: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("contribution %s: %w", c.ID, domain.ErrNotFound)
	}

	return nil
}

// List retrieves contributions matching the query, newest first
func (r *PostgresContributionRepository) List(ctx context.Context, q repositories.ContributionQuery) ([]models.Contribution, int, error) {
	where := "TRUE"
	args := []interface{}{}

	if q.UserID != nil {
		args = append(args, *q.UserID)
		where += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if q.Status != nil {
		args = append(args, *q.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if q.Type != nil {
		args = append(args, *q.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}

	executor := GetExecutor(ctx, r.pool)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, r.tables.Contributions, where)
	var total int
	if err := executor.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contributions: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, q.Offset)
	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, contributionColumns, r.tables.Contributions, where, len(args)-1, len(args))

	rows, err := executor.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var contributions []models.Contribution
	for rows.Next() {
		var c models.Contribution
		err := rows.Scan(
			&c.ID,
			&c.WordID,
			&c.UserID,
			&c.Type,
			&c.Status,
			&c.ProposedData,
			&c.OriginalData,
			&c.ReviewNotes,
			&c.ReviewedBy,
			&c.ReviewedAt,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contribution: %w", err)
		}
		contributions = append(contributions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate contributions: %w", err)
	}

	if contributions == nil {
		contributions = []models.Contribution{}
	}

	return contributions, total, nil
}

// CountByStatus counts contributions in the given status
func (r *PostgresContributionRepository) CountByStatus(ctx context.Context, status models.ContributionStatus) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE status = $1`, r.tables.Contributions)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count contributions: %w", err)
	}

	return count, nil
}
