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

const flagColumns = `id, word_id, user_id, reason, description, status,
		resolution, resolved_by, resolved_at, created_at, updated_at`

// PostgresFlagRepository implements the FlagRepository interface
type PostgresFlagRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFlagRepository creates a new flag repository
func NewFlagRepository(config *RepositoryConfig) repositories.FlagRepository {
	return &PostgresFlagRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new flag. A partial unique index on (word_id, user_id)
// WHERE status = 'OPEN' backs the one-open-flag-per-reporter invariant
// even under concurrent reports.
func (r *PostgresFlagRepository) Create(ctx context.Context, f *models.Flag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.tables.Flags, flagColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		f.ID,
		f.WordID,
		f.UserID,
		f.Reason,
		f.Description,
		f.Status,
		f.Resolution,
		f.ResolvedBy,
		f.ResolvedAt,
		f.CreatedAt,
		f.UpdatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.DuplicateReportError{WordID: f.WordID}
		}
		return fmt.Errorf("create flag: %w", err)
	}

	return nil
}

// GetByID retrieves a flag by ID
func (r *PostgresFlagRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Flag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, flagColumns, r.tables.Flags)
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate retrieves a flag by ID with a row lock
func (r *PostgresFlagRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Flag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, flagColumns, r.tables.Flags)
	return r.getOne(ctx, query, id)
}

func (r *PostgresFlagRepository) getOne(ctx context.Context, query string, id uuid.UUID) (*models.Flag, error) {
	var f models.Flag
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&f.ID,
		&f.WordID,
		&f.UserID,
		&f.Reason,
		&f.Description,
		&f.Status,
		&f.Resolution,
		&f.ResolvedBy,
		&f.ResolvedAt,
		&f.CreatedAt,
		&f.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("flag %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get flag: %w", err)
	}

	return &f, nil
}

// HasOpenFlag reports whether the reporter has an OPEN flag on the word
func (r *PostgresFlagRepository) HasOpenFlag(ctx context.Context, wordID, reporterID uuid.UUID) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE word_id = $1 AND user_id = $2 AND status = $3
		)
	`, r.tables.Flags)

	var exists bool
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, wordID, reporterID, models.FlagOpen).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check open flag: %w", err)
	}

	return exists, nil
}

// UpdateResolution writes the status, resolver bookkeeping and updated_at
func (r *PostgresFlagRepository) UpdateResolution(ctx context.Context, f *models.Flag) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, resolution = $2, resolved_by = $3, resolved_at = $4, updated_at = $5
		WHERE id = $6
	`, r.tables.Flags)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		f.Status,
		f.Resolution,
		f.ResolvedBy,
		f.ResolvedAt,
		f.UpdatedAt,
		f.ID,
	)

	if err != nil {
		return fmt.Errorf("update flag resolution: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("flag %s: %w", f.ID, domain.ErrNotFound)
	}

	return nil
}

// List retrieves flags matching the query, newest first
func (r *PostgresFlagRepository) List(ctx context.Context, q repositories.FlagQuery) ([]models.Flag, int, error) {
	where := "TRUE"
	args := []interface{}{}

	if q.WordID != nil {
		args = append(args, *q.WordID)
		where += fmt.Sprintf(" AND word_id = $%d", len(args))
	}
	if q.Status != nil {
		args = append(args, *q.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	executor := GetExecutor(ctx, r.pool)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, r.tables.Flags, where)
	var total int
	if err := executor.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count flags: %w", err)
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
	`, flagColumns, r.tables.Flags, where, len(args)-1, len(args))

	rows, err := executor.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list flags: %w", err)
	}
	defer rows.Close()

	var flags []models.Flag
	for rows.Next() {
		var f models.Flag
		err := rows.Scan(
			&f.ID,
			&f.WordID,
			&f.UserID,
			&f.Reason,
			&f.Description,
			&f.Status,
			&f.Resolution,
			&f.ResolvedBy,
			&f.ResolvedAt,
			&f.CreatedAt,
			&f.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan flag: %w", err)
		}
		flags = append(flags, f)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate flags: %w", err)
	}

	if flags == nil {
		flags = []models.Flag{}
	}

	return flags, total, nil
}

// CountByStatus counts flags in the given status
func (r *PostgresFlagRepository) CountByStatus(ctx context.Context, status models.FlagStatus) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE status = $1`, r.tables.Flags)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count flags: %w", err)
	}

	return count, nil
}
