package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"gadict/internal/domain/models"
	"gadict/internal/domain/repositories"
)

// PostgresStatsRepository persists the singleton DictionaryStats row.
// The table uses a constant TRUE primary key so there can only ever be
// one snapshot.
type PostgresStatsRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(config *RepositoryConfig) repositories.StatsRepository {
	return &PostgresStatsRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Get retrieves the cached snapshot, or nil if none has been computed yet
func (r *PostgresStatsRepository) Get(ctx context.Context) (*models.DictionaryStats, error) {
	query := fmt.Sprintf(`
		SELECT total_words, verified_words, incomplete_words,
			pending_contributions, active_contributors, open_flags, updated_at
		FROM %s
		WHERE singleton
	`, r.tables.DictionaryStats)

	var stats models.DictionaryStats
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query).Scan(
		&stats.TotalWords,
		&stats.VerifiedWords,
		&stats.IncompleteWords,
		&stats.PendingContributions,
		&stats.ActiveContributors,
		&stats.OpenFlags,
		&stats.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			// No snapshot yet - not an error
			return nil, nil
		}
		return nil, fmt.Errorf("get dictionary stats: %w", err)
	}

	return &stats, nil
}

// Upsert replaces the singleton snapshot
func (r *PostgresStatsRepository) Upsert(ctx context.Context, stats *models.DictionaryStats) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (singleton, total_words, verified_words, incomplete_words,
			pending_contributions, active_contributors, open_flags, updated_at)
		VALUES (TRUE, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (singleton) DO UPDATE SET
			total_words = EXCLUDED.total_words,
			verified_words = EXCLUDED.verified_words,
			incomplete_words = EXCLUDED.incomplete_words,
			pending_contributions = EXCLUDED.pending_contributions,
			active_contributors = EXCLUDED.active_contributors,
			open_flags = EXCLUDED.open_flags,
			updated_at = EXCLUDED.updated_at
	`, r.tables.DictionaryStats)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		stats.TotalWords,
		stats.VerifiedWords,
		stats.IncompleteWords,
		stats.PendingContributions,
		stats.ActiveContributors,
		stats.OpenFlags,
		stats.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("upsert dictionary stats: %w", err)
	}

	return nil
}
