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

const wordColumns = `id, word, phoneme, meaning, part_of_speech, example_usage,
		completion_status, verified, published, created_at, updated_at`

// PostgresWordRepository implements the WordRepository interface
type PostgresWordRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewWordRepository creates a new word repository
func NewWordRepository(config *RepositoryConfig) repositories.WordRepository {
	return &PostgresWordRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new word
func (r *PostgresWordRepository) Create(ctx context.Context, word *models.Word) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.tables.Words, wordColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		word.ID,
		word.Word,
		word.Phoneme,
		word.Meaning,
		word.PartOfSpeech,
		word.ExampleUsage,
		word.CompletionStatus,
		word.Verified,
		word.Published,
		word.CreatedAt,
		word.UpdatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.DuplicateEntryError{Headword: word.Word}
		}
		return fmt.Errorf("create word: %w", err)
	}

	return nil
}

// GetByID retrieves a word by ID
func (r *PostgresWordRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Word, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, wordColumns, r.tables.Words)
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate retrieves a word by ID with a row lock
func (r *PostgresWordRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Word, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, wordColumns, r.tables.Words)
	return r.getOne(ctx, query, id)
}

// FindByHeadword retrieves a word by headword, case-insensitively
func (r *PostgresWordRepository) FindByHeadword(ctx context.Context, headword string) (*models.Word, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE LOWER(word) = LOWER($1)
	`, wordColumns, r.tables.Words)
	return r.getOne(ctx, query, headword)
}

func (r *PostgresWordRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Word, error) {
	var word models.Word
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, arg).Scan(
		&word.ID,
		&word.Word,
		&word.Phoneme,
		&word.Meaning,
		&word.PartOfSpeech,
		&word.ExampleUsage,
		&word.CompletionStatus,
		&word.Verified,
		&word.Published,
		&word.CreatedAt,
		&word.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("word %v: %w", arg, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get word: %w", err)
	}

	return &word, nil
}

// Update writes all mutable columns of the word
func (r *PostgresWordRepository) Update(ctx context.Context, word *models.Word) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET word = $1, phoneme = $2, meaning = $3, part_of_speech = $4,
			example_usage = $5, completion_status = $6, verified = $7,
			published = $8, updated_at = $9
		WHERE id = $10
	`, r.tables.Words)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		word.Word,
		word.Phoneme,
		word.Meaning,
		word.PartOfSpeech,
		word.ExampleUsage,
		word.CompletionStatus,
		word.Verified,
		word.Published,
		word.UpdatedAt,
		word.ID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.DuplicateEntryError{Headword: word.Word}
		}
		return fmt.Errorf("update word: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("word %s: %w", word.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a word
func (r *PostgresWordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Words)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("word %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List retrieves words matching the query plus the total match count
func (r *PostgresWordRepository) List(ctx context.Context, q repositories.WordQuery) ([]models.Word, int, error) {
	where := "TRUE"
	args := []interface{}{}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		where += fmt.Sprintf(" AND "+clause, len(args))
	}

	if q.PublishedOnly {
		where += " AND published"
	}
	if q.Search != "" {
		addArg("(word ILIKE '%%' || $%d || '%%' OR meaning ILIKE '%%' || $%[1]d || '%%')", q.Search)
	}
	if q.StartsWith != "" {
		addArg("word ILIKE $%d || '%%'", q.StartsWith)
	}

	switch q.Filter {
	case repositories.WordFilterComplete:
		where += fmt.Sprintf(" AND completion_status = '%s'", models.CompletionComplete)
	case repositories.WordFilterIncomplete:
		where += fmt.Sprintf(" AND completion_status = '%s'", models.CompletionIncomplete)
	case repositories.WordFilterMissingPhoneme:
		where += " AND TRIM(phoneme) = ''"
	case repositories.WordFilterMissingMeaning:
		where += " AND TRIM(meaning) = ''"
	}

	orderBy := "LOWER(word) ASC"
	switch q.Sort {
	case repositories.WordSortNewest:
		orderBy = "created_at DESC"
	case repositories.WordSortOldest:
		orderBy = "created_at ASC"
	}

	executor := GetExecutor(ctx, r.pool)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, r.tables.Words, where)
	var total int
	if err := executor.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count words: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, q.Offset)
	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, wordColumns, r.tables.Words, where, orderBy, len(args)-1, len(args))

	rows, err := executor.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var word models.Word
		err := rows.Scan(
			&word.ID,
			&word.Word,
			&word.Phoneme,
			&word.Meaning,
			&word.PartOfSpeech,
			&word.ExampleUsage,
			&word.CompletionStatus,
			&word.Verified,
			&word.Published,
			&word.CreatedAt,
			&word.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, word)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate words: %w", err)
	}

	// Return empty slice instead of nil if no words
	if words == nil {
		words = []models.Word{}
	}

	return words, total, nil
}

// Counts returns the totals the stats cache aggregates
func (r *PostgresWordRepository) Counts(ctx context.Context) (repositories.WordCounts, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE verified),
			COUNT(*) FILTER (WHERE completion_status = $1)
		FROM %s
	`, r.tables.Words)

	var counts repositories.WordCounts
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, models.CompletionIncomplete).Scan(
		&counts.Total,
		&counts.Verified,
		&counts.Incomplete,
	)
	if err != nil {
		return repositories.WordCounts{}, fmt.Errorf("count words: %w", err)
	}

	return counts, nil
}
