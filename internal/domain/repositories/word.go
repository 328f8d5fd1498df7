package repositories

import (
	"context"

	"github.com/google/uuid"

	"gadict/internal/domain/models"
)

// WordFilter narrows a word listing by completeness.
type WordFilter string

const (
	WordFilterAll            WordFilter = "all"
	WordFilterComplete       WordFilter = "complete"
	WordFilterIncomplete     WordFilter = "incomplete"
	WordFilterMissingPhoneme WordFilter = "missing-phoneme"
	WordFilterMissingMeaning WordFilter = "missing-meaning"
)

// WordSort orders a word listing.
type WordSort string

const (
	WordSortAlphabetical WordSort = "alphabetical"
	WordSortNewest       WordSort = "newest"
	WordSortOldest       WordSort = "oldest"
)

// WordQuery describes a word listing request. Zero values mean
// "no constraint"; Limit 0 falls back to the repository default.
type WordQuery struct {
	Search     string
	StartsWith string
	Filter     WordFilter
	Sort       WordSort
	// PublishedOnly hides placeholder entries from public listings.
	PublishedOnly bool
	Limit         int
	Offset        int
}

// WordCounts is the aggregate snapshot input computed by the word store.
type WordCounts struct {
	Total      int
	Verified   int
	Incomplete int
}

// WordRepository defines data access for dictionary entries. Content
// mutations (Create of placeholders, Update, Delete) are only ever invoked
// from inside a contribution-engine transaction; nothing else writes word
// content.
type WordRepository interface {
	// Create inserts a new word. Returns DuplicateEntryError if another
	// entry with the same headword exists (case-insensitive).
	Create(ctx context.Context, word *models.Word) error

	// GetByID retrieves a word by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Word, error)

	// GetByIDForUpdate retrieves a word by ID with a row lock. Must run
	// inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Word, error)

	// FindByHeadword retrieves a word by its headword, case-insensitively.
	FindByHeadword(ctx context.Context, headword string) (*models.Word, error)

	// Update writes all mutable columns of the word.
	Update(ctx context.Context, word *models.Word) error

	// Delete removes a word. Only rejected ADD_WORD placeholders and
	// approved DELETE_WORD targets are ever deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves words matching the query plus the total match count.
	List(ctx context.Context, q WordQuery) ([]models.Word, int, error)

	// Counts returns the totals the stats cache aggregates.
	Counts(ctx context.Context) (WordCounts, error)
}
