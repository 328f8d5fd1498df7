package services

import (
	"context"

	"github.com/google/uuid"

	"gadict/internal/domain/models"
	"gadict/internal/domain/repositories"
)

// WordService is the read-only surface of the word store, consumed by
// listing and search pages. All word mutation goes through the
// contribution engine.
type WordService interface {
	// Get retrieves a word by ID.
	Get(ctx context.Context, id uuid.UUID) (*models.Word, error)

	// List retrieves published words matching the query plus the total
	// match count.
	List(ctx context.Context, q repositories.WordQuery) ([]models.Word, int, error)
}
