package repositories

import (
	"context"

	"gadict/internal/domain/models"
)

// StatsRepository persists the singleton DictionaryStats snapshot.
type StatsRepository interface {
	// Get retrieves the cached snapshot, or nil if none has been
	// computed yet.
	Get(ctx context.Context) (*models.DictionaryStats, error)

	// Upsert replaces the singleton snapshot.
	Upsert(ctx context.Context, stats *models.DictionaryStats) error
}
