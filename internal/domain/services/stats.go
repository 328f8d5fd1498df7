package services

import (
	"context"

	"gadict/internal/domain/models"
)

// StatsService serves the cached dictionary-wide aggregate. Reads within
// the freshness window return the cached snapshot; stale reads recompute
// from the word/contribution/flag/user stores and upsert the singleton.
// Staleness relative to in-flight moderation transactions is acceptable.
type StatsService interface {
	GetStats(ctx context.Context) (*models.DictionaryStats, error)
}
