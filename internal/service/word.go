package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"gadict/internal/domain/models"
	"gadict/internal/domain/repositories"
	"gadict/internal/domain/services"
)

// wordService implements the read-only WordService interface
type wordService struct {
	wordRepo repositories.WordRepository
	logger   *slog.Logger
}

// NewWordService creates a new word service
func NewWordService(wordRepo repositories.WordRepository, logger *slog.Logger) services.WordService {
	return &wordService{
		wordRepo: wordRepo,
		logger:   logger,
	}
}

// Get retrieves a word by ID
func (s *wordService) Get(ctx context.Context, id uuid.UUID) (*models.Word, error) {
	return s.wordRepo.GetByID(ctx, id)
}

// List retrieves published words matching the query
func (s *wordService) List(ctx context.Context, q repositories.WordQuery) ([]models.Word, int, error) {
	q.PublishedOnly = true
	return s.wordRepo.List(ctx, q)
}
