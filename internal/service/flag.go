package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"gadict/internal/config"
	"gadict/internal/domain"
	"gadict/internal/domain/models"
	"gadict/internal/domain/repositories"
	"gadict/internal/domain/services"
)

// flagService implements the FlagService interface
type flagService struct {
	wordRepo  repositories.WordRepository
	flagRepo  repositories.FlagRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewFlagService creates a new flag workflow engine
func NewFlagService(
	wordRepo repositories.WordRepository,
	flagRepo repositories.FlagRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FlagService {
	return &flagService{
		wordRepo:  wordRepo,
		flagRepo:  flagRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Report opens a flag against an existing word. One reporter can hold at
// most one OPEN flag per word; once that flag leaves OPEN the reporter may
// flag the word again.
func (s *flagService) Report(ctx context.Context, req *services.ReportFlagRequest) (*models.Flag, error) {
	if err := s.validateReport(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.wordRepo.GetByID(ctx, req.WordID); err != nil {
		return nil, err
	}

	open, err := s.flagRepo.HasOpenFlag(ctx, req.WordID, req.Reporter.ID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, &domain.DuplicateReportError{WordID: req.WordID}
	}

	now := time.Now().UTC()
	flag := &models.Flag{
		ID:          uuid.New(),
		WordID:      req.WordID,
		UserID:      req.Reporter.ID,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      models.FlagOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.flagRepo.Create(ctx, flag); err != nil {
		return nil, err
	}

	s.logger.Info("flag reported",
		"flag_id", flag.ID,
		"word_id", flag.WordID,
		"reason", flag.Reason,
		"user_id", flag.UserID,
	)

	return flag, nil
}

// Resolve closes a flag as RESOLVED or DISMISSED. Accepts flags in OPEN or
// REVIEWED; the row lock plus re-check means of two concurrent resolvers
// only one wins, the other gets AlreadyResolvedError.
func (s *flagService) Resolve(ctx context.Context, id uuid.UUID, req *services.ResolveFlagRequest) (*models.Flag, error) {
	if err := s.validateResolve(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := requireRole(req.Resolver, models.RoleModerator); err != nil {
		return nil, err
	}

	var flag *models.Flag

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		f, err := s.flagRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if f.Terminal() {
			return &domain.AlreadyResolvedError{FlagID: f.ID, Status: string(f.Status)}
		}

		now := time.Now().UTC()
		switch req.Decision {
		case services.DecisionResolve:
			f.Status = models.FlagResolved
		case services.DecisionDismiss:
			f.Status = models.FlagDismissed
		}
		if req.Resolution != "" {
			resolution := req.Resolution
			f.Resolution = &resolution
		}
		f.ResolvedBy = &req.Resolver.ID
		f.ResolvedAt = &now
		f.UpdatedAt = now

		if err := s.flagRepo.UpdateResolution(txCtx, f); err != nil {
			return err
		}
		flag = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Resolution records the outcome only. Any correction to the word
	// itself goes through a contribution.
	s.logger.Info("flag resolved",
		"flag_id", flag.ID,
		"word_id", flag.WordID,
		"status", flag.Status,
		"resolver_id", req.Resolver.ID,
	)

	return flag, nil
}

// MarkReviewed annotates an OPEN flag as REVIEWED without closing it.
// Marking an already REVIEWED flag is a no-op.
func (s *flagService) MarkReviewed(ctx context.Context, id uuid.UUID, reviewer services.Actor) (*models.Flag, error) {
	if err := requireRole(reviewer, models.RoleModerator); err != nil {
		return nil, err
	}

	var flag *models.Flag

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		f, err := s.flagRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if f.Terminal() {
			return &domain.AlreadyResolvedError{FlagID: f.ID, Status: string(f.Status)}
		}

		if f.Status == models.FlagOpen {
			f.Status = models.FlagReviewed
			f.UpdatedAt = time.Now().UTC()
			if err := s.flagRepo.UpdateResolution(txCtx, f); err != nil {
				return err
			}
		}
		flag = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	return flag, nil
}

// Get retrieves a flag by ID. Requires at least MODERATOR.
func (s *flagService) Get(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.Flag, error) {
	if err := requireRole(actor, models.RoleModerator); err != nil {
		return nil, err
	}
	return s.flagRepo.GetByID(ctx, id)
}

// List retrieves flags matching the query. Requires at least MODERATOR.
func (s *flagService) List(ctx context.Context, actor services.Actor, q repositories.FlagQuery) ([]models.Flag, int, error) {
	if err := requireRole(actor, models.RoleModerator); err != nil {
		return nil, 0, err
	}
	return s.flagRepo.List(ctx, q)
}

func (s *flagService) validateReport(req *services.ReportFlagRequest) error {
	return validation.Errors{
		"word_id": validation.Validate(req.WordID, validation.Required),
		"reason": validation.Validate(req.Reason,
			validation.Required, validation.In(inValues(models.FlagReasons)...)),
		"description": validation.Validate(req.Description,
			validation.Required,
			validation.Length(config.MinFlagDescriptionLength, config.MaxFlagDescriptionLength)),
	}.Filter()
}

func (s *flagService) validateResolve(req *services.ResolveFlagRequest) error {
	return validation.Errors{
		"decision": validation.Validate(req.Decision,
			validation.Required, validation.In(services.DecisionResolve, services.DecisionDismiss)),
		"resolution": validation.Validate(req.Resolution,
			validation.Length(0, config.MaxReviewNotesLength)),
	}.Filter()
}
