package service

import (
	"context"
	"errors"
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

// contributionService implements the ContributionService interface
type contributionService struct {
	wordRepo         repositories.WordRepository
	contributionRepo repositories.ContributionRepository
	userRepo         repositories.UserRepository
	txManager        repositories.TransactionManager
	logger           *slog.Logger
}

// NewContributionService creates a new contribution workflow engine
func NewContributionService(
	wordRepo repositories.WordRepository,
	contributionRepo repositories.ContributionRepository,
	userRepo repositories.UserRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ContributionService {
	return &contributionService{
		wordRepo:         wordRepo,
		contributionRepo: contributionRepo,
		userRepo:         userRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Submit creates a PENDING contribution. The placeholder word (for
// ADD_WORD), the contribution row and the submitter's counter increment
// commit as one unit.
func (s *contributionService) Submit(ctx context.Context, req *services.SubmitContributionRequest) (*models.Contribution, error) {
	if err := s.validateSubmit(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now().UTC()
	var contribution *models.Contribution

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var wordID uuid.UUID
		var original *models.WordFields

		if req.Type == models.ContributionAddWord {
			headword := req.ProposedData.Headword()
			_, err := s.wordRepo.FindByHeadword(txCtx, headword)
			if err == nil {
				return &domain.DuplicateEntryError{Headword: headword}
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return err
			}

			placeholder := models.NewPlaceholderWord(req.ProposedData, now)
			if err := s.wordRepo.Create(txCtx, placeholder); err != nil {
				return err
			}
			wordID = placeholder.ID
		} else {
			word, err := s.resolveTarget(txCtx, req)
			if err != nil {
				return err
			}
			wordID = word.ID
			snapshot := models.SnapshotWordFields(word)
			original = &snapshot
		}

		contribution = &models.Contribution{
			ID:           uuid.New(),
			WordID:       wordID,
			UserID:       req.Submitter.ID,
			Type:         req.Type,
			Status:       models.ContributionPending,
			ProposedData: req.ProposedData,
			OriginalData: original,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.contributionRepo.Create(txCtx, contribution); err != nil {
			return err
		}

		return s.userRepo.IncrementContributionCount(txCtx, req.Submitter.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("contribution submitted",
		"contribution_id", contribution.ID,
		"type", contribution.Type,
		"word_id", contribution.WordID,
		"user_id", contribution.UserID,
	)

	return contribution, nil
}

// resolveTarget finds the word an update-type submission refers to, by ID
// when given or by case-insensitive headword otherwise.
func (s *contributionService) resolveTarget(ctx context.Context, req *services.SubmitContributionRequest) (*models.Word, error) {
	if req.WordID != nil {
		return s.wordRepo.GetByID(ctx, *req.WordID)
	}
	if headword := req.ProposedData.Headword(); headword != "" {
		return s.wordRepo.FindByHeadword(ctx, headword)
	}
	return nil, fmt.Errorf("%w: word_id or proposed word is required for %s", domain.ErrValidation, req.Type)
}

// Review approves or rejects a PENDING contribution.
//
// The contribution row is locked before the status check, so of two
// concurrent reviewers exactly one observes PENDING; the other fails with
// AlreadyReviewedError and nothing it did is committed.
func (s *contributionService) Review(ctx context.Context, id uuid.UUID, req *services.ReviewContributionRequest) (*models.Contribution, error) {
	if err := s.validateReview(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := requireRole(req.Reviewer, models.RoleModerator); err != nil {
		return nil, err
	}

	var contribution *models.Contribution

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		c, err := s.contributionRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if c.Status != models.ContributionPending {
			return &domain.AlreadyReviewedError{ContributionID: c.ID, Status: string(c.Status)}
		}

		now := time.Now().UTC()
		c.ReviewedBy = &req.Reviewer.ID
		c.ReviewedAt = &now
		c.UpdatedAt = now
		if req.Notes != "" {
			notes := req.Notes
			c.ReviewNotes = &notes
		}

		switch req.Decision {
		case services.DecisionApprove:
			c.Status = models.ContributionApproved
			if err := s.applyApproval(txCtx, c, req.Reviewer, now); err != nil {
				return err
			}
		case services.DecisionReject:
			c.Status = models.ContributionRejected
			if c.Type == models.ContributionAddWord {
				// The placeholder never existed as a real entry
				if err := s.wordRepo.Delete(txCtx, c.WordID); err != nil {
					return err
				}
			}
		}

		if err := s.contributionRepo.UpdateReview(txCtx, c); err != nil {
			return err
		}
		contribution = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("contribution reviewed",
		"contribution_id", contribution.ID,
		"decision", req.Decision,
		"reviewer_id", req.Reviewer.ID,
	)

	return contribution, nil
}

// applyApproval merges the proposed change into the word store and applies
// the submitter's reputation bookkeeping. Runs inside the review
// transaction.
func (s *contributionService) applyApproval(ctx context.Context, c *models.Contribution, reviewer services.Actor, now time.Time) error {
	if c.Type == models.ContributionDeleteWord {
		if err := s.wordRepo.Delete(ctx, c.WordID); err != nil {
			return err
		}
	} else {
		word, err := s.wordRepo.GetByIDForUpdate(ctx, c.WordID)
		if err != nil {
			return err
		}

		// Non-empty proposed fields win; completion status is recomputed
		// from the merged result. An ADD_WORD approval with incomplete
		// proposed data therefore yields a published but INCOMPLETE entry.
		c.ProposedData.ApplyTo(word)
		if c.Type == models.ContributionAddWord {
			word.Published = true
			if reviewer.Role.HasAtLeast(models.RoleExpert) {
				word.Verified = true
			}
		}
		word.UpdatedAt = now

		if err := s.wordRepo.Update(ctx, word); err != nil {
			return err
		}
	}

	_, err := s.userRepo.ApplyApproval(ctx, c.UserID)
	return err
}

// MarkNeedsReview parks a PENDING contribution in NEEDS_REVIEW.
// The parking note is kept in ReviewNotes; the reviewer reference stays
// empty until a terminal transition.
func (s *contributionService) MarkNeedsReview(ctx context.Context, id uuid.UUID, reviewer services.Actor, notes string) (*models.Contribution, error) {
	if err := requireRole(reviewer, models.RoleModerator); err != nil {
		return nil, err
	}

	var contribution *models.Contribution

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		c, err := s.contributionRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if c.Status != models.ContributionPending {
			return &domain.AlreadyReviewedError{ContributionID: c.ID, Status: string(c.Status)}
		}

		c.Status = models.ContributionNeedsReview
		c.UpdatedAt = time.Now().UTC()
		if notes != "" {
			c.ReviewNotes = &notes
		}

		if err := s.contributionRepo.UpdateReview(txCtx, c); err != nil {
			return err
		}
		contribution = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return contribution, nil
}

// Reopen returns a NEEDS_REVIEW contribution to PENDING. Reopening a
// contribution that is already PENDING is a no-op.
func (s *contributionService) Reopen(ctx context.Context, id uuid.UUID, reviewer services.Actor) (*models.Contribution, error) {
	if err := requireRole(reviewer, models.RoleModerator); err != nil {
		return nil, err
	}

	var contribution *models.Contribution

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		c, err := s.contributionRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if c.Terminal() {
			return &domain.AlreadyReviewedError{ContributionID: c.ID, Status: string(c.Status)}
		}

		if c.Status == models.ContributionNeedsReview {
			c.Status = models.ContributionPending
			c.UpdatedAt = time.Now().UTC()
			if err := s.contributionRepo.UpdateReview(txCtx, c); err != nil {
				return err
			}
		}
		contribution = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return contribution, nil
}

// Get retrieves a contribution by ID
func (s *contributionService) Get(ctx context.Context, id uuid.UUID) (*models.Contribution, error) {
	return s.contributionRepo.GetByID(ctx, id)
}

// List retrieves contributions matching the query. Queries not scoped to
// the actor's own submissions require at least MODERATOR.
func (s *contributionService) List(ctx context.Context, actor services.Actor, q repositories.ContributionQuery) ([]models.Contribution, int, error) {
	if q.UserID == nil || *q.UserID != actor.ID {
		if err := requireRole(actor, models.RoleModerator); err != nil {
			return nil, 0, err
		}
	}
	return s.contributionRepo.List(ctx, q)
}

func (s *contributionService) validateSubmit(req *services.SubmitContributionRequest) error {
	return validation.Errors{
		"type": validation.Validate(req.Type,
			validation.Required, validation.In(inValues(models.ContributionTypes)...)),
		"proposed_data.word": validation.Validate(req.ProposedData.Word,
			requiredWhen(req.Type == models.ContributionAddWord),
			validation.Length(0, config.MaxHeadwordLength)),
		"proposed_data.phoneme": validation.Validate(req.ProposedData.Phoneme,
			validation.Length(0, config.MaxPhonemeLength)),
		"proposed_data.meaning": validation.Validate(req.ProposedData.Meaning,
			validation.Length(0, config.MaxMeaningLength)),
		"proposed_data.example_usage": validation.Validate(req.ProposedData.ExampleUsage,
			validation.Length(0, config.MaxExampleUsageLength)),
	}.Filter()
}

func (s *contributionService) validateReview(req *services.ReviewContributionRequest) error {
	return validation.Errors{
		"decision": validation.Validate(req.Decision,
			validation.Required, validation.In(services.DecisionApprove, services.DecisionReject)),
		"notes": validation.Validate(req.Notes,
			validation.Length(0, config.MaxReviewNotesLength)),
	}.Filter()
}
