package services

import (
	"context"

	"github.com/google/uuid"

	"gadict/internal/domain/models"
	"gadict/internal/domain/repositories"
)

// ReviewDecision is the reviewer's verdict on a pending contribution.
type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "APPROVE"
	DecisionReject  ReviewDecision = "REJECT"
)

// Actor identifies the authenticated user performing an operation, with
// the role supplied by the session provider. The core trusts the role and
// only enforces minimum-role checks.
type Actor struct {
	ID   uuid.UUID
	Role models.Role
}

// SubmitContributionRequest represents a request to submit a contribution
type SubmitContributionRequest struct {
	Submitter Actor
	Type      models.ContributionType `json:"type"`
	// WordID targets an existing entry. Optional: update-type submissions
	// may instead name the word in ProposedData and be resolved by
	// headword. Ignored for ADD_WORD.
	WordID       *uuid.UUID        `json:"word_id,omitempty"`
	ProposedData models.WordFields `json:"proposed_data"`
}

// ReviewContributionRequest represents an approve/reject verdict
type ReviewContributionRequest struct {
	Reviewer Actor
	Decision ReviewDecision `json:"decision"`
	Notes    string         `json:"notes,omitempty"`
}

// ContributionService is the contribution workflow engine: it owns every
// status transition and the transactional merge of approved changes into
// the word store.
type ContributionService interface {
	// Submit creates a PENDING contribution. ADD_WORD submissions create
	// a placeholder word; other types snapshot the target word's current
	// content. Increments the submitter's contributionCount.
	Submit(ctx context.Context, req *SubmitContributionRequest) (*models.Contribution, error)

	// Review approves or rejects a PENDING contribution as one atomic
	// unit: status transition, word merge or placeholder delete, and
	// reputation bookkeeping commit or abort together. Concurrent reviews
	// of the same contribution are serialized; the loser gets
	// AlreadyReviewedError.
	Review(ctx context.Context, id uuid.UUID, req *ReviewContributionRequest) (*models.Contribution, error)

	// MarkNeedsReview parks a PENDING contribution in NEEDS_REVIEW with a
	// note explaining what is unclear. Approve/reject does not apply
	// until Reopen sends it back to PENDING.
	MarkNeedsReview(ctx context.Context, id uuid.UUID, reviewer Actor, notes string) (*models.Contribution, error)

	// Reopen returns a NEEDS_REVIEW contribution to PENDING.
	Reopen(ctx context.Context, id uuid.UUID, reviewer Actor) (*models.Contribution, error)

	// Get retrieves a contribution by ID.
	Get(ctx context.Context, id uuid.UUID) (*models.Contribution, error)

	// List retrieves contributions matching the query. Queries not scoped
	// to the actor's own submissions require at least MODERATOR.
	List(ctx context.Context, actor Actor, q repositories.ContributionQuery) ([]models.Contribution, int, error)
}
