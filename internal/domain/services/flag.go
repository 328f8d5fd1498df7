package services

import (
	"context"

	"github.com/google/uuid"

	"gadict/internal/domain/models"
	"gadict/internal/domain/repositories"
)

// ResolveDecision is the moderator's verdict on a flag.
type ResolveDecision string

const (
	DecisionResolve ResolveDecision = "RESOLVE"
	DecisionDismiss ResolveDecision = "DISMISS"
)

// ReportFlagRequest represents a request to flag a word. The word is
// addressed by the URL path, not the body.
type ReportFlagRequest struct {
	Reporter    Actor             `json:"-"`
	WordID      uuid.UUID         `json:"-"`
	Reason      models.FlagReason `json:"reason"`
	Description string            `json:"description"`
}

// ResolveFlagRequest represents a resolve/dismiss verdict
type ResolveFlagRequest struct {
	Resolver   Actor
	Decision   ResolveDecision `json:"decision"`
	Resolution string          `json:"resolution"`
}

// FlagService is the flag workflow engine.
//
// Resolving a flag never mutates the flagged word: reason-specific
// remediation (hiding inappropriate content, merging duplicates) is a
// reviewer's separate manual action, by way of a contribution.
type FlagService interface {
	// Report creates an OPEN flag. Fails with DuplicateReportError if the
	// reporter already has an OPEN flag on the word.
	Report(ctx context.Context, req *ReportFlagRequest) (*models.Flag, error)

	// Resolve closes an OPEN or REVIEWED flag as RESOLVED or DISMISSED.
	// Concurrent resolutions of the same flag are serialized; the loser
	// gets AlreadyResolvedError.
	Resolve(ctx context.Context, id uuid.UUID, req *ResolveFlagRequest) (*models.Flag, error)

	// MarkReviewed annotates an OPEN flag as REVIEWED without deciding it.
	MarkReviewed(ctx context.Context, id uuid.UUID, reviewer Actor) (*models.Flag, error)

	// Get retrieves a flag by ID. Requires at least MODERATOR.
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Flag, error)

	// List retrieves flags matching the query. Requires at least MODERATOR.
	List(ctx context.Context, actor Actor, q repositories.FlagQuery) ([]models.Flag, int, error)
}
