package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// DuplicateEntryError indicates an ADD_WORD submission for a headword
// that already exists in the dictionary (case-insensitive).
type DuplicateEntryError struct {
	Headword string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("word %q already exists in the dictionary", e.Headword)
}

// Is allows errors.Is() to match against ErrConflict
func (e *DuplicateEntryError) Is(target error) bool {
	return target == ErrConflict
}

// DuplicateReportError indicates the reporter already has an open flag
// on the same word.
type DuplicateReportError struct {
	WordID uuid.UUID
}

func (e *DuplicateReportError) Error() string {
	return fmt.Sprintf("word %s is already flagged by this user", e.WordID)
}

func (e *DuplicateReportError) Is(target error) bool {
	return target == ErrConflict
}

// AlreadyReviewedError indicates a review was attempted on a contribution
// that is no longer pending. This is how the losing side of a concurrent
// review race observes the conflict.
type AlreadyReviewedError struct {
	ContributionID uuid.UUID
	Status         string
}

func (e *AlreadyReviewedError) Error() string {
	return fmt.Sprintf("contribution %s already reviewed (status %s)", e.ContributionID, e.Status)
}

func (e *AlreadyReviewedError) Is(target error) bool {
	return target == ErrConflict
}

// AlreadyResolvedError is the flag-side equivalent of AlreadyReviewedError.
type AlreadyResolvedError struct {
	FlagID uuid.UUID
	Status string
}

func (e *AlreadyResolvedError) Error() string {
	return fmt.Sprintf("flag %s already resolved (status %s)", e.FlagID, e.Status)
}

func (e *AlreadyResolvedError) Is(target error) bool {
	return target == ErrConflict
}
