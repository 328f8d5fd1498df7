package models

import (
	"time"

	"github.com/google/uuid"
)

// FlagReason categorizes what a reporter thinks is wrong with a word.
type FlagReason string

const (
	FlagIncorrectMeaning     FlagReason = "INCORRECT_MEANING"
	FlagIncorrectPhoneme     FlagReason = "INCORRECT_PHONEME"
	FlagInappropriateContent FlagReason = "INAPPROPRIATE_CONTENT"
	FlagDuplicateEntry       FlagReason = "DUPLICATE_ENTRY"
	FlagSpam                 FlagReason = "SPAM"
	FlagOther                FlagReason = "OTHER"
)

// FlagReasons lists every valid flag reason, for validation.
var FlagReasons = []FlagReason{
	FlagIncorrectMeaning,
	FlagIncorrectPhoneme,
	FlagInappropriateContent,
	FlagDuplicateEntry,
	FlagSpam,
	FlagOther,
}

// FlagStatus is the lifecycle state of a flag.
//
// OPEN moves to RESOLVED or DISMISSED, both terminal. REVIEWED is a
// non-terminal annotation: a moderator has looked at the flag but not yet
// decided. Both OPEN and REVIEWED flags can be resolved.
type FlagStatus string

const (
	FlagOpen      FlagStatus = "OPEN"
	FlagReviewed  FlagStatus = "REVIEWED"
	FlagResolved  FlagStatus = "RESOLVED"
	FlagDismissed FlagStatus = "DISMISSED"
)

// Flag is a user report that a word has a problem. Flags are never
// deleted; they transition once into a terminal state.
type Flag struct {
	ID          uuid.UUID  `json:"id"`
	WordID      uuid.UUID  `json:"word_id"`
	UserID      uuid.UUID  `json:"user_id"`
	Reason      FlagReason `json:"reason"`
	Description string     `json:"description"`
	Status      FlagStatus `json:"status"`
	Resolution  *string    `json:"resolution,omitempty"`
	ResolvedBy  *uuid.UUID `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Terminal reports whether the flag has reached a final status.
func (f *Flag) Terminal() bool {
	return f.Status == FlagResolved || f.Status == FlagDismissed
}
