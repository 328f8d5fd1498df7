package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContributionType identifies what kind of change a contribution proposes.
type ContributionType string

const (
	ContributionAddWord      ContributionType = "ADD_WORD"
	ContributionUpdateWord   ContributionType = "UPDATE_WORD"
	ContributionDeleteWord   ContributionType = "DELETE_WORD"
	ContributionAddPhoneme   ContributionType = "ADD_PHONEME"
	ContributionAddMeaning   ContributionType = "ADD_MEANING"
	ContributionAddUsage     ContributionType = "ADD_USAGE"
	ContributionCorrectError ContributionType = "CORRECT_ERROR"
)

// ContributionTypes lists every valid contribution type, for validation.
var ContributionTypes = []ContributionType{
	ContributionAddWord,
	ContributionUpdateWord,
	ContributionDeleteWord,
	ContributionAddPhoneme,
	ContributionAddMeaning,
	ContributionAddUsage,
	ContributionCorrectError,
}

// ContributionStatus is the review state of a contribution.
//
// PENDING moves to APPROVED or REJECTED, both terminal. NEEDS_REVIEW is a
// non-terminal side branch: a reviewer parks a contribution there and later
// sends it back to PENDING; the approve/reject path never touches it.
type ContributionStatus string

const (
	ContributionPending     ContributionStatus = "PENDING"
	ContributionApproved    ContributionStatus = "APPROVED"
	ContributionRejected    ContributionStatus = "REJECTED"
	ContributionNeedsReview ContributionStatus = "NEEDS_REVIEW"
)

// WordFields is a sparse set of word fields, used for both the proposed
// change and the snapshot of original values taken at submission time.
// Nil means "not provided"; the merge only considers non-empty values.
type WordFields struct {
	Word         *string `json:"word,omitempty"`
	Phoneme      *string `json:"phoneme,omitempty"`
	Meaning      *string `json:"meaning,omitempty"`
	PartOfSpeech *string `json:"part_of_speech,omitempty"`
	ExampleUsage *string `json:"example_usage,omitempty"`
	// Reason is free text carried by CORRECT_ERROR submissions.
	Reason *string `json:"reason,omitempty"`
}

// Headword returns the trimmed proposed headword, or "" if absent.
func (f WordFields) Headword() string {
	if f.Word == nil {
		return ""
	}
	return strings.TrimSpace(*f.Word)
}

// ApplyTo merges the non-empty fields into w and recomputes the completion
// status from the merged result. Absent or empty fields keep the current
// word value.
func (f WordFields) ApplyTo(w *Word) {
	if v := trimmed(f.Word); v != "" {
		w.Word = v
	}
	if v := trimmed(f.Phoneme); v != "" {
		w.Phoneme = v
	}
	if v := trimmed(f.Meaning); v != "" {
		w.Meaning = v
	}
	if v := trimmed(f.PartOfSpeech); v != "" {
		w.PartOfSpeech = &v
	}
	if v := trimmed(f.ExampleUsage); v != "" {
		w.ExampleUsage = &v
	}
	w.RecomputeCompletion()
}

// SnapshotWordFields captures a word's current content as a field set, for
// the originalData record on a contribution.
func SnapshotWordFields(w *Word) WordFields {
	word := w.Word
	phoneme := w.Phoneme
	meaning := w.Meaning
	return WordFields{
		Word:         &word,
		Phoneme:      &phoneme,
		Meaning:      &meaning,
		PartOfSpeech: w.PartOfSpeech,
		ExampleUsage: w.ExampleUsage,
	}
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// Contribution is a proposed change awaiting review. It always references
// exactly one word; ADD_WORD submissions reference the placeholder entry
// created for them. Contributions are never deleted.
type Contribution struct {
	ID           uuid.UUID          `json:"id"`
	WordID       uuid.UUID          `json:"word_id"`
	UserID       uuid.UUID          `json:"user_id"`
	Type         ContributionType   `json:"type"`
	Status       ContributionStatus `json:"status"`
	ProposedData WordFields         `json:"proposed_data"`
	// OriginalData is nil for ADD_WORD - there was nothing to snapshot.
	OriginalData *WordFields `json:"original_data,omitempty"`
	ReviewNotes  *string     `json:"review_notes,omitempty"`
	ReviewedBy   *uuid.UUID  `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time  `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Terminal reports whether the contribution has reached a final status.
func (c *Contribution) Terminal() bool {
	return c.Status == ContributionApproved || c.Status == ContributionRejected
}
