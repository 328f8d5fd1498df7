package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CompletionStatus classifies a word entry by presence of its core fields.
type CompletionStatus string

const (
	CompletionComplete   CompletionStatus = "COMPLETE"
	CompletionIncomplete CompletionStatus = "INCOMPLETE"
)

// PlaceholderValue is the sentinel stored in required word fields of a
// placeholder entry that anchors a pending ADD_WORD contribution.
const PlaceholderValue = "PENDING"

// Word is a single dictionary entry.
//
// CompletionStatus is derived: COMPLETE iff headword, phoneme and meaning
// are all non-empty after trimming. It is recomputed on every content
// mutation and never set independently.
type Word struct {
	ID               uuid.UUID        `json:"id"`
	Word             string           `json:"word"`
	Phoneme          string           `json:"phoneme"`
	Meaning          string           `json:"meaning"`
	PartOfSpeech     *string          `json:"part_of_speech,omitempty"`
	ExampleUsage     *string          `json:"example_usage,omitempty"`
	CompletionStatus CompletionStatus `json:"completion_status"`
	Verified         bool             `json:"verified"`
	Published        bool             `json:"published"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ComputeCompletionStatus derives the completion status from the three
// core fields. Placeholder sentinels count as missing.
func ComputeCompletionStatus(word, phoneme, meaning string) CompletionStatus {
	word = strings.TrimSpace(word)
	phoneme = strings.TrimSpace(phoneme)
	meaning = strings.TrimSpace(meaning)

	if word == "" || word == PlaceholderValue {
		return CompletionIncomplete
	}
	if phoneme == "" {
		return CompletionIncomplete
	}
	if meaning == "" || meaning == PlaceholderValue {
		return CompletionIncomplete
	}
	return CompletionComplete
}

// RecomputeCompletion re-derives CompletionStatus from the current fields.
func (w *Word) RecomputeCompletion() {
	w.CompletionStatus = ComputeCompletionStatus(w.Word, w.Phoneme, w.Meaning)
}

// NewPlaceholderWord builds the provisional entry that anchors an ADD_WORD
// contribution before approval. Whatever the submitter proposed is stored
// so the pending entry is readable in review tooling; missing required
// fields fall back to the placeholder sentinel. Placeholders are created
// unpublished and unverified.
func NewPlaceholderWord(proposed WordFields, now time.Time) *Word {
	w := &Word{
		ID:        uuid.New(),
		Word:      stringOr(proposed.Word, PlaceholderValue),
		Phoneme:   stringOr(proposed.Phoneme, ""),
		Meaning:   stringOr(proposed.Meaning, PlaceholderValue),
		Published: false,
		Verified:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if proposed.PartOfSpeech != nil && strings.TrimSpace(*proposed.PartOfSpeech) != "" {
		w.PartOfSpeech = proposed.PartOfSpeech
	}
	if proposed.ExampleUsage != nil && strings.TrimSpace(*proposed.ExampleUsage) != "" {
		w.ExampleUsage = proposed.ExampleUsage
	}
	// A placeholder is incomplete until its contribution is approved.
	w.CompletionStatus = CompletionIncomplete
	return w
}

func stringOr(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return strings.TrimSpace(*s)
}
