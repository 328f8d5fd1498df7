package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCompletionStatus(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		phoneme string
		meaning string
		want    CompletionStatus
	}{
		{"all present", "shia", "ʃia", "house", CompletionComplete},
		{"missing phoneme", "shia", "", "house", CompletionIncomplete},
		{"missing meaning", "shia", "ʃia", "", CompletionIncomplete},
		{"missing word", "", "ʃia", "house", CompletionIncomplete},
		{"whitespace only counts as missing", "shia", "   ", "house", CompletionIncomplete},
		{"placeholder word counts as missing", PlaceholderValue, "ʃia", "house", CompletionIncomplete},
		{"placeholder meaning counts as missing", "shia", "ʃia", PlaceholderValue, CompletionIncomplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeCompletionStatus(tt.word, tt.phoneme, tt.meaning))
		})
	}
}

func TestNewPlaceholderWord(t *testing.T) {
	now := time.Now().UTC()

	t.Run("empty proposal falls back to sentinels", func(t *testing.T) {
		w := NewPlaceholderWord(WordFields{}, now)
		assert.Equal(t, PlaceholderValue, w.Word)
		assert.Equal(t, PlaceholderValue, w.Meaning)
		assert.Equal(t, "", w.Phoneme)
		assert.False(t, w.Published)
		assert.False(t, w.Verified)
		assert.Equal(t, CompletionIncomplete, w.CompletionStatus)
	})

	t.Run("proposed fields are stored", func(t *testing.T) {
		pos := "noun"
		word := "wolo"
		meaning := "book"
		w := NewPlaceholderWord(WordFields{Word: &word, Meaning: &meaning, PartOfSpeech: &pos}, now)
		assert.Equal(t, "wolo", w.Word)
		assert.Equal(t, "book", w.Meaning)
		require.NotNil(t, w.PartOfSpeech)
		assert.Equal(t, "noun", *w.PartOfSpeech)
		// Still incomplete until its contribution is approved
		assert.Equal(t, CompletionIncomplete, w.CompletionStatus)
	})
}

func TestWordFieldsApplyTo(t *testing.T) {
	phoneme := "nu"
	empty := ""
	padded := "  water  "

	w := &Word{Word: "nu", Phoneme: "", Meaning: "old meaning"}
	w.RecomputeCompletion()
	require.Equal(t, CompletionIncomplete, w.CompletionStatus)

	WordFields{Phoneme: &phoneme, Meaning: &padded, ExampleUsage: &empty}.ApplyTo(w)

	assert.Equal(t, "nu", w.Phoneme)
	assert.Equal(t, "water", w.Meaning, "merged values are trimmed")
	assert.Nil(t, w.ExampleUsage, "empty proposed fields do not overwrite")
	assert.Equal(t, CompletionComplete, w.CompletionStatus)
}

func TestSnapshotWordFields(t *testing.T) {
	pos := "noun"
	w := &Word{Word: "loo", Phoneme: "loː", Meaning: "fish", PartOfSpeech: &pos}

	snap := SnapshotWordFields(w)
	require.NotNil(t, snap.Word)
	assert.Equal(t, "loo", *snap.Word)
	require.NotNil(t, snap.Meaning)
	assert.Equal(t, "fish", *snap.Meaning)
	assert.Equal(t, &pos, snap.PartOfSpeech)

	// Snapshot is detached from later word mutations
	w.Meaning = "meat"
	assert.Equal(t, "fish", *snap.Meaning)
}
