// Package seed loads the starter lexicon shipped with the binary.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"gadict/internal/domain/models"
)

//go:embed words.yaml
var wordsYAML []byte

// Entry is one row of the starter lexicon
type Entry struct {
	Word         string `yaml:"word"`
	Phoneme      string `yaml:"phoneme"`
	Meaning      string `yaml:"meaning"`
	PartOfSpeech string `yaml:"part_of_speech"`
	ExampleUsage string `yaml:"example_usage"`
}

type wordsFile struct {
	Words []Entry `yaml:"words"`
}

// LoadWords parses the embedded starter lexicon
func LoadWords() ([]Entry, error) {
	var f wordsFile
	if err := yaml.Unmarshal(wordsYAML, &f); err != nil {
		return nil, fmt.Errorf("parse words.yaml: %w", err)
	}
	return f.Words, nil
}

// ToWord converts a seed entry into a published, verified dictionary
// entry. Completion status is derived from the fields present.
func (e Entry) ToWord(now time.Time) *models.Word {
	w := &models.Word{
		ID:        uuid.New(),
		Word:      e.Word,
		Phoneme:   e.Phoneme,
		Meaning:   e.Meaning,
		Verified:  true,
		Published: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if e.PartOfSpeech != "" {
		pos := e.PartOfSpeech
		w.PartOfSpeech = &pos
	}
	if e.ExampleUsage != "" {
		ex := e.ExampleUsage
		w.ExampleUsage = &ex
	}
	w.RecomputeCompletion()
	return w
}
