package config

import "time"

const (
	// MaxHeadwordLength is the maximum length for dictionary headwords.
	// Limited to 255 to fit comfortably in an indexed TEXT column and
	// provide reasonable UX (headwords are single words or short phrases).
	MaxHeadwordLength = 255

	// MaxPhonemeLength is the maximum length for phonemic transcriptions.
	MaxPhonemeLength = 255

	// MaxMeaningLength is the maximum length for English meanings.
	MaxMeaningLength = 1000

	// MaxExampleUsageLength is the maximum length for example sentences.
	MaxExampleUsageLength = 1000

	// MinFlagDescriptionLength forces reporters to explain what is wrong
	// instead of submitting bare flags.
	MinFlagDescriptionLength = 10

	// MaxFlagDescriptionLength is the maximum length for flag descriptions.
	MaxFlagDescriptionLength = 2000

	// MaxReviewNotesLength is the maximum length for reviewer notes and
	// flag resolution text.
	MaxReviewNotesLength = 2000

	// DefaultPageSize is the page size for list endpoints when the
	// caller does not specify one.
	DefaultPageSize = 20

	// MaxPageSize caps the page size for list endpoints.
	MaxPageSize = 100
)

const (
	// DefaultStatsFreshness is how long a DictionaryStats snapshot is
	// served from cache before a read triggers a recompute.
	DefaultStatsFreshness = time.Hour

	// ActiveContributorWindow bounds the lastActive lookback used when
	// counting active contributors for the stats snapshot.
	ActiveContributorWindow = 30 * 24 * time.Hour
)
