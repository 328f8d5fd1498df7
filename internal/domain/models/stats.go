package models

import "time"

// DictionaryStats is the singleton cached aggregate read by dashboards.
// It is recomputed lazily and is not transactionally tied to the
// moderation engines; UpdatedAt drives the freshness check.
type DictionaryStats struct {
	TotalWords           int       `json:"total_words"`
	VerifiedWords        int       `json:"verified_words"`
	IncompleteWords      int       `json:"incomplete_words"`
	PendingContributions int       `json:"pending_contributions"`
	ActiveContributors   int       `json:"active_contributors"`
	OpenFlags            int       `json:"open_flags"`
	UpdatedAt            time.Time `json:"updated_at"`
}
