package domain

import "time"

// Listing is one business for sale, normalized from a raw catalog record.
// Immutable once loaded.
type Listing struct {
	ID          string
	Name        string
	Category    string
	Location    string
	AskingPrice int64
	Revenue     int64 // trailing twelve months
	CashFlow    int64 // annual
	YearsInOp   int
	Express     bool
	DateAdded   time.Time
	Badges      []string
	Description string

	// Extra keeps fields the normalizer does not recognize, untouched.
	// Scoring and filtering never look at them.
	Extra map[string]any
}
