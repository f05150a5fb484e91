package domain

// InteractionRecord is the per-listing user interaction state. The zero value
// is the default for listings the user has never touched.
type InteractionRecord struct {
	ListingID string `json:"listing_id"`
	Favorite  bool   `json:"favorite"`
	Interest  bool   `json:"interest"`
	Dismissed bool   `json:"dismissed"`
}

// Zero reports whether the record carries no interaction state at all.
func (r InteractionRecord) Zero() bool {
	return !r.Favorite && !r.Interest && !r.Dismissed
}
