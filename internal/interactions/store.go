package interactions

import (
	"context"

	"bizmatch-engine/internal/domain"
)

// Predicate selects records for List queries.
type Predicate func(domain.InteractionRecord) bool

func Favorites(r domain.InteractionRecord) bool  { return r.Favorite }
func Interested(r domain.InteractionRecord) bool { return r.Interest }
func Dismissed(r domain.InteractionRecord) bool  { return r.Dismissed }

// Store persists per-listing interaction state. Mutators persist before
// returning: a nil error means the write is durable. Records are never
// expired; clearing every flag leaves an all-false record, which Get also
// returns for ids that were never touched.
type Store interface {
	Get(ctx context.Context, listingID string) (domain.InteractionRecord, error)
	SetFavorite(ctx context.Context, listingID string, v bool) error
	SetInterest(ctx context.Context, listingID string, v bool) error
	SetDismissed(ctx context.Context, listingID string, v bool) error
	// List returns the ids of records matching pred, sorted ascending.
	List(ctx context.Context, pred Predicate) ([]string, error)
	Close() error
}
