package interactions

import (
	"context"
	"sort"
	"sync"

	"bizmatch-engine/internal/domain"
)

// Memory is the in-process backend used in tests and when no durable store is
// configured. Writes are last-write-wins per id.
type Memory struct {
	mu   sync.RWMutex
	recs map[string]domain.InteractionRecord
}

func NewMemory() *Memory {
	return &Memory{recs: make(map[string]domain.InteractionRecord)}
}

func (m *Memory) Get(_ context.Context, listingID string) (domain.InteractionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.recs[listingID]
	if !ok {
		return domain.InteractionRecord{ListingID: listingID}, nil
	}
	return r, nil
}

func (m *Memory) SetFavorite(_ context.Context, listingID string, v bool) error {
	m.update(listingID, func(r *domain.InteractionRecord) { r.Favorite = v })
	return nil
}

func (m *Memory) SetInterest(_ context.Context, listingID string, v bool) error {
	m.update(listingID, func(r *domain.InteractionRecord) { r.Interest = v })
	return nil
}

func (m *Memory) SetDismissed(_ context.Context, listingID string, v bool) error {
	m.update(listingID, func(r *domain.InteractionRecord) { r.Dismissed = v })
	return nil
}

func (m *Memory) update(listingID string, fn func(*domain.InteractionRecord)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.recs[listingID]
	r.ListingID = listingID
	fn(&r)
	m.recs[listingID] = r
}

func (m *Memory) List(_ context.Context, pred Predicate) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for id, r := range m.recs {
		if pred(r) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *Memory) Close() error { return nil }
