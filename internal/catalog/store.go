package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"bizmatch-engine/internal/domain"
)

// RawRecord is one untyped listing record as delivered by a catalog source.
type RawRecord map[string]any

// SkippedRecord describes one record dropped during normalization.
type SkippedRecord struct {
	ID     string `json:"id"` // best-effort, may be empty when id itself was missing
	Reason string `json:"reason"`
}

// LoadReport summarizes a Load call. A load with skipped records is still a
// successful load.
type LoadReport struct {
	Loaded  int             `json:"loaded"`
	Skipped []SkippedRecord `json:"skipped,omitempty"`
}

// Store holds the normalized, insertion-ordered listing collection for one
// session. Load replaces the whole collection; listings are immutable after
// that.
type Store struct {
	listings []domain.Listing
	log      *zap.Logger
}

func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{log: log}
}

// Load normalizes raw records into the store, replacing any previous
// collection. Records missing a required field (id, name, askingPrice) are
// skipped and reported, never fatal. Duplicate ids keep the first occurrence.
func (s *Store) Load(raw []RawRecord) LoadReport {
	var rep LoadReport
	listings := make([]domain.Listing, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for i, rec := range raw {
		l, err := normalize(rec)
		if err != nil {
			id := stringField(rec, "id")
			s.log.Warn("skipping malformed record",
				zap.Int("index", i), zap.String("id", id), zap.Error(err))
			rep.Skipped = append(rep.Skipped, SkippedRecord{ID: id, Reason: err.Error()})
			continue
		}
		if seen[l.ID] {
			s.log.Warn("skipping duplicate listing id", zap.String("id", l.ID))
			rep.Skipped = append(rep.Skipped, SkippedRecord{ID: l.ID, Reason: "duplicate id"})
			continue
		}
		seen[l.ID] = true
		listings = append(listings, l)
	}

	s.listings = listings
	rep.Loaded = len(listings)
	return rep
}

// All returns the normalized collection in insertion order. Callers must not
// mutate the returned slice.
func (s *Store) All() []domain.Listing {
	return s.listings
}

func (s *Store) Len() int { return len(s.listings) }

// knownKeys are the record fields the normalizer consumes; everything else
// lands in Listing.Extra untouched.
var knownKeys = map[string]bool{
	"id": true, "name": true, "type": true, "location": true,
	"askingPrice": true, "revenue": true, "cashFlow": true,
	"yearsInOperation": true, "express": true, "dateAdded": true,
	"badges": true, "description": true,
}

func normalize(rec RawRecord) (domain.Listing, error) {
	var l domain.Listing

	l.ID = stringField(rec, "id")
	if l.ID == "" {
		return l, fmt.Errorf("missing id")
	}
	l.Name = strings.TrimSpace(stringField(rec, "name"))
	if l.Name == "" {
		return l, fmt.Errorf("missing name")
	}

	price, ok := intField(rec, "askingPrice")
	if !ok {
		return l, fmt.Errorf("missing askingPrice")
	}
	if price < 0 {
		return l, fmt.Errorf("negative askingPrice %d", price)
	}
	l.AskingPrice = price

	if v, ok := intField(rec, "revenue"); ok {
		if v < 0 {
			return l, fmt.Errorf("negative revenue %d", v)
		}
		l.Revenue = v
	}
	if v, ok := intField(rec, "cashFlow"); ok {
		if v < 0 {
			return l, fmt.Errorf("negative cashFlow %d", v)
		}
		l.CashFlow = v
	}
	if v, ok := intField(rec, "yearsInOperation"); ok {
		if v < 0 {
			return l, fmt.Errorf("negative yearsInOperation %d", v)
		}
		l.YearsInOp = int(v)
	}

	l.Category = strings.TrimSpace(stringField(rec, "type"))
	l.Location = strings.TrimSpace(stringField(rec, "location"))
	l.Description = stringField(rec, "description")

	if b, ok := rec["express"].(bool); ok {
		l.Express = b
	}
	for _, badge := range stringSliceField(rec, "badges") {
		l.Badges = append(l.Badges, badge)
		if badge == "express-seller" {
			l.Express = true
		}
	}

	if raw := stringField(rec, "dateAdded"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return l, fmt.Errorf("bad dateAdded %q: %w", raw, err)
		}
		l.DateAdded = t
	} else if t, ok := rec["dateAdded"].(time.Time); ok {
		l.DateAdded = t
	}

	for k, v := range rec {
		if knownKeys[k] {
			continue
		}
		if l.Extra == nil {
			l.Extra = make(map[string]any)
		}
		l.Extra[k] = v
	}

	return l, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

func stringField(rec RawRecord, key string) string {
	switch v := rec[key].(type) {
	case string:
		return v
	case float64:
		// JSON decodes numeric ids as float64
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	}
	return ""
}

func intField(rec RawRecord, key string) (int64, bool) {
	switch v := rec[key].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

func stringSliceField(rec RawRecord, key string) []string {
	switch v := rec[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
