package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func record(id, name string, price int64) RawRecord {
	return RawRecord{"id": id, "name": name, "askingPrice": float64(price)}
}

func TestStore_Load_Normalizes(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))

	rep := s.Load([]RawRecord{
		{
			"id":               "1",
			"name":             "Premier Auto Service Center",
			"type":             "Full Service Auto Repair",
			"location":         "Plano, TX",
			"askingPrice":      float64(850000),
			"cashFlow":         float64(285000),
			"revenue":          float64(1200000),
			"yearsInOperation": float64(12),
			"badges":           []any{"express-seller", "verified"},
			"dateAdded":        "2024-01-15",
			"description":      "Established full-service shop.",
			"image":            "https://example.com/shop.jpg",
		},
	})

	require.Equal(t, 1, rep.Loaded)
	require.Empty(t, rep.Skipped)

	l := s.All()[0]
	assert.Equal(t, "1", l.ID)
	assert.Equal(t, "Premier Auto Service Center", l.Name)
	assert.Equal(t, "Full Service Auto Repair", l.Category)
	assert.Equal(t, "Plano, TX", l.Location)
	assert.Equal(t, int64(850000), l.AskingPrice)
	assert.Equal(t, int64(1200000), l.Revenue)
	assert.Equal(t, int64(285000), l.CashFlow)
	assert.Equal(t, 12, l.YearsInOp)
	assert.True(t, l.Express, "express-seller badge should set the express flag")
	assert.Equal(t, []string{"express-seller", "verified"}, l.Badges)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), l.DateAdded)

	// Unknown fields are preserved, not consumed.
	assert.Equal(t, "https://example.com/shop.jpg", l.Extra["image"])
}

func TestStore_Load_SkipsMalformed(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))

	rep := s.Load([]RawRecord{
		record("1", "Good Shop", 500000),
		{"name": "No ID", "askingPrice": float64(100)},
		{"id": "3", "askingPrice": float64(100)},        // missing name
		{"id": "4", "name": "No Price"},                 // missing askingPrice
		{"id": "5", "name": "Bad", "askingPrice": -1.0}, // negative
		record("6", "Also Good", 700000),
	})

	assert.Equal(t, 2, rep.Loaded)
	require.Len(t, rep.Skipped, 4)
	assert.Equal(t, "", rep.Skipped[0].ID)
	assert.Equal(t, "3", rep.Skipped[1].ID)
	assert.Contains(t, rep.Skipped[2].Reason, "askingPrice")

	ids := []string{s.All()[0].ID, s.All()[1].ID}
	assert.Equal(t, []string{"1", "6"}, ids, "survivors keep insertion order")
}

func TestStore_Load_DuplicateIDKeepsFirst(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))

	rep := s.Load([]RawRecord{
		record("1", "First", 100),
		record("1", "Second", 200),
	})

	assert.Equal(t, 1, rep.Loaded)
	require.Len(t, rep.Skipped, 1)
	assert.Equal(t, "duplicate id", rep.Skipped[0].Reason)
	assert.Equal(t, "First", s.All()[0].Name)
}

func TestStore_Load_Replaces(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))

	s.Load([]RawRecord{record("1", "Old", 100)})
	s.Load([]RawRecord{record("2", "New", 200)})

	require.Equal(t, 1, s.Len())
	assert.Equal(t, "2", s.All()[0].ID)
}

func TestStore_Load_NumericID(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))

	rep := s.Load([]RawRecord{
		{"id": float64(7), "name": "Numeric", "askingPrice": float64(100)},
	})

	require.Equal(t, 1, rep.Loaded)
	assert.Equal(t, "7", s.All()[0].ID)
}

func TestStore_Load_BadDateIsMalformed(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))

	rep := s.Load([]RawRecord{
		{"id": "1", "name": "X", "askingPrice": float64(1), "dateAdded": "last tuesday"},
	})

	assert.Equal(t, 0, rep.Loaded)
	require.Len(t, rep.Skipped, 1)
	assert.Contains(t, rep.Skipped[0].Reason, "dateAdded")
}
