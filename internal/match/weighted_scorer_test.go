package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizmatch-engine/internal/domain"
	"bizmatch-engine/internal/facet"
)

func i64(v int64) *int64 { return &v }

func shop() domain.Listing {
	return domain.Listing{
		ID:          "1",
		Name:        "Premier Auto Service Center",
		Category:    "Full Service Auto Repair",
		Location:    "Plano, TX",
		AskingPrice: 850000,
		Revenue:     1200000,
		YearsInOp:   4,
	}
}

func TestScore_NeutralBaseline(t *testing.T) {
	// No facets set: everything is exactly 50 with no reasons.
	s := NewWeightedScorer(DefaultWeights())

	for _, l := range []domain.Listing{shop(), {ID: "2", Express: true, YearsInOp: 30}} {
		res := s.Score(l, facet.Facets{}, domain.InteractionRecord{})
		assert.Equal(t, 50, res.Value)
		assert.Empty(t, res.Reasons)
	}
}

func TestScore_CategoryAndExpress(t *testing.T) {
	s := NewWeightedScorer(DefaultWeights())

	l := shop()
	l.Express = true
	res := s.Score(l, facet.Facets{Categories: []string{"Full Service Auto Repair"}}, domain.InteractionRecord{})

	assert.GreaterOrEqual(t, res.Value, 75) // 50 + 15 + 10
	require.Len(t, res.Reasons, 2)
	assert.Equal(t, "Preferred category: Full Service Auto Repair", res.Reasons[0])
	assert.Equal(t, "Express seller", res.Reasons[1])
}

func TestScore_ReasonOrder(t *testing.T) {
	s := NewWeightedScorer(DefaultWeights())

	l := shop()
	l.Express = true
	l.YearsInOp = 15
	f := facet.Facets{
		PriceMin:     i64(500000),
		PriceMax:     i64(900000),
		Categories:   []string{"Full Service Auto Repair"},
		Locations:    []string{"Plano, TX"},
		RevenueRange: domain.Revenue1mTo2m,
	}

	res := s.Score(l, f, domain.InteractionRecord{})
	assert.Equal(t, 100, res.Value) // 50+20+15+15+10+10+5 clamped
	assert.Equal(t, []string{
		"Within budget range",
		"Preferred category: Full Service Auto Repair",
		"Preferred location: Plano, TX",
		"Express seller",
		"Revenue in target range",
		"Established track record",
	}, res.Reasons)
}

func TestScore_Dismissed(t *testing.T) {
	s := NewWeightedScorer(DefaultWeights())

	f := facet.Facets{Categories: []string{"Full Service Auto Repair"}}
	rec := domain.InteractionRecord{Dismissed: true}

	res := s.Score(shop(), f, rec)
	assert.Equal(t, 0, res.Value, "dismissed listings must never resurface as matches")
	assert.Empty(t, res.Reasons)

	// Clearing the dismissal restores the normal score.
	rec.Dismissed = false
	res = s.Score(shop(), f, rec)
	assert.Equal(t, 65, res.Value)
}

func TestScore_Bounds(t *testing.T) {
	s := NewWeightedScorer(DefaultWeights())
	f := facet.Facets{
		PriceMax:     i64(10_000_000),
		Categories:   []string{"Full Service Auto Repair", "Quick Lube"},
		Locations:    []string{"Plano, TX", "Dallas, TX"},
		RevenueRange: domain.Revenue1mTo2m,
	}

	cases := []domain.Listing{
		shop(),
		{ID: "a"},
		{ID: "b", Express: true, YearsInOp: 99, Category: "Quick Lube", Location: "Dallas, TX", Revenue: 1_500_000},
	}
	for _, l := range cases {
		res := s.Score(l, f, domain.InteractionRecord{})
		assert.GreaterOrEqual(t, res.Value, 0)
		assert.LessOrEqual(t, res.Value, 100)
	}
}

func TestScore_PriceOutsideRangeNoBonus(t *testing.T) {
	s := NewWeightedScorer(DefaultWeights())

	res := s.Score(shop(), facet.Facets{PriceMax: i64(100)}, domain.InteractionRecord{})
	assert.Equal(t, 50, res.Value)
	assert.Empty(t, res.Reasons)
}

func TestScore_CustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.Express = 40
	s := NewWeightedScorer(w)

	l := shop()
	l.Express = true
	res := s.Score(l, facet.Facets{Locations: []string{"Nowhere"}}, domain.InteractionRecord{})
	assert.Equal(t, 90, res.Value)
	assert.Equal(t, []string{"Express seller"}, res.Reasons)
}

func TestNewWeightedScorer_ZeroValueGetsDefaults(t *testing.T) {
	s := NewWeightedScorer(Weights{})
	assert.Equal(t, DefaultWeights(), s.W)
}
