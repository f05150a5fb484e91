package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizmatch-engine/internal/domain"
)

func i64(v int64) *int64 { return &v }

func listings() []domain.Listing {
	return []domain.Listing{
		{ID: "1", Name: "Plano Auto Care", Category: "Full Service Auto Repair", Location: "Plano, TX", AskingPrice: 300000, Revenue: 650000, Express: true},
		{ID: "2", Name: "Dallas Body Works", Category: "Auto Body Shop", Location: "Dallas, TX", AskingPrice: 500000, Revenue: 980000},
		{ID: "3", Name: "Irving Quick Lube", Category: "Quick Lube", Location: "Irving, TX", AskingPrice: 900000, Revenue: 1850000, Express: true},
	}
}

func ids(ls []domain.Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func TestApply_PriceMax(t *testing.T) {
	// Three listings at {300000, 500000, 900000}; priceMax 600000 keeps the
	// first two in original relative order.
	got, err := Apply(listings(), Facets{PriceMax: i64(600000)})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(got))
}

func TestApply_Identity(t *testing.T) {
	in := listings()
	got, err := Apply(in, Facets{})
	require.NoError(t, err)
	assert.Equal(t, ids(in), ids(got))
}

func TestApply_InvalidRangeFailsFast(t *testing.T) {
	_, err := Apply(listings(), Facets{PriceMin: i64(500), PriceMax: i64(100)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestApply_UnknownRevenueRange(t *testing.T) {
	_, err := Apply(listings(), Facets{RevenueRange: "10m-plus"})
	assert.ErrorIs(t, err, ErrUnknownRevenueRange)
}

func TestApply_Idempotent(t *testing.T) {
	f := Facets{PriceMax: i64(600000), Locations: []string{"Plano, TX", "Dallas, TX"}}

	once, err := Apply(listings(), f)
	require.NoError(t, err)
	twice, err := Apply(once, f)
	require.NoError(t, err)
	assert.Equal(t, ids(once), ids(twice))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := listings()
	_, err := Apply(in, Facets{ExpressOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids(in))
}

func TestApply_OrWithinFacet(t *testing.T) {
	got, err := Apply(listings(), Facets{Locations: []string{"Plano, TX", "Irving, TX"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestApply_AndAcrossFacets(t *testing.T) {
	got, err := Apply(listings(), Facets{
		Locations:   []string{"Plano, TX", "Irving, TX"},
		ExpressOnly: true,
		PriceMax:    i64(400000),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestApply_InclusiveBounds(t *testing.T) {
	got, err := Apply(listings(), Facets{PriceMin: i64(500000), PriceMax: i64(500000)})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestApply_RevenueRange(t *testing.T) {
	got, err := Apply(listings(), Facets{RevenueRange: domain.Revenue500kTo1m})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(got))
}

func TestApply_Search(t *testing.T) {
	got, err := Apply(listings(), Facets{Search: "body"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(got))

	got, err = Apply(listings(), Facets{Search: "tx"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestApply_EmptyResultIsNotError(t *testing.T) {
	got, err := Apply(listings(), Facets{PriceMin: i64(5_000_000)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFacets_Labels(t *testing.T) {
	f := Facets{
		PriceMin:     i64(300000),
		PriceMax:     i64(900000),
		Locations:    []string{"Plano, TX"},
		Categories:   []string{"Quick Lube"},
		ExpressOnly:  true,
		RevenueRange: domain.Revenue1mTo2m,
	}
	assert.Equal(t, []string{
		"Price $300000-$900000",
		"Location: Plano, TX",
		"Category: Quick Lube",
		"Express sellers only",
		"Revenue $1M - $2M",
	}, f.Labels())
}

func TestFacets_Empty(t *testing.T) {
	assert.True(t, Facets{}.Empty())
	assert.False(t, Facets{ExpressOnly: true}.Empty())
	assert.False(t, Facets{PriceMin: i64(0)}.Empty(), "an explicit zero bound is still a constraint")
}
