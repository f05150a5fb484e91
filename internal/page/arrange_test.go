package page

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizmatch-engine/internal/domain"
	"bizmatch-engine/internal/match"
)

func scored(id string, score int, price int64) Scored {
	return Scored{
		Listing: domain.Listing{ID: id, AskingPrice: price},
		Match:   match.Result{Value: score},
	}
}

func itemIDs(p Page) []string {
	out := make([]string, len(p.Items))
	for i, s := range p.Items {
		out[i] = s.Listing.ID
	}
	return out
}

func TestArrange_CumulativePages(t *testing.T) {
	in := make([]Scored, 12)
	for i := range in {
		in[i] = scored(fmt.Sprintf("%02d", i), i, int64(i))
	}

	p := Arrange(in, SortPriceAsc, 6, 2)
	assert.Len(t, p.Items, 12)
	assert.False(t, p.HasMore)
	assert.Equal(t, 12, p.Total)

	p = Arrange(in, SortPriceAsc, 6, 1)
	assert.Len(t, p.Items, 6)
	assert.True(t, p.HasMore)
	assert.Equal(t, 12, p.Total)
}

func TestArrange_PriceAscMonotonic(t *testing.T) {
	in := []Scored{
		scored("b", 0, 500),
		scored("a", 0, 500), // tie with b, id breaks it
		scored("c", 0, 100),
		scored("d", 0, 900),
	}

	p := Arrange(in, SortPriceAsc, 10, 1)
	require.Len(t, p.Items, 4)

	for i := 1; i < len(p.Items); i++ {
		assert.GreaterOrEqual(t, p.Items[i].Listing.AskingPrice, p.Items[i-1].Listing.AskingPrice)
	}
	assert.Equal(t, []string{"c", "a", "b", "d"}, itemIDs(p))
}

func TestArrange_MatchScoreDesc(t *testing.T) {
	in := []Scored{
		scored("z", 70, 0),
		scored("a", 95, 0),
		scored("m", 70, 0), // ties with z, id ascending
	}

	p := Arrange(in, SortMatchScore, 10, 1)
	assert.Equal(t, []string{"a", "m", "z"}, itemIDs(p))
}

func TestArrange_Newest(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	in := []Scored{
		{Listing: domain.Listing{ID: "old", DateAdded: day(1)}},
		{Listing: domain.Listing{ID: "new", DateAdded: day(20)}},
		{Listing: domain.Listing{ID: "mid", DateAdded: day(10)}},
	}

	p := Arrange(in, SortNewest, 10, 1)
	assert.Equal(t, []string{"new", "mid", "old"}, itemIDs(p))
}

func TestArrange_Location(t *testing.T) {
	in := []Scored{
		{Listing: domain.Listing{ID: "1", Location: "Plano, TX"}},
		{Listing: domain.Listing{ID: "2", Location: "Arlington, TX"}},
		{Listing: domain.Listing{ID: "3", Location: "Dallas, TX"}},
	}

	p := Arrange(in, SortLocation, 10, 1)
	assert.Equal(t, []string{"2", "3", "1"}, itemIDs(p))
}

func TestArrange_RevenueDesc(t *testing.T) {
	in := []Scored{
		{Listing: domain.Listing{ID: "1", Revenue: 500}},
		{Listing: domain.Listing{ID: "2", Revenue: 900}},
	}

	p := Arrange(in, SortRevenueDesc, 10, 1)
	assert.Equal(t, []string{"2", "1"}, itemIDs(p))
}

func TestArrange_DoesNotMutateInput(t *testing.T) {
	in := []Scored{scored("b", 0, 2), scored("a", 0, 1)}

	_ = Arrange(in, SortPriceAsc, 10, 1)
	assert.Equal(t, "b", in[0].Listing.ID)
}

func TestArrange_PageCountBeyondEnd(t *testing.T) {
	in := []Scored{scored("a", 0, 1), scored("b", 0, 2)}

	p := Arrange(in, SortPriceAsc, 6, 5)
	assert.Len(t, p.Items, 2)
	assert.False(t, p.HasMore)
}

func TestArrange_Empty(t *testing.T) {
	p := Arrange(nil, SortMatchScore, 6, 1)
	assert.Empty(t, p.Items)
	assert.False(t, p.HasMore)
	assert.Equal(t, 0, p.Total)
}

func TestParseSortKey(t *testing.T) {
	for _, s := range []string{"match-score", "newest", "price-asc", "price-desc", "revenue-desc", "location"} {
		k, err := ParseSortKey(s)
		require.NoError(t, err)
		assert.Equal(t, SortKey(s), k)
	}

	_, err := ParseSortKey("alphabetical")
	assert.Error(t, err)
}
