package page

import (
	"fmt"
	"sort"
	"strings"

	"bizmatch-engine/internal/domain"
	"bizmatch-engine/internal/match"
)

// SortKey selects the ordering of arranged results.
type SortKey string

const (
	SortMatchScore  SortKey = "match-score"
	SortNewest      SortKey = "newest"
	SortPriceAsc    SortKey = "price-asc"
	SortPriceDesc   SortKey = "price-desc"
	SortRevenueDesc SortKey = "revenue-desc"
	SortLocation    SortKey = "location"
)

func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortMatchScore, SortNewest, SortPriceAsc, SortPriceDesc, SortRevenueDesc, SortLocation:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Scored pairs a listing with its computed match result.
type Scored struct {
	Listing domain.Listing `json:"listing"`
	Match   match.Result   `json:"match"`
}

// Page is one cumulative slice of the arranged sequence.
type Page struct {
	Items   []Scored `json:"items"`
	HasMore bool     `json:"hasMore"`
	Total   int      `json:"total"` // size of the full arranged sequence
}

// Arrange sorts the scored listings by key and returns the first
// pageCount*pageSize items ("load more" semantics: page n includes pages
// 1..n). Ties always break by listing id ascending so the order is
// deterministic. Arrange is stateless and does not mutate its input.
func Arrange(scored []Scored, key SortKey, pageSize, pageCount int) Page {
	arranged := make([]Scored, len(scored))
	copy(arranged, scored)

	sort.SliceStable(arranged, func(i, j int) bool {
		a, b := arranged[i], arranged[j]
		if c := compare(a, b, key); c != 0 {
			return c < 0
		}
		return a.Listing.ID < b.Listing.ID
	})

	if pageSize <= 0 {
		pageSize = len(arranged)
	}
	if pageCount < 1 {
		pageCount = 1
	}

	n := pageCount * pageSize
	if n > len(arranged) {
		n = len(arranged)
	}

	return Page{
		Items:   arranged[:n],
		HasMore: n < len(arranged),
		Total:   len(arranged),
	}
}

// compare returns <0 when a sorts before b under key, 0 on a tie.
func compare(a, b Scored, key SortKey) int {
	switch key {
	case SortMatchScore:
		return cmpInt(b.Match.Value, a.Match.Value)
	case SortNewest:
		switch {
		case a.Listing.DateAdded.After(b.Listing.DateAdded):
			return -1
		case a.Listing.DateAdded.Before(b.Listing.DateAdded):
			return 1
		}
		return 0
	case SortPriceAsc:
		return cmpInt64(a.Listing.AskingPrice, b.Listing.AskingPrice)
	case SortPriceDesc:
		return cmpInt64(b.Listing.AskingPrice, a.Listing.AskingPrice)
	case SortRevenueDesc:
		return cmpInt64(b.Listing.Revenue, a.Listing.Revenue)
	case SortLocation:
		return strings.Compare(a.Listing.Location, b.Listing.Location)
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
