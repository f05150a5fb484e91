package facet

import (
	"errors"
	"fmt"
	"strings"

	"bizmatch-engine/internal/domain"
)

var (
	ErrInvalidRange        = errors.New("facet: priceMin greater than priceMax")
	ErrUnknownRevenueRange = errors.New("facet: unknown revenue range")
)

// Facets is one conjunction of independent filter dimensions. A nil/empty
// field means "no constraint"; the zero value is the identity filter.
type Facets struct {
	Search       string              `json:"search,omitempty" yaml:"search,omitempty"`
	PriceMin     *int64              `json:"priceMin,omitempty" yaml:"price_min,omitempty"`
	PriceMax     *int64              `json:"priceMax,omitempty" yaml:"price_max,omitempty"`
	Locations    []string            `json:"locations,omitempty" yaml:"locations,omitempty"`
	Categories   []string            `json:"categories,omitempty" yaml:"categories,omitempty"`
	ExpressOnly  bool                `json:"expressOnly,omitempty" yaml:"express_only,omitempty"`
	RevenueRange domain.RevenueRange `json:"revenueRange,omitempty" yaml:"revenue_range,omitempty"`
}

// Empty reports whether no facet is set at all.
func (f Facets) Empty() bool {
	return f.Search == "" &&
		f.PriceMin == nil && f.PriceMax == nil &&
		len(f.Locations) == 0 && len(f.Categories) == 0 &&
		!f.ExpressOnly && f.RevenueRange == ""
}

// Validate fails fast on configurations that can never match anything for the
// wrong reason: an inverted price range or an unrecognized revenue bucket.
func (f Facets) Validate() error {
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		return fmt.Errorf("%w: min=%d max=%d", ErrInvalidRange, *f.PriceMin, *f.PriceMax)
	}
	if f.RevenueRange != "" {
		if _, err := domain.ParseRevenueRange(string(f.RevenueRange)); err != nil {
			return fmt.Errorf("%w: %q", ErrUnknownRevenueRange, f.RevenueRange)
		}
	}
	return nil
}

// Apply returns the subset of listings satisfying every non-empty facet,
// preserving input order. It never mutates its inputs; identical inputs yield
// identical results. Callers must Validate first; Apply returns the error for
// an invalid configuration rather than silently matching nothing.
func Apply(listings []domain.Listing, f Facets) ([]domain.Listing, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.Empty() {
		return listings, nil
	}

	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if matches(l, f) {
			out = append(out, l)
		}
	}
	return out, nil
}

func matches(l domain.Listing, f Facets) bool {
	if f.Search != "" && !matchesSearch(l, f.Search) {
		return false
	}
	if f.PriceMin != nil && l.AskingPrice < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && l.AskingPrice > *f.PriceMax {
		return false
	}
	if len(f.Locations) > 0 && !containsFold(f.Locations, l.Location) {
		return false
	}
	if len(f.Categories) > 0 && !containsFold(f.Categories, l.Category) {
		return false
	}
	if f.ExpressOnly && !l.Express {
		return false
	}
	if f.RevenueRange != "" && !f.RevenueRange.Contains(l.Revenue) {
		return false
	}
	return true
}

func matchesSearch(l domain.Listing, term string) bool {
	haystack := strings.ToLower(l.Name + " " + l.Description + " " + l.Location + " " + l.Category)
	return strings.Contains(haystack, strings.ToLower(strings.TrimSpace(term)))
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}

// Labels renders the active filters for display, in a fixed facet order.
func (f Facets) Labels() []string {
	var labels []string
	if f.Search != "" {
		labels = append(labels, fmt.Sprintf("Search: %q", f.Search))
	}
	switch {
	case f.PriceMin != nil && f.PriceMax != nil:
		labels = append(labels, fmt.Sprintf("Price $%d-$%d", *f.PriceMin, *f.PriceMax))
	case f.PriceMin != nil:
		labels = append(labels, fmt.Sprintf("Price $%d+", *f.PriceMin))
	case f.PriceMax != nil:
		labels = append(labels, fmt.Sprintf("Price up to $%d", *f.PriceMax))
	}
	for _, loc := range f.Locations {
		labels = append(labels, "Location: "+loc)
	}
	for _, cat := range f.Categories {
		labels = append(labels, "Category: "+cat)
	}
	if f.ExpressOnly {
		labels = append(labels, "Express sellers only")
	}
	if f.RevenueRange != "" {
		labels = append(labels, "Revenue "+f.RevenueRange.Label())
	}
	return labels
}
