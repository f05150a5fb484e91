package facet

import (
	"fmt"
	"strconv"
	"strings"

	"bizmatch-engine/internal/domain"
)

// QuizAnswers is the guided-questionnaire input. Buyers who don't want to
// drive the filter panel answer a few questions instead; the answers map onto
// the same facets explicit filtering uses.
type QuizAnswers struct {
	// Budget is "min-max" in whole dollars, e.g. "0-500000". A trailing open
	// bound may be omitted: "500000-".
	Budget string `json:"budget,omitempty"`
	// Locations the buyer would operate in.
	Locations []string `json:"locations,omitempty"`
	// Categories of business the buyer is interested in.
	Categories []string `json:"categories,omitempty"`
	// WantsExpress is set when the buyer asked for a fast close.
	WantsExpress bool `json:"wantsExpress,omitempty"`
	// RevenueRange is one of the fixed bucket names.
	RevenueRange string `json:"revenueRange,omitempty"`
}

// FromQuiz maps questionnaire answers onto Facets. The result is validated;
// a malformed budget answer is a facet configuration error, same as an
// explicit bad filter.
func FromQuiz(a QuizAnswers) (Facets, error) {
	var f Facets

	if a.Budget != "" {
		min, max, err := parseBudget(a.Budget)
		if err != nil {
			return Facets{}, err
		}
		f.PriceMin = min
		f.PriceMax = max
	}
	f.Locations = a.Locations
	f.Categories = a.Categories
	f.ExpressOnly = a.WantsExpress
	if a.RevenueRange != "" {
		rr, err := domain.ParseRevenueRange(a.RevenueRange)
		if err != nil {
			return Facets{}, fmt.Errorf("%w: %q", ErrUnknownRevenueRange, a.RevenueRange)
		}
		f.RevenueRange = rr
	}

	if err := f.Validate(); err != nil {
		return Facets{}, err
	}
	return f, nil
}

func parseBudget(s string) (min, max *int64, err error) {
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return nil, nil, fmt.Errorf("facet: budget %q must be \"min-max\"", s)
	}
	if lo = strings.TrimSpace(lo); lo != "" {
		v, perr := strconv.ParseInt(lo, 10, 64)
		if perr != nil {
			return nil, nil, fmt.Errorf("facet: budget min %q: %w", lo, perr)
		}
		min = &v
	}
	if hi = strings.TrimSpace(hi); hi != "" {
		v, perr := strconv.ParseInt(hi, 10, 64)
		if perr != nil {
			return nil, nil, fmt.Errorf("facet: budget max %q: %w", hi, perr)
		}
		max = &v
	}
	return min, max, nil
}
