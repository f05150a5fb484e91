package match

import (
	"fmt"
	"strings"

	"bizmatch-engine/internal/domain"
	"bizmatch-engine/internal/facet"
)

// Weights is the scoring policy. The defaults reproduce the tuned heuristic
// the product ships with; they are configuration, not law.
type Weights struct {
	Base           int `yaml:"base" json:"base"`
	PriceInRange   int `yaml:"price_in_range" json:"price_in_range"`
	CategoryMatch  int `yaml:"category_match" json:"category_match"`
	LocationMatch  int `yaml:"location_match" json:"location_match"`
	Express        int `yaml:"express" json:"express"`
	RevenueInRange int `yaml:"revenue_in_range" json:"revenue_in_range"`
	Established    int `yaml:"established" json:"established"`
	// EstablishedYears is the tenure threshold for the Established bonus.
	EstablishedYears int `yaml:"established_years" json:"established_years"`
}

func DefaultWeights() Weights {
	return Weights{
		Base:             50,
		PriceInRange:     20,
		CategoryMatch:    15,
		LocationMatch:    15,
		Express:          10,
		RevenueInRange:   10,
		Established:      5,
		EstablishedYears: 10,
	}
}

// WeightedScorer scores a listing against the active facets: a neutral base
// plus one capped bonus per matching criterion, clamped to [0,100]. A
// dismissed listing always scores 0 so it cannot resurface as a high match.
type WeightedScorer struct {
	W Weights
}

func NewWeightedScorer(w Weights) WeightedScorer {
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	return WeightedScorer{W: w}
}

func (s WeightedScorer) Score(l domain.Listing, f facet.Facets, rec domain.InteractionRecord) Result {
	if rec.Dismissed {
		return Result{Value: 0}
	}

	score := s.W.Base
	var reasons []string

	if f.Empty() {
		// Neutral baseline: nothing to match against.
		return Result{Value: clamp(score)}
	}

	if inPriceRange(l, f) {
		score += s.W.PriceInRange
		reasons = append(reasons, "Within budget range")
	}
	if cat, ok := matchedCategory(l, f); ok {
		score += s.W.CategoryMatch
		reasons = append(reasons, fmt.Sprintf("Preferred category: %s", cat))
	}
	if loc, ok := matchedLocation(l, f); ok {
		score += s.W.LocationMatch
		reasons = append(reasons, fmt.Sprintf("Preferred location: %s", loc))
	}
	if l.Express {
		score += s.W.Express
		reasons = append(reasons, "Express seller")
	}
	if f.RevenueRange != "" && f.RevenueRange.Contains(l.Revenue) {
		score += s.W.RevenueInRange
		reasons = append(reasons, "Revenue in target range")
	}
	if l.YearsInOp >= s.W.EstablishedYears {
		score += s.W.Established
		reasons = append(reasons, "Established track record")
	}

	return Result{Value: clamp(score), Reasons: reasons}
}

func inPriceRange(l domain.Listing, f facet.Facets) bool {
	if f.PriceMin == nil && f.PriceMax == nil {
		return false
	}
	if f.PriceMin != nil && l.AskingPrice < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && l.AskingPrice > *f.PriceMax {
		return false
	}
	return true
}

func matchedCategory(l domain.Listing, f facet.Facets) (string, bool) {
	for _, c := range f.Categories {
		if equalFold(c, l.Category) {
			return l.Category, true
		}
	}
	return "", false
}

func matchedLocation(l domain.Listing, f facet.Facets) (string, bool) {
	for _, loc := range f.Locations {
		if equalFold(loc, l.Location) {
			return l.Location, true
		}
	}
	return "", false
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
