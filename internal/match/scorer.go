package match

import (
	"bizmatch-engine/internal/domain"
	"bizmatch-engine/internal/facet"
)

// Result is the computed compatibility of one listing with the current
// preference facets. Reasons follow the bonus evaluation order, so display is
// deterministic.
type Result struct {
	Value   int      `json:"value"`
	Reasons []string `json:"reasons,omitempty"`
}

type Scorer interface {
	Score(l domain.Listing, f facet.Facets, rec domain.InteractionRecord) Result
}
