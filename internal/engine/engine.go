package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"bizmatch-engine/internal/catalog"
	"bizmatch-engine/internal/domain"
	"bizmatch-engine/internal/events"
	"bizmatch-engine/internal/facet"
	"bizmatch-engine/internal/interactions"
	"bizmatch-engine/internal/match"
	"bizmatch-engine/internal/metrics"
	"bizmatch-engine/internal/page"
)

// State of the facade. Error is recoverable: a corrected Load or SetFilters
// call moves back to Ready/Filtered.
type State string

const (
	StateIdle     State = "idle"
	StateReady    State = "ready"
	StateFiltered State = "filtered"
	StateError    State = "error"
)

// View is what the presentation layer renders: the current cumulative page
// plus display metadata. Valid until the next engine call.
type View struct {
	State         State                   `json:"state"`
	Items         []page.Scored           `json:"items"`
	HasMore       bool                    `json:"hasMore"`
	Total         int                     `json:"total"`       // filtered result count
	CatalogSize   int                     `json:"catalogSize"` // loaded listing count
	Sort          page.SortKey            `json:"sort"`
	ActiveFilters []string                `json:"activeFilters,omitempty"`
	Skipped       []catalog.SkippedRecord `json:"skipped,omitempty"` // from the last load
	Error         string                  `json:"error,omitempty"`
}

// Options configures a new Engine.
type Options struct {
	Catalog      *catalog.Store
	Scorer       match.Scorer
	Interactions interactions.Store
	Hub          *events.Hub
	Metrics      *metrics.Metrics
	Log          *zap.Logger

	DefaultSort     page.SortKey
	DefaultPageSize int
}

// Engine coordinates catalog, filter, scorer, and paginator. All operations
// are synchronous and re-derive the full pipeline, so the view returned by
// any call reflects that call and every call before it, in call order.
type Engine struct {
	mu sync.Mutex

	catalog *catalog.Store
	scorer  match.Scorer
	inter   interactions.Store
	hub     *events.Hub
	metrics *metrics.Metrics
	log     *zap.Logger

	state     State
	lastErr   error
	facets    facet.Facets
	sortKey   page.SortKey
	pageSize  int
	pageCount int

	current    page.Page
	lastReport catalog.LoadReport
}

func New(opts Options) *Engine {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	sortKey := opts.DefaultSort
	if sortKey == "" {
		sortKey = page.SortNewest
	}
	pageSize := opts.DefaultPageSize
	if pageSize <= 0 {
		pageSize = 9
	}
	scorer := opts.Scorer
	if scorer == nil {
		scorer = match.NewWeightedScorer(match.DefaultWeights())
	}
	inter := opts.Interactions
	if inter == nil {
		inter = interactions.NewMemory()
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.NewStore(log)
	}
	return &Engine{
		catalog:   cat,
		scorer:    scorer,
		inter:     inter,
		hub:       opts.Hub,
		metrics:   opts.Metrics,
		log:       log,
		state:     StateIdle,
		sortKey:   sortKey,
		pageSize:  pageSize,
		pageCount: 1,
	}
}

// Load fetches the catalog source and replaces the listing collection.
// Malformed records are skipped and reported on the view, never fatal; a
// failing source moves the engine to Error until a corrected Load succeeds.
func (e *Engine) Load(ctx context.Context, src catalog.Source) (View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	raw, err := src.Fetch(ctx)
	if err != nil {
		e.state = StateError
		e.lastErr = fmt.Errorf("catalog load: %w", err)
		e.log.Error("catalog load failed", zap.Error(err))
		return e.view(), e.lastErr
	}

	rep := e.catalog.Load(raw)
	e.lastReport = rep
	e.metrics.ObserveLoad(len(rep.Skipped))
	e.log.Info("catalog loaded",
		zap.Int("loaded", rep.Loaded), zap.Int("skipped", len(rep.Skipped)))

	e.lastErr = nil
	e.pageCount = 1
	if err := e.recompute(ctx); err != nil {
		return e.view(), err
	}
	e.publish(events.TypeCatalogLoaded, map[string]any{
		"loaded": rep.Loaded, "skipped": len(rep.Skipped),
	})
	return e.view(), nil
}

// SetFilters replaces the active facets and resets pagination. An invalid
// configuration is rejected: the engine reports Error but keeps the previous
// facets and results, so a corrected call recovers in place.
func (e *Engine) SetFilters(ctx context.Context, f facet.Facets) (View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := f.Validate(); err != nil {
		e.state = StateError
		e.lastErr = err
		e.log.Warn("rejected facet configuration", zap.Error(err))
		return e.view(), err
	}

	e.facets = f
	e.lastErr = nil
	e.pageCount = 1
	if err := e.recompute(ctx); err != nil {
		return e.view(), err
	}
	e.publishResults()
	return e.view(), nil
}

// SetSort changes the ordering and resets pagination.
func (e *Engine) SetSort(ctx context.Context, key page.SortKey) (View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := page.ParseSortKey(string(key)); err != nil {
		e.state = StateError
		e.lastErr = err
		return e.view(), err
	}

	e.sortKey = key
	e.lastErr = nil
	e.pageCount = 1
	if err := e.recompute(ctx); err != nil {
		return e.view(), err
	}
	e.publishResults()
	return e.view(), nil
}

// SetPageSize changes the page size and resets pagination.
func (e *Engine) SetPageSize(ctx context.Context, size int) (View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if size <= 0 {
		err := fmt.Errorf("page size must be > 0, got %d", size)
		e.state = StateError
		e.lastErr = err
		return e.view(), err
	}

	e.pageSize = size
	e.lastErr = nil
	e.pageCount = 1
	if err := e.recompute(ctx); err != nil {
		return e.view(), err
	}
	return e.view(), nil
}

// LoadMore extends the cumulative page by one page worth of items.
func (e *Engine) LoadMore(ctx context.Context) (View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current.HasMore {
		e.pageCount++
	}
	if err := e.recompute(ctx); err != nil {
		return e.view(), err
	}
	return e.view(), nil
}

// View returns the current result view without changing any state.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view()
}

// SetFavorite persists the flag and recomputes so the view stays current.
func (e *Engine) SetFavorite(ctx context.Context, listingID string, v bool) error {
	return e.interact(ctx, "favorite", listingID, v, e.inter.SetFavorite)
}

// SetInterest records that the user expressed interest in a listing.
func (e *Engine) SetInterest(ctx context.Context, listingID string, v bool) error {
	return e.interact(ctx, "interest", listingID, v, e.inter.SetInterest)
}

// SetDismissed hides a listing from high matches; its score drops to 0 until
// un-dismissed.
func (e *Engine) SetDismissed(ctx context.Context, listingID string, v bool) error {
	return e.interact(ctx, "dismissed", listingID, v, e.inter.SetDismissed)
}

func (e *Engine) interact(ctx context.Context, kind, listingID string, v bool,
	set func(context.Context, string, bool) error) error {

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := set(ctx, listingID, v); err != nil {
		// Persistence failures surface to the caller; the pipeline state is
		// untouched so nothing is silently lost.
		e.log.Error("interaction write failed",
			zap.String("kind", kind), zap.String("listing_id", listingID), zap.Error(err))
		return err
	}
	e.metrics.ObserveInteraction(kind)
	e.publish(events.TypeInteractionUpdated, map[string]any{
		"kind": kind, "listing_id": listingID, "value": v,
	})

	if err := e.recompute(ctx); err != nil {
		return err
	}
	e.publishResults()
	return nil
}

// Interaction exposes the record for one listing.
func (e *Engine) Interaction(ctx context.Context, listingID string) (domain.InteractionRecord, error) {
	return e.inter.Get(ctx, listingID)
}

// ListInteractions returns listing ids matching pred (e.g. all favorites).
func (e *Engine) ListInteractions(ctx context.Context, pred interactions.Predicate) ([]string, error) {
	return e.inter.List(ctx, pred)
}

/// recompute runs the full pipeline: filter, score, arrange. Caller holds mu.
func (e *Engine) recompute(ctx context.Context) error {
	start := time.Now()

	filtered, err := facet.Apply(e.catalog.All(), e.facets)
	if err != nil {
		// Validate is called before facets are stored, so this is unexpected.
		e.state = StateError
		e.lastErr = err
		return err
	}

	scored := make([]page.Scored, 0, len(filtered))
	for _, l := range filtered {
		rec, err := e.inter.Get(ctx, l.ID)
		if err != nil {
			e.state = StateError
			e.lastErr = fmt.Errorf("interaction lookup %s: %w", l.ID, err)
			return e.lastErr
		}
		scored = append(scored, page.Scored{
			Listing: l,
			Match:   e.scorer.Score(l, e.facets, rec),
		})
	}

	e.current = page.Arrange(scored, e.sortKey, e.pageSize, e.pageCount)

	if e.facets.Empty() {
		e.state = StateReady
	} else {
		e.state = StateFiltered
	}
	e.metrics.ObserveRecompute(time.Since(start).Seconds())
	return nil
}

func (e *Engine) view() View {
	v := View{
		State:         e.state,
		Items:         e.current.Items,
		HasMore:       e.current.HasMore,
		Total:         e.current.Total,
		CatalogSize:   e.catalog.Len(),
		Sort:          e.sortKey,
		ActiveFilters: e.facets.Labels(),
		Skipped:       e.lastReport.Skipped,
	}
	if e.lastErr != nil {
		v.Error = e.lastErr.Error()
	}
	return v
}

func (e *Engine) publishResults() {
	e.publish(events.TypeResultsChanged, map[string]any{
		"total":   e.current.Total,
		"hasMore": e.current.HasMore,
	})
}

func (e *Engine) publish(typ string, data any) {
	if e.hub == nil {
		return
	}
	e.hub.Publish(events.MakeEvent("", typ, 1, data))
}
