package httpapi

import (
	"encoding/json"
	"net/http"

	"bizmatch-engine/internal/engine"
	"bizmatch-engine/internal/facet"
	"bizmatch-engine/internal/page"
)

// ResultsHandler exposes the engine's current view and the filter/sort/page
// mutations that re-derive it.
type ResultsHandler struct {
	Engine *engine.Engine
}

func (h ResultsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Engine.View())
}

func (h ResultsHandler) PutFilters(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var f facet.Facets
	if err := dec.Decode(&f); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	v, err := h.Engine.SetFilters(r.Context(), f)
	if err != nil {
		// Invalid facet configurations are the caller's to fix; everything in
		// the prior result view is still intact.
		WriteError(w, r, http.StatusBadRequest, "invalid_facets", err.Error())
		return
	}
	writeJSON(w, v)
}

type putSortReq struct {
	Sort string `json:"sort"`
}

func (h ResultsHandler) PutSort(w http.ResponseWriter, r *http.Request) {
	var req putSortReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON")
		return
	}

	key, err := page.ParseSortKey(req.Sort)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_sort", err.Error())
		return
	}

	v, err := h.Engine.SetSort(r.Context(), key)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_sort", err.Error())
		return
	}
	writeJSON(w, v)
}

type putPageSizeReq struct {
	PageSize int `json:"pageSize"`
}

func (h ResultsHandler) PutPageSize(w http.ResponseWriter, r *http.Request) {
	var req putPageSizeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON")
		return
	}

	v, err := h.Engine.SetPageSize(r.Context(), req.PageSize)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_page_size", err.Error())
		return
	}
	writeJSON(w, v)
}

func (h ResultsHandler) More(w http.ResponseWriter, r *http.Request) {
	v, err := h.Engine.LoadMore(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, v)
}

// Quiz maps guided-questionnaire answers onto facets and applies them.
func (h ResultsHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	var a facet.QuizAnswers
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON")
		return
	}

	f, err := facet.FromQuiz(a)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_facets", err.Error())
		return
	}

	v, err := h.Engine.SetFilters(r.Context(), f)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_facets", err.Error())
		return
	}
	writeJSON(w, v)
}
