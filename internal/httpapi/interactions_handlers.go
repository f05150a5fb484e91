package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"bizmatch-engine/internal/engine"
	"bizmatch-engine/internal/interactions"
)

// InteractionsHandler persists favorites, expressed interest, and dismissals.
// A failed write is reported as a distinct error so the UI can tell "your
// action didn't save" apart from "your filter is invalid".
type InteractionsHandler struct {
	Engine *engine.Engine
}

type interactionReq struct {
	Favorite  *bool `json:"favorite,omitempty"`
	Interest  *bool `json:"interest,omitempty"`
	Dismissed *bool `json:"dismissed,omitempty"`
}

// PutByPath handles PUT /interactions/{id}: any subset of the three flags.
func (h InteractionsHandler) PutByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/interactions/"))
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "missing listing id")
		return
	}

	var req interactionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON")
		return
	}
	if req.Favorite == nil && req.Interest == nil && req.Dismissed == nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "no interaction flag given")
		return
	}

	if req.Favorite != nil {
		if err := h.Engine.SetFavorite(r.Context(), id, *req.Favorite); err != nil {
			WriteError(w, r, http.StatusInternalServerError, "persistence_failure", err.Error())
			return
		}
	}
	if req.Interest != nil {
		if err := h.Engine.SetInterest(r.Context(), id, *req.Interest); err != nil {
			WriteError(w, r, http.StatusInternalServerError, "persistence_failure", err.Error())
			return
		}
	}
	if req.Dismissed != nil {
		if err := h.Engine.SetDismissed(r.Context(), id, *req.Dismissed); err != nil {
			WriteError(w, r, http.StatusInternalServerError, "persistence_failure", err.Error())
			return
		}
	}

	rec, err := h.Engine.Interaction(r.Context(), id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "persistence_failure", err.Error())
		return
	}
	writeJSON(w, rec)
}

// GetByPath handles GET /interactions/{id}.
func (h InteractionsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/interactions/"))
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "missing listing id")
		return
	}

	rec, err := h.Engine.Interaction(r.Context(), id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "persistence_failure", err.Error())
		return
	}
	writeJSON(w, rec)
}

// Favorites handles GET /favorites for the saved-items view.
func (h InteractionsHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Engine.ListInteractions(r.Context(), interactions.Favorites)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "persistence_failure", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ids": ids})
}
