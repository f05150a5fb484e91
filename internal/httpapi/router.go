package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMux wires every handler; main still owns the server so it can attach
// shutdown handling.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Results pipeline
	rh := ResultsHandler{Engine: d.Engine}
	mux.HandleFunc("/listings", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.List,
	}))
	mux.HandleFunc("/filters", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: rh.PutFilters,
	}))
	mux.HandleFunc("/sort", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: rh.PutSort,
	}))
	mux.HandleFunc("/page-size", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: rh.PutPageSize,
	}))
	mux.HandleFunc("/more", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.More,
	}))
	mux.HandleFunc("/quiz", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Quiz,
	}))

	// Interactions
	ih := InteractionsHandler{Engine: d.Engine}
	mux.HandleFunc("/interactions/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ih.GetByPath,
		http.MethodPut: ih.PutByPath, // expects /interactions/{id}
	}))
	mux.HandleFunc("/favorites", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ih.Favorites,
	}))

	// Catalog reload
	mux.HandleFunc("/catalog/reload", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: func(w http.ResponseWriter, r *http.Request) {
			if d.ReloadCatalog == nil {
				WriteError(w, r, http.StatusNotImplemented, "not_configured", "no catalog source configured")
				return
			}
			if err := d.ReloadCatalog(); err != nil {
				WriteError(w, r, http.StatusInternalServerError, "load_failed", err.Error())
				return
			}
			writeJSON(w, d.Engine.View())
		},
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Ops
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"ok": true})
		},
	}))
	if d.Registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	return mux
}
