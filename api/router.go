// Package api is the HTTP composition root exposing the solve/read/progress
// surface over routesolver and routestore, per spec.md §4.K.
package api

import (
	"net/http"

	"github.com/phungdo/everystreet/api/handlers"
	"github.com/phungdo/everystreet/config"
	"github.com/phungdo/everystreet/graphsource"
	"github.com/phungdo/everystreet/routestore"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. Handlers stay unaware of concrete adapters; only this
// composition root constructs them. cfg's matcher/instruction/speed
// tunables (spec.md §4.L) flow straight into the RouteHandler that needs
// them; a zero-value cfg is fine and falls back to each package's default.
func NewRouter(store routestore.RouteStore, source graphsource.Source, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{
		Store:            store,
		Source:           source,
		KExact:           cfg.KExact,
		MinTurnDistanceM: cfg.MinTurnDistanceM,
		VAvgKMH:          cfg.VAvgKMH,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("POST /routes/solve", routeHandler.Solve)
	mux.HandleFunc("GET /routes/{id}", routeHandler.Get)
	mux.HandleFunc("GET /routes", routeHandler.List)
	mux.HandleFunc("POST /routes/{id}/progress", routeHandler.SaveProgress)

	return loggingMiddleware(mux)
}
