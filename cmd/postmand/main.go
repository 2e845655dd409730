// Command postmand is the composition root: it loads configuration, opens
// the route store, constructs the graph source and HTTP router, and serves
// the Route Inspection API (spec.md §4.M).
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/phungdo/everystreet/api"
	"github.com/phungdo/everystreet/config"
	"github.com/phungdo/everystreet/graphsource"
	"github.com/phungdo/everystreet/routestore"
)

func main() {
	cfg := config.Load()

	store, closeStore := openStore(cfg.DatabaseURL)
	defer closeStore()

	source := graphsource.NewOverpassSource(cfg.OverpassURL)
	router := api.NewRouter(store, source, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("postmand listening addr=:%s", cfg.Port)
	log.Fatal(srv.ListenAndServe())
}

// openStore opens PostgresRouteStore when DATABASE_URL is configured,
// falling back to InMemoryRouteStore for local runs without a database.
// The returned close func is always safe to call.
func openStore(databaseURL string) (routestore.RouteStore, func()) {
	if databaseURL == "" {
		log.Println("DATABASE_URL not set, using in-memory route store")
		return routestore.NewInMemoryRouteStore(), func() {}
	}

	db, err := routestore.OpenPostgres(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := db.Exec(routestore.Schema); err != nil {
		log.Fatalf("postmand: applying schema: %v", err)
	}

	return routestore.NewPostgresRouteStore(db), func() { _ = db.Close() }
}
