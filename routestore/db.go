package routestore

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// OpenPostgres opens and verifies a Postgres connection pool, following the
// same sql.Open + connection-tuning + ping-on-open discipline as
// erenceh-delivery-route-api/internal/platform/db.Open.
func OpenPostgres(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("routestore: open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("routestore: verify postgres connection: %w", err)
	}

	return db, nil
}

// Schema is the DDL PostgresRouteStore requires. Callers run it once at
// startup (see cmd/postmand), the way erenceh's InitSchema runs SQLite DDL.
const Schema = `
CREATE TABLE IF NOT EXISTS routes (
	id TEXT PRIMARY KEY,
	area_name TEXT NOT NULL,
	route_name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL,
	result JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_routes_area_name ON routes (area_name);

CREATE TABLE IF NOT EXISTS survey_progress (
	route_id TEXT PRIMARY KEY,
	covered_edge_ids JSONB NOT NULL,
	last_position JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`
