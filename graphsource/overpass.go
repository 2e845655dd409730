package graphsource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/phungdo/everystreet/geodesy"
	"github.com/phungdo/everystreet/streetgraph"
)

// Source fetches a street graph for a bounded region. Implementations never
// invoke the solver and never cache results (spec.md §4.I); the api layer
// fetches a fresh graph for every solve request.
type Source interface {
	Fetch(ctx context.Context, bbox BoundingBox) (*streetgraph.Graph, error)
}

// DefaultOverpassURL is the public Overpass API endpoint used when no
// override is configured.
const DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

// OverpassSource is the concrete Source backed by the Overpass API.
type OverpassSource struct {
	BaseURL string
	Client  *http.Client
}

// NewOverpassSource returns an OverpassSource targeting baseURL, falling
// back to DefaultOverpassURL when baseURL is empty.
func NewOverpassSource(baseURL string) *OverpassSource {
	if baseURL == "" {
		baseURL = DefaultOverpassURL
	}
	return &OverpassSource{BaseURL: baseURL, Client: http.DefaultClient}
}

// Fetch issues an Overpass QL query for highway=* ways inside bbox, decodes
// the result, and assembles a streetgraph.Graph: one node per referenced
// OSM node, one edge per consecutive node pair within each retained way.
func (s *OverpassSource) Fetch(ctx context.Context, bbox BoundingBox) (*streetgraph.Graph, error) {
	query := buildQuery(bbox)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL, bytes.NewBufferString("data="+query))
	if err != nil {
		return nil, fmt.Errorf("graphsource: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graphsource: overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("graphsource: overpass returned status %d", resp.StatusCode)
	}

	var payload overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("graphsource: decoding overpass response: %w", err)
	}

	return assemble(payload.Elements)
}

// buildQuery constructs an Overpass QL query for highway ways inside bbox.
func buildQuery(bbox BoundingBox) string {
	var b strings.Builder
	b.WriteString("[out:json];")
	fmt.Fprintf(&b, "way[\"highway\"](%f,%f,%f,%f);", bbox.MinLat, bbox.MinLng, bbox.MaxLat, bbox.MaxLng)
	b.WriteString("(._;>;);out body;")
	return b.String()
}

// assemble folds raw OSM elements into a streetgraph.Graph: nodes first
// (geodesy locations keyed by OSM node id, for every node referenced by a
// retained way), then one edge per consecutive
// node pair of every retained way, with a synthetic incrementing edge id
// since Overpass way ids are not edge-granular.
func assemble(elements []osmElement) (*streetgraph.Graph, error) {
	b := streetgraph.NewBuilder()

	nodeLocations := make(map[int64]geodesy.Point)
	var ways []osmElement

	for _, el := range elements {
		switch el.Type {
		case "node":
			nodeLocations[el.ID] = geodesy.Point{Lat: el.Lat, Lng: el.Lon}
		case "way":
			if isRoutable(el.Tags) {
				ways = append(ways, el)
			}
		}
	}

	referenced := make(map[int64]bool)
	for _, way := range ways {
		for _, id := range way.Nodes {
			referenced[id] = true
		}
	}

	for id, loc := range nodeLocations {
		if !referenced[id] {
			continue // not part of any retained way
		}
		if err := b.AddNode(streetgraph.NodeID(id), loc); err != nil {
			return nil, fmt.Errorf("graphsource: adding node %d: %w", id, err)
		}
	}

	var nextEdgeID streetgraph.EdgeID = 1
	for _, way := range ways {
		name := way.Tags["name"]
		for i := 0; i+1 < len(way.Nodes); i++ {
			from, to := way.Nodes[i], way.Nodes[i+1]
			fromLoc, ok := nodeLocations[from]
			if !ok {
				continue // way references a node outside the fetched bbox
			}
			toLoc, ok := nodeLocations[to]
			if !ok {
				continue
			}
			if from == to {
				continue // degenerate zero-length segment
			}

			geometry := []geodesy.Point{fromLoc, toLoc}
			length := geodesy.Distance(fromLoc, toLoc)

			if err := b.AddEdge(nextEdgeID, streetgraph.NodeID(from), streetgraph.NodeID(to), length, geometry, name); err != nil {
				return nil, fmt.Errorf("graphsource: adding edge for way %d: %w", way.ID, err)
			}
			nextEdgeID++
		}
	}

	return b.Build(), nil
}
