// Package graphsource ingests street data from OpenStreetMap's Overpass API
// and assembles it into a streetgraph.Graph, per spec.md §4.I.
package graphsource

// BoundingBox is a rectangular region in WGS84 coordinates.
type BoundingBox struct {
	MinLat float64
	MinLng float64
	MaxLat float64
	MaxLng float64
}

// osmElement is one element of an Overpass API JSON response, covering both
// node and way shapes; unused fields for a given Type are left zero.
type osmElement struct {
	ID    int64             `json:"id"`
	Type  string            `json:"type"` // "node" or "way"
	Lat   float64           `json:"lat"`
	Lon   float64           `json:"lon"`
	Tags  map[string]string `json:"tags"`
	Nodes []int64           `json:"nodes"`
}

// overpassResponse is the top-level Overpass API JSON envelope.
type overpassResponse struct {
	Elements []osmElement `json:"elements"`
}

// droppedHighwayValues are highway tag values that do not represent a
// surveyable street segment.
var droppedHighwayValues = map[string]bool{
	"construction": true,
	"proposed":     true,
}

func isRoutable(tags map[string]string) bool {
	if tags["access"] == "no" {
		return false
	}
	if droppedHighwayValues[tags["highway"]] {
		return false
	}
	return true
}
