// Package aoi tests points against a user drawn area-of-interest polygon and
// extracts filtered scalar subsets.
//
// Containment uses the even-odd ray casting rule on the (lon, lat) plane with
// the lower-inclusive half-open convention for edges: an edge counts when one
// endpoint is strictly above the test latitude and the other is not. Points
// exactly on an edge therefore resolve deterministically, landing inside for
// the lower/left edges of a convex polygon and outside for the upper/right
// ones. The plane is treated as locally flat: polygons crossing the
// antimeridian or enclosing a pole are a known unhandled case.
package aoi

// Vertex is one polygon corner in (lat, lon) degree order, matching the order
// drawn map tools emit.
type Vertex struct {
	Lat float64
	Lon float64
}

// Polygon is an ordered vertex ring. The ring is auto-closed: a duplicated
// closing vertex is dropped on construction and edges always wrap from the
// last vertex back to the first.
type Polygon struct {
	vertices []Vertex
}

// NewPolygon builds a polygon from its corners.
func NewPolygon(vertices []Vertex) Polygon {
	if n := len(vertices); n > 1 && vertices[0] == vertices[n-1] {
		vertices = vertices[:n-1]
	}
	return Polygon{vertices: vertices}
}

// Valid reports whether the polygon has enough vertices to bound an area.
func (p Polygon) Valid() bool {
	return len(p.vertices) >= 3
}

// Vertices returns the (open) vertex ring.
func (p Polygon) Vertices() []Vertex {
	return p.vertices
}

// Contains tests a geographic point with the even-odd rule: a horizontal ray
// cast toward increasing longitude crosses the boundary an odd number of
// times for interior points. An invalid polygon contains nothing.
func (p Polygon) Contains(lon, lat float64) bool {
	if !p.Valid() {
		return false
	}

	inside := false
	j := len(p.vertices) - 1
	for i := range p.vertices {
		vi, vj := p.vertices[i], p.vertices[j]
		if (vi.Lat > lat) != (vj.Lat > lat) &&
			lon < (vj.Lon-vi.Lon)*(lat-vi.Lat)/(vj.Lat-vi.Lat)+vi.Lon {
			inside = !inside
		}
		j = i
	}
	return inside
}
