package geometry

// Coordinate models a 3D coordinate, either geographic (lon/lat in degrees,
// elevation) or in a projected metric reference system, depending on context.
type Coordinate struct {
	X float64
	Y float64
	Z float64
}
