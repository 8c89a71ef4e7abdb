package geometry

import "math"

// Axis aligned bounding box, min and max per axis
type BoundingBox struct {
	Xmin float64
	Xmax float64
	Ymin float64
	Ymax float64
	Zmin float64
	Zmax float64
}

// Builds a new BoundingBox from the given extremes
func NewBoundingBox(xmin, xmax, ymin, ymax, zmin, zmax float64) *BoundingBox {
	return &BoundingBox{
		Xmin: xmin,
		Xmax: xmax,
		Ymin: ymin,
		Ymax: ymax,
		Zmin: zmin,
		Zmax: zmax,
	}
}

// Builds an empty BoundingBox that any call to Extend will overwrite
func NewEmptyBoundingBox() *BoundingBox {
	return &BoundingBox{
		Xmin: math.Inf(1),
		Xmax: math.Inf(-1),
		Ymin: math.Inf(1),
		Ymax: math.Inf(-1),
		Zmin: math.Inf(1),
		Zmax: math.Inf(-1),
	}
}

// Grows the BoundingBox so that it contains the given coordinate
func (b *BoundingBox) Extend(x, y, z float64) {
	b.Xmin = math.Min(b.Xmin, x)
	b.Xmax = math.Max(b.Xmax, x)
	b.Ymin = math.Min(b.Ymin, y)
	b.Ymax = math.Max(b.Ymax, y)
	b.Zmin = math.Min(b.Zmin, z)
	b.Zmax = math.Max(b.Zmax, z)
}

// Returns the box extremes as a flat array in (xmin, xmax, ymin, ymax, zmin, zmax) order
func (b *BoundingBox) GetAsArray() []float64 {
	return []float64{b.Xmin, b.Xmax, b.Ymin, b.Ymax, b.Zmin, b.Zmax}
}
