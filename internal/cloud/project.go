package cloud

import "math"

type ProjectionMode int

const (
	// ProjectionSpherical maps geographic coordinates onto a globe of
	// BaseRadius units, altitude pushed outward along the radius.
	ProjectionSpherical ProjectionMode = iota

	// ProjectionFlat lays the track out on an orthogonal plane, longitude on
	// x, latitude on z, altitude on y.
	ProjectionFlat
)

// ProjectionOptions parameterizes a projection pass.
type ProjectionOptions struct {
	Mode ProjectionMode

	// BaseRadius is the globe radius in render units for the spherical mode.
	BaseRadius float64

	// Exaggeration scales altitude before it is applied, atmospheric layers
	// are invisible at true scale.
	Exaggeration float64

	// UnitsPerKilometer converts exaggerated kilometers to render units,
	// defaults to 1.
	UnitsPerKilometer float64

	// FlatScale converts degrees to render units in the flat mode,
	// defaults to 1.
	FlatScale float64
}

const degToRad = math.Pi / 180

// Project maps a (lon, lat, alt) position buffer into render space and
// returns a newly allocated buffer of the same length. It is pure and
// idempotent: the input is never mutated and finite inputs never fail. Exact
// poles are well defined, the longitude dependence simply collapses there.
func Project(positions []float32, opts ProjectionOptions) []float32 {
	unitScale := opts.UnitsPerKilometer
	if unitScale == 0 {
		unitScale = 1
	}

	out := make([]float32, len(positions))

	switch opts.Mode {
	case ProjectionFlat:
		flatScale := opts.FlatScale
		if flatScale == 0 {
			flatScale = 1
		}
		for i := 0; i < len(positions); i += 3 {
			lon := float64(positions[i])
			lat := float64(positions[i+1])
			alt := float64(positions[i+2])
			out[i] = float32(lon * flatScale)
			out[i+1] = float32(alt * opts.Exaggeration / unitScale)
			out[i+2] = float32(lat * flatScale)
		}
	default:
		for i := 0; i < len(positions); i += 3 {
			lon := float64(positions[i])
			lat := float64(positions[i+1])
			alt := float64(positions[i+2])

			phi := (90 - lat) * degToRad
			theta := (lon + 180) * degToRad
			r := opts.BaseRadius + alt*opts.Exaggeration/unitScale

			sinPhi := math.Sin(phi)
			out[i] = float32(r * sinPhi * math.Cos(theta))
			out[i+1] = float32(r * math.Cos(phi))
			out[i+2] = float32(r * sinPhi * math.Sin(theta))
		}
	}

	return out
}
