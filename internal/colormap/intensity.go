package colormap

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// The raw 16 bit intensity is a linear encoding of 532nm attenuated
// backscatter: raw = clip((physical + 0.1) * 10000, 0, 65535). Both directions
// must stay bit-for-bit compatible with the upstream encoder.
const (
	intensityScale  = 10000.0
	intensityOffset = 0.1

	// Backscatter532Min and Backscatter532Max are the instrument's valid
	// 532nm backscatter range in 1/(km·sr). Coloring against this fixed range
	// keeps files comparable with each other.
	Backscatter532Min = -0.1
	Backscatter532Max = 3.3
)

// IntensityToPhysical decodes a raw intensity into backscatter units.
func IntensityToPhysical(raw uint16) float64 {
	return float64(raw)/intensityScale - intensityOffset
}

// PhysicalToIntensity re-encodes backscatter into the raw 16 bit value.
func PhysicalToIntensity(physical float64) uint16 {
	scaled := (physical + intensityOffset) * intensityScale
	if scaled < 0 {
		return 0
	}
	if scaled > 65535 {
		return 65535
	}
	return uint16(scaled + 0.5)
}

// Range is a scalar interval used to normalize a field before coloring.
type Range struct {
	Min float64
	Max float64
}

// FixedIntensityRange is the default range for intensity coloring, chosen for
// cross-file comparability.
var FixedIntensityRange = Range{Min: Backscatter532Min, Max: Backscatter532Max}

// Normalize maps v into [0,1] against the range. A degenerate range
// (max == min) returns the midpoint rather than dividing by zero.
func (r Range) Normalize(v float64) float64 {
	if r.Max == r.Min {
		return 0.5
	}
	return clamp01((v - r.Min) / (r.Max - r.Min))
}

// DataRange derives a display range from the data itself using the 1st and
// 99th percentiles, which keeps saturated and noisy samples from stretching
// the scale.
func DataRange(values []float64) Range {
	if len(values) == 0 {
		return Range{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return Range{
		Min: stat.Quantile(0.01, stat.Empirical, sorted, nil),
		Max: stat.Quantile(0.99, stat.Empirical, sorted, nil),
	}
}
