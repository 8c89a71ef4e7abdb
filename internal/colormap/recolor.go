package colormap

import (
	"fmt"
	"strings"

	"github.com/atmoscan/calipso_cloud/internal/cloud"
)

// Mode selects the scalar field driving the color encoding. It is a closed
// enum resolved once per recolor call.
type Mode int

const (
	ModeElevation Mode = iota
	ModeIntensity
	ModeClassification
)

func (m Mode) String() string {
	switch m {
	case ModeElevation:
		return "elevation"
	case ModeIntensity:
		return "intensity"
	case ModeClassification:
		return "classification"
	}
	return "unknown"
}

// ParseMode resolves a mode from its command line / config name.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "elevation":
		return ModeElevation, nil
	case "intensity":
		return ModeIntensity, nil
	case "classification":
		return ModeClassification, nil
	}
	return 0, fmt.Errorf("unknown color mode %q, must be one of elevation, intensity, classification", name)
}

// Recolor rewrites the dataset's color buffer in place from the selected
// scalar field. This is the only dataset buffer mutated after construction.
// rng and ramp are ignored in classification mode, which uses the fixed
// lookup table.
func Recolor(d *cloud.Dataset, mode Mode, rng Range, ramp Ramp) error {
	if ramp == nil {
		ramp = Viridis
	}

	switch mode {
	case ModeElevation:
		for i := 0; i < d.Count; i++ {
			r, g, b := ramp(rng.Normalize(float64(d.Positions[3*i+2])))
			setColor(d, i, r, g, b)
		}
	case ModeIntensity:
		for i := 0; i < d.Count; i++ {
			r, g, b := ramp(rng.Normalize(IntensityToPhysical(d.Intensities[i])))
			setColor(d, i, r, g, b)
		}
	case ModeClassification:
		for i := 0; i < d.Count; i++ {
			r, g, b := ClassificationColor(d.Classifications[i])
			setColor(d, i, r, g, b)
		}
	default:
		return fmt.Errorf("unknown color mode %d", mode)
	}

	return nil
}

// ElevationRange derives a data-driven range for elevation coloring.
func ElevationRange(d *cloud.Dataset) Range {
	return DataRange(d.Altitudes())
}

// IntensityRange derives a data-driven range for intensity coloring in
// physical units.
func IntensityRange(d *cloud.Dataset) Range {
	values := make([]float64, d.Count)
	for i := 0; i < d.Count; i++ {
		values[i] = IntensityToPhysical(d.Intensities[i])
	}
	return DataRange(values)
}

func setColor(d *cloud.Dataset, i int, r, g, b uint8) {
	d.Colors[3*i] = r
	d.Colors[3*i+1] = g
	d.Colors[3*i+2] = b
}
