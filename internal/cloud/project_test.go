package cloud

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectSphericalRadius(t *testing.T) {
	opts := ProjectionOptions{
		Mode:         ProjectionSpherical,
		BaseRadius:   100,
		Exaggeration: 20,
	}

	positions := []float32{
		12.5, 41.9, 10,
		-70.66, -33.45, 0,
		0, 0, 40,
	}
	out := Project(positions, opts)
	require.Len(t, out, len(positions))

	for i := 0; i < len(positions); i += 3 {
		alt := float64(positions[i+2])
		wantRadius := opts.BaseRadius + alt*opts.Exaggeration
		gotRadius := math.Sqrt(
			float64(out[i])*float64(out[i]) +
				float64(out[i+1])*float64(out[i+1]) +
				float64(out[i+2])*float64(out[i+2]))
		assert.InDelta(t, wantRadius, gotRadius, 1e-3, "point %d", i/3)
	}
}

func TestProjectSphericalPoles(t *testing.T) {
	opts := ProjectionOptions{Mode: ProjectionSpherical, BaseRadius: 100, Exaggeration: 1}

	north := Project([]float32{17, 90, 0}, opts)
	assert.InDelta(t, 0, float64(north[0]), 1e-4)
	assert.InDelta(t, 100, float64(north[1]), 1e-4)
	assert.InDelta(t, 0, float64(north[2]), 1e-4)

	south := Project([]float32{-123, -90, 0}, opts)
	assert.InDelta(t, -100, float64(south[1]), 1e-4)
}

func TestProjectSphericalUnitsPerKilometer(t *testing.T) {
	opts := ProjectionOptions{
		Mode:              ProjectionSpherical,
		BaseRadius:        100,
		Exaggeration:      20,
		UnitsPerKilometer: 10,
	}

	out := Project([]float32{0, 0, 5}, opts)
	gotRadius := math.Sqrt(
		float64(out[0])*float64(out[0]) +
			float64(out[1])*float64(out[1]) +
			float64(out[2])*float64(out[2]))
	assert.InDelta(t, 100+5*20/10.0, gotRadius, 1e-3)
}

func TestProjectFlat(t *testing.T) {
	opts := ProjectionOptions{
		Mode:         ProjectionFlat,
		Exaggeration: 2,
		FlatScale:    10,
	}

	out := Project([]float32{12.5, 41.9, 3}, opts)
	assert.InDelta(t, 125, float64(out[0]), 1e-4)
	assert.InDelta(t, 6, float64(out[1]), 1e-4)
	assert.InDelta(t, 419, float64(out[2]), 1e-3)
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	positions := []float32{12.5, 41.9, 10}
	backup := append([]float32(nil), positions...)

	first := Project(positions, ProjectionOptions{BaseRadius: 100, Exaggeration: 1})
	second := Project(positions, ProjectionOptions{BaseRadius: 100, Exaggeration: 1})

	assert.Equal(t, backup, positions)
	assert.Equal(t, first, second)
}
