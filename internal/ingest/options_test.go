package ingest

import (
	"testing"

	"github.com/atmoscan/calipso_cloud/internal/cloud"
	"github.com/stretchr/testify/assert"
)

func TestNewDefaultOptions(t *testing.T) {
	opts := NewDefaultOptions()

	assert.Equal(t, 4326, opts.Srid)
	assert.Equal(t, cloud.DefaultMaxPoints, opts.MaxPoints)
	assert.Equal(t, cloud.DefaultCellSizeDegrees, opts.CellSizeDegrees)
	assert.Equal(t, "elevation", opts.ColorMode)
	assert.Equal(t, "viridis", opts.Ramp)

	// intensity colors default to the fixed instrument range so separate
	// runs stay comparable with each other
	assert.True(t, opts.FixedIntensityRange)

	assert.Equal(t, cloud.ProjectionSpherical, opts.Projection.Mode)
	assert.Equal(t, 100.0, opts.Projection.BaseRadius)
	assert.Equal(t, 1.0, opts.Projection.Exaggeration)
}

func TestOptionsCopyIsIndependent(t *testing.T) {
	opts := NewDefaultOptions()
	duplicate := opts.Copy()
	duplicate.MaxPoints = 42
	duplicate.FixedIntensityRange = false

	assert.Equal(t, cloud.DefaultMaxPoints, opts.MaxPoints)
	assert.True(t, opts.FixedIntensityRange)
}
