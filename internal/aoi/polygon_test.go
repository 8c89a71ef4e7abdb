package aoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare() Polygon {
	return NewPolygon([]Vertex{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 1, Lon: 1},
		{Lat: 1, Lon: 0},
	})
}

func TestPolygonContains(t *testing.T) {
	square := unitSquare()

	assert.True(t, square.Contains(0.5, 0.5))
	assert.True(t, square.Contains(0.001, 0.999))

	assert.False(t, square.Contains(2, 2))
	assert.False(t, square.Contains(-0.5, 0.5))
	assert.False(t, square.Contains(0.5, -0.5))
	assert.False(t, square.Contains(0.5, 1.5))
}

func TestPolygonContainsIsDeterministicOnEdges(t *testing.T) {
	square := unitSquare()

	// the half-open rule: lower and left edges are in, upper and right out
	assert.True(t, square.Contains(0.5, 0))
	assert.True(t, square.Contains(0, 0.5))
	assert.False(t, square.Contains(0.5, 1))
	assert.False(t, square.Contains(1, 0.5))

	// repeated evaluation never flips
	for i := 0; i < 100; i++ {
		require.True(t, square.Contains(0.5, 0))
		require.False(t, square.Contains(0.5, 1))
	}
}

func TestPolygonAutoClose(t *testing.T) {
	open := unitSquare()
	closed := NewPolygon([]Vertex{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 1, Lon: 1},
		{Lat: 1, Lon: 0},
		{Lat: 0, Lon: 0}, // duplicated closing vertex
	})

	assert.Len(t, closed.Vertices(), 4)
	assert.Equal(t, open.Vertices(), closed.Vertices())
	assert.Equal(t, open.Contains(0.5, 0.5), closed.Contains(0.5, 0.5))
}

func TestPolygonValidity(t *testing.T) {
	assert.False(t, NewPolygon(nil).Valid())
	assert.False(t, NewPolygon([]Vertex{{Lat: 1, Lon: 1}}).Valid())
	assert.False(t, NewPolygon([]Vertex{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}}).Valid())
	assert.True(t, unitSquare().Valid())

	// a degenerate ring contains nothing
	assert.False(t, NewPolygon([]Vertex{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}}).Contains(0.5, 0.5))
}

func TestPolygonConcave(t *testing.T) {
	// an L shape: the notch at the top right is outside
	l := NewPolygon([]Vertex{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 2},
		{Lat: 1, Lon: 2},
		{Lat: 1, Lon: 1},
		{Lat: 2, Lon: 1},
		{Lat: 2, Lon: 0},
	})

	assert.True(t, l.Contains(0.5, 0.5))
	assert.True(t, l.Contains(1.5, 0.5))
	assert.True(t, l.Contains(0.5, 1.5))
	assert.False(t, l.Contains(1.5, 1.5))
}

func TestFilter(t *testing.T) {
	square := unitSquare()

	positions := []float32{
		0.5, 0.5, 10, // inside
		2.0, 2.0, 20, // outside
		0.2, 0.8, 30, // inside
	}
	aux := []float64{1.1, 2.2, 3.3}

	altitudes, filtered := Filter(positions, aux, square)

	assert.Equal(t, []float32{10, 30}, altitudes)
	assert.Equal(t, []float64{1.1, 3.3}, filtered)
}

func TestFilterNilAux(t *testing.T) {
	altitudes, filtered := Filter([]float32{0.5, 0.5, 10}, nil, unitSquare())
	assert.Equal(t, []float32{10}, altitudes)
	assert.Nil(t, filtered)
}

func TestFilterInvalidPolygon(t *testing.T) {
	line := NewPolygon([]Vertex{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}})

	altitudes, filtered := Filter([]float32{0.5, 0.5, 10}, []float64{1}, line)

	// empty but non-nil, callers can range without a nil check
	assert.NotNil(t, altitudes)
	assert.Empty(t, altitudes)
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}
