package cloud

import (
	"github.com/atmoscan/calipso_cloud/internal/geometry"
	"github.com/google/uuid"
)

// PointRef identifies one point of a dataset by position and timestamp. The
// sorter records the first and last point of the final order so downstream
// consumers can anchor a temporal progression on the array position alone.
type PointRef struct {
	Lon     float32
	Lat     float32
	Alt     float32
	GpsTime float64
}

// Dataset owns the parallel dense buffers produced by one ingestion call.
// Positions holds (lon, lat, alt) triples in degrees/kilometers, Colors holds
// RGB triples written by the color encoder. Invariants:
//
//	len(Positions) == 3*Count == len(Colors)
//	len(Intensities) == len(Classifications) == len(GpsTimes) == Count
//
// All buffers are pre-sized from the decimation math and filled through a
// write cursor; none of them grows. After the spatial-temporal sort only
// Colors is ever rewritten, there is a single writer at any time.
type Dataset struct {
	ID              uuid.UUID
	Positions       []float32
	Colors          []uint8
	Intensities     []uint16
	Classifications []uint8
	GpsTimes        []float64
	Count           int
	Bounds          *geometry.BoundingBox

	FirstPoint PointRef
	LastPoint  PointRef

	cursor int
}

// NewDataset allocates the buffers for exactly capacity points.
func NewDataset(capacity int) *Dataset {
	return &Dataset{
		ID:              uuid.New(),
		Positions:       make([]float32, 3*capacity),
		Colors:          make([]uint8, 3*capacity),
		Intensities:     make([]uint16, capacity),
		Classifications: make([]uint8, capacity),
		GpsTimes:        make([]float64, capacity),
		Count:           capacity,
		Bounds:          geometry.NewEmptyBoundingBox(),
	}
}

// Append writes the next point at the cursor and grows the bounding box.
// Coordinates are narrowed to float32 on storage, decode happens in float64.
func (d *Dataset) Append(lon, lat, alt float64, intensity uint16, classification uint8, gpsTime float64) {
	i := d.cursor
	d.Positions[3*i] = float32(lon)
	d.Positions[3*i+1] = float32(lat)
	d.Positions[3*i+2] = float32(alt)
	d.Intensities[i] = intensity
	d.Classifications[i] = classification
	d.GpsTimes[i] = gpsTime
	d.Bounds.Extend(lon, lat, alt)
	d.cursor = i + 1
}

// Appended reports how many points have been written so far.
func (d *Dataset) Appended() int {
	return d.cursor
}

// PointAt builds a PointRef for the i-th point of the current order.
func (d *Dataset) PointAt(i int) PointRef {
	return PointRef{
		Lon:     d.Positions[3*i],
		Lat:     d.Positions[3*i+1],
		Alt:     d.Positions[3*i+2],
		GpsTime: d.GpsTimes[i],
	}
}

// Altitudes extracts the altitude channel as a dense slice.
func (d *Dataset) Altitudes() []float64 {
	alts := make([]float64, d.Count)
	for i := 0; i < d.Count; i++ {
		alts[i] = float64(d.Positions[3*i+2])
	}
	return alts
}
