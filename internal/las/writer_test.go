package las

import (
	"os"
	"path"
	"testing"

	"github.com/atmoscan/calipso_cloud/internal/cloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset(t *testing.T) *cloud.Dataset {
	t.Helper()
	d := cloud.NewDataset(4)
	d.Append(12.5001, 41.9001, 10.253, 1500, 3, 4.2e8)
	d.Append(12.5002, 41.9002, 10.254, 2500, 1, 4.2e8+1)
	d.Append(-70.6601, -33.4501, 0.5, 0, 0, 4.2e8+2)
	d.Append(150.0001, 60.0001, 40.001, 65535, 18, 4.2e8+3)
	return d
}

func TestEncodeDatasetRoundTrip(t *testing.T) {
	d := sampleDataset(t)

	buf := EncodeDataset(d)
	h, err := ReadHeader(buf)
	require.NoError(t, err)
	require.Equal(t, uint64(d.Count), h.PointCount)

	for i := 0; i < d.Count; i++ {
		p := DecodePoint(h.Record(buf, uint64(i)), h, uint64(i))

		// horizontal quantization is 0.0001 degrees, vertical 0.001 km
		assert.InDelta(t, float64(d.Positions[3*i]), p.Lon, 0.0001/2+1e-9, "lon of point %d", i)
		assert.InDelta(t, float64(d.Positions[3*i+1]), p.Lat, 0.0001/2+1e-9, "lat of point %d", i)
		assert.InDelta(t, float64(d.Positions[3*i+2]), p.Alt, 0.001/2+1e-9, "alt of point %d", i)

		// intensity, class and time survive bit for bit
		assert.Equal(t, d.Intensities[i], p.Intensity, "intensity of point %d", i)
		assert.Equal(t, d.Classifications[i], p.Classification, "class of point %d", i)
		assert.Equal(t, d.GpsTimes[i], p.GpsTime, "time of point %d", i)
		assert.Equal(t, GpsTimeStandard, p.TimeSource)
	}
}

func TestEncodeSubset(t *testing.T) {
	d := sampleDataset(t)

	buf := EncodeSubset(d, []int32{1, 3})
	h, err := ReadHeader(buf)
	require.NoError(t, err)
	require.Equal(t, uint64(2), h.PointCount)

	first := DecodePoint(h.Record(buf, 0), h, 0)
	assert.Equal(t, uint16(2500), first.Intensity)

	second := DecodePoint(h.Record(buf, 1), h, 1)
	assert.Equal(t, uint8(18), second.Classification)
}

func TestEncodeSubsetEmpty(t *testing.T) {
	d := sampleDataset(t)

	buf := EncodeSubset(d, []int32{})
	h, err := ReadHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), h.PointCount)
	assert.Zero(t, h.MinX)
	assert.Zero(t, h.MaxX)
}

func TestWriteDataset(t *testing.T) {
	d := sampleDataset(t)
	filePath := path.Join(t.TempDir(), "out.las")

	require.NoError(t, WriteDataset(filePath, d))

	buf, err := os.ReadFile(filePath)
	require.NoError(t, err)

	h, err := ReadHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(d.Count), h.PointCount)
}

func TestQuantizerClampsOverflow(t *testing.T) {
	q := newQuantizer(0, 0.0001)
	// 1e9 / 0.0001 overflows int32 by far
	assert.Equal(t, int32(2147483647), q.quantize(1e9))
	assert.Equal(t, int32(-2147483648), q.quantize(-1e9))
}

func TestQuantizerIsExact(t *testing.T) {
	q := newQuantizer(-70.6601, 0.0001)
	// the classic float64 trap: (-70.66 - -70.6601) / 0.0001 != 1 in floats
	assert.Equal(t, int32(1), q.quantize(-70.66))
	assert.Equal(t, int32(0), q.quantize(-70.6601))
}
