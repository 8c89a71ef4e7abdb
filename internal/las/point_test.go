package las

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scaledHeader(format uint8, recordLength uint16) *Header {
	return &Header{
		PointFormat:  format,
		RecordLength: recordLength,
		ScaleX:       0.0001,
		ScaleY:       0.0001,
		ScaleZ:       0.001,
	}
}

func TestDecodePointCoordinates(t *testing.T) {
	h := scaledHeader(1, 28)
	h.OffsetX = -180
	h.OffsetY = -90

	record := make([]byte, 28)
	rawZ := int32(-1500)
	binary.LittleEndian.PutUint32(record[0:4], uint32(int32(1925000))) // -180 + 192.5
	binary.LittleEndian.PutUint32(record[4:8], uint32(int32(481234)))  // -90 + 48.1234
	binary.LittleEndian.PutUint32(record[8:12], uint32(rawZ))          // -1.5 km
	binary.LittleEndian.PutUint16(record[12:14], 4242)
	binary.LittleEndian.PutUint64(record[20:28], math.Float64bits(7.5e8))

	p := DecodePoint(record, h, 0)

	assert.InDelta(t, 12.5, p.Lon, 1e-9)
	assert.InDelta(t, -41.8766, p.Lat, 1e-9)
	assert.InDelta(t, -1.5, p.Alt, 1e-9)
	assert.Equal(t, uint16(4242), p.Intensity)
	assert.Equal(t, 7.5e8, p.GpsTime)
	assert.Equal(t, GpsTimeStandard, p.TimeSource)
}

func TestDecodePointClassification(t *testing.T) {
	t.Run("legacy formats mask the low five bits", func(t *testing.T) {
		h := scaledHeader(1, 28)
		record := make([]byte, 28)
		record[15] = 0xe2 // flag bits set, class 2
		p := DecodePoint(record, h, 0)
		assert.Equal(t, uint8(2), p.Classification)
	})

	t.Run("modern formats use the full byte", func(t *testing.T) {
		h := scaledHeader(6, 30)
		record := make([]byte, 30)
		record[16] = 18
		p := DecodePoint(record, h, 0)
		assert.Equal(t, uint8(18), p.Classification)
	})
}

func TestRecoverGpsTimeProbing(t *testing.T) {
	// 0xff filler decodes to negative NaN at every probe offset, so only the
	// deliberately written field is plausible
	newFilledRecord := func(n int) []byte {
		record := make([]byte, n)
		for i := range record {
			record[i] = 0xff
		}
		return record
	}
	const wantTime = 123456.789

	t.Run("standard offset wins", func(t *testing.T) {
		record := newFilledRecord(28)
		binary.LittleEndian.PutUint64(record[20:28], math.Float64bits(wantTime))
		gpsTime, loc := recoverGpsTime(record, 1, 99)
		assert.Equal(t, wantTime, gpsTime)
		assert.Equal(t, GpsTimeStandard, loc)
	})

	t.Run("one byte below standard", func(t *testing.T) {
		record := newFilledRecord(28)
		binary.LittleEndian.PutUint64(record[19:27], math.Float64bits(wantTime))
		gpsTime, loc := recoverGpsTime(record, 1, 99)
		assert.Equal(t, wantTime, gpsTime)
		assert.Equal(t, GpsTimeOffsetMinusOne, loc)
	})

	t.Run("two bytes below standard", func(t *testing.T) {
		record := newFilledRecord(28)
		binary.LittleEndian.PutUint64(record[18:26], math.Float64bits(wantTime))
		gpsTime, loc := recoverGpsTime(record, 1, 99)
		assert.Equal(t, wantTime, gpsTime)
		assert.Equal(t, GpsTimeOffsetMinusTwo, loc)
	})

	t.Run("all candidates implausible falls back to the index", func(t *testing.T) {
		record := newFilledRecord(28)
		gpsTime, loc := recoverGpsTime(record, 1, 99)
		assert.Equal(t, float64(99), gpsTime)
		assert.Equal(t, GpsTimeSyntheticIndex, loc)
	})

	t.Run("formats without a time field are synthetic", func(t *testing.T) {
		record := make([]byte, 20)
		gpsTime, loc := recoverGpsTime(record, 0, 7)
		assert.Equal(t, float64(7), gpsTime)
		assert.Equal(t, GpsTimeSyntheticIndex, loc)
	})
}

func TestIsPlausibleGpsTime(t *testing.T) {
	cases := []struct {
		name string
		t    float64
		want bool
	}{
		{"typical mission time", 4.2e8, true},
		{"zero", 0, false},
		{"negative", -1, false},
		{"nan", math.NaN(), false},
		{"positive infinity", math.Inf(1), false},
		{"above the epoch bound", 1e10, false},
		{"just below the bound", 1e10 - 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, isPlausibleGpsTime(tc.t))
		})
	}
}
