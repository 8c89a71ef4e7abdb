package las

import (
	"encoding/binary"
	"math"
)

// GpsTimeLocation tags where in the record a point's GPS time was recovered
// from. Some encoders of this format shift the field by one or two bytes from
// its documented offset; the decoder probes the candidates in a fixed
// preference order and falls back to a synthetic per-record index when no
// candidate holds a plausible value. The root cause of the shift (likely a
// padding difference between encoders) is not confirmed.
type GpsTimeLocation int

const (
	GpsTimeStandard GpsTimeLocation = iota
	GpsTimeOffsetMinusOne
	GpsTimeOffsetMinusTwo
	GpsTimeSyntheticIndex
)

// timestamps are TAI seconds since the 1993-01-01 epoch; anything above this
// bound cannot be a real shot time
const maxPlausibleGpsTime = 1e10

// Point is one decoded shot: geographic position, raw backscatter intensity,
// classification code and acquisition time.
type Point struct {
	Lon            float64 // degrees
	Lat            float64 // degrees
	Alt            float64 // kilometers
	Intensity      uint16  // raw 0-65535 encoding
	Classification uint8
	GpsTime        float64 // TAI seconds since 1993-01-01
	TimeSource     GpsTimeLocation
}

// DecodePoint converts one raw fixed-size record into a Point using the
// header scale and offset. index is the zero-based raw record index, used only
// as the synthetic time surrogate when GPS time recovery fails. Field-level
// anomalies never abort the record.
func DecodePoint(record []byte, h *Header, index uint64) Point {
	p := Point{
		Lon:       float64(int32(binary.LittleEndian.Uint32(record[0:4])))*h.ScaleX + h.OffsetX,
		Lat:       float64(int32(binary.LittleEndian.Uint32(record[4:8])))*h.ScaleY + h.OffsetY,
		Alt:       float64(int32(binary.LittleEndian.Uint32(record[8:12])))*h.ScaleZ + h.OffsetZ,
		Intensity: binary.LittleEndian.Uint16(record[12:14]),
	}

	if h.PointFormat >= 6 {
		p.Classification = record[16]
	} else {
		// formats 0-5 pack the class code in the low 5 bits of byte 15
		p.Classification = record[15] & 0x1f
	}

	p.GpsTime, p.TimeSource = recoverGpsTime(record, h.PointFormat, index)

	return p
}

// recoverGpsTime probes the documented GPS time offset for the point format
// plus the two byte positions below it, accepting the first candidate that is
// finite, positive and below the plausible bound. Exhausting all candidates
// substitutes the record index, which is strictly increasing and keeps the
// downstream temporal ordering usable.
func recoverGpsTime(record []byte, format uint8, index uint64) (float64, GpsTimeLocation) {
	standard := standardGpsTimeOffset(format)
	if standard < 0 {
		return float64(index), GpsTimeSyntheticIndex
	}

	for probe := 0; probe < 3; probe++ {
		offset := standard - probe
		if offset < 0 || offset+8 > len(record) {
			continue
		}
		t := math.Float64frombits(binary.LittleEndian.Uint64(record[offset : offset+8]))
		if isPlausibleGpsTime(t) {
			return t, GpsTimeLocation(probe)
		}
	}

	return float64(index), GpsTimeSyntheticIndex
}

func isPlausibleGpsTime(t float64) bool {
	return !math.IsNaN(t) && !math.IsInf(t, 0) && t > 0 && t < maxPlausibleGpsTime
}

// standardGpsTimeOffset returns the documented byte offset of the GPS time
// field, or -1 for point formats without one.
func standardGpsTimeOffset(format uint8) int {
	switch format {
	case 1, 3, 4, 5:
		return 20
	case 6, 7, 8, 9, 10:
		return 22
	default:
		return -1
	}
}
