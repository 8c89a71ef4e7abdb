package las

import (
	"encoding/binary"
	"fmt"
	"math"
)

// FormatError signals a buffer that cannot be interpreted as an uncompressed
// LAS file. It is fatal for the file being ingested.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid las buffer: " + e.Reason
}

func newFormatError(format string, v ...interface{}) *FormatError {
	return &FormatError{Reason: fmt.Sprintf(format, v...)}
}

const (
	headerSignature = "LASF"

	// minimum public header block length across LAS 1.0 - 1.3
	minHeaderSize = 227

	// public header block length introduced by LAS 1.4
	headerSize14 = 375

	// point data record formats >= 128 carry the laszip compression bit
	compressionBit = 0x80
)

// Header holds the fields of the LAS public header block that parameterize
// record decoding. Byte offsets follow the ASPRS LAS 1.4 specification.
type Header struct {
	VersionMajor uint8
	VersionMinor uint8
	PointFormat  uint8
	RecordLength uint16
	PointOffset  uint32
	PointCount   uint64

	ScaleX  float64
	ScaleY  float64
	ScaleZ  float64
	OffsetX float64
	OffsetY float64
	OffsetZ float64

	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
	MinZ float64
	MaxZ float64
}

// ReadHeader parses the public header block of a fully materialized LAS
// buffer. It validates the signature, rejects laszip-compressed point formats
// (decompression happens upstream) and checks that the declared record layout
// fits inside the buffer.
func ReadHeader(buf []byte) (*Header, error) {
	if len(buf) < minHeaderSize {
		return nil, newFormatError("buffer of %d bytes is shorter than the %d byte public header", len(buf), minHeaderSize)
	}

	if string(buf[0:4]) != headerSignature {
		return nil, newFormatError("bad signature %q", string(buf[0:4]))
	}

	h := &Header{
		VersionMajor: buf[24],
		VersionMinor: buf[25],
		PointFormat:  buf[104],
		RecordLength: binary.LittleEndian.Uint16(buf[105:107]),
		PointOffset:  binary.LittleEndian.Uint32(buf[96:100]),
		PointCount:   uint64(binary.LittleEndian.Uint32(buf[107:111])),
		ScaleX:       readFloat64(buf, 131),
		ScaleY:       readFloat64(buf, 139),
		ScaleZ:       readFloat64(buf, 147),
		OffsetX:      readFloat64(buf, 155),
		OffsetY:      readFloat64(buf, 163),
		OffsetZ:      readFloat64(buf, 171),
		MaxX:         readFloat64(buf, 179),
		MinX:         readFloat64(buf, 187),
		MaxY:         readFloat64(buf, 195),
		MinY:         readFloat64(buf, 203),
		MaxZ:         readFloat64(buf, 211),
		MinZ:         readFloat64(buf, 219),
	}

	if h.PointFormat&compressionBit != 0 {
		return nil, newFormatError("point format %d is laszip compressed, decompress before ingesting", h.PointFormat)
	}

	// LAS 1.4 moves the point count to a 64 bit field and zeroes the legacy one
	if h.VersionMajor == 1 && h.VersionMinor >= 4 {
		if len(buf) < headerSize14 {
			return nil, newFormatError("las 1.%d buffer of %d bytes is shorter than the %d byte public header", h.VersionMinor, len(buf), headerSize14)
		}
		if count64 := binary.LittleEndian.Uint64(buf[247:255]); count64 != 0 {
			h.PointCount = count64
		}
	}

	if h.PointFormat > 10 {
		return nil, newFormatError("unsupported point format %d", h.PointFormat)
	}

	if h.RecordLength < minRecordLength(h.PointFormat) {
		return nil, newFormatError("record length %d is below the %d byte minimum for point format %d",
			h.RecordLength, minRecordLength(h.PointFormat), h.PointFormat)
	}

	need := uint64(h.PointOffset) + h.PointCount*uint64(h.RecordLength)
	if need > uint64(len(buf)) {
		return nil, newFormatError("%d records of %d bytes at offset %d exceed the %d byte buffer",
			h.PointCount, h.RecordLength, h.PointOffset, len(buf))
	}

	return h, nil
}

// Record returns the raw bytes of the i-th point record. The caller must keep
// i below PointCount, ReadHeader has already validated the bounds.
func (h *Header) Record(buf []byte, i uint64) []byte {
	start := uint64(h.PointOffset) + i*uint64(h.RecordLength)
	return buf[start : start+uint64(h.RecordLength)]
}

func readFloat64(buf []byte, offset int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[offset : offset+8]))
}

// minimum record lengths per point data record format, ASPRS LAS 1.4 table 4.7+
func minRecordLength(format uint8) uint16 {
	switch format {
	case 0:
		return 20
	case 1:
		return 28
	case 2:
		return 26
	case 3:
		return 34
	case 4:
		return 57
	case 5:
		return 63
	case 6:
		return 30
	case 7:
		return 36
	case 8:
		return 38
	case 9:
		return 59
	case 10:
		return 67
	default:
		return 0
	}
}
