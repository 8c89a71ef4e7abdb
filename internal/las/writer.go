package las

import (
	"encoding/binary"
	"math"
	"os"
	"time"

	"github.com/atmoscan/calipso_cloud/internal/cloud"
	"github.com/golang/glog"
	"github.com/shopspring/decimal"
)

// Export always uses LAS 1.4 point format 6 with the upstream converter's
// quantization: 0.0001 degrees horizontally (~11m at the equator) and 0.001 km
// (1m) vertically, offsets anchored at the per-axis minima.
const (
	writeScaleX = 0.0001
	writeScaleY = 0.0001
	writeScaleZ = 0.001

	writeFormat       = uint8(6)
	writeRecordLength = uint16(30)

	systemIdentifier = "calipso_cloud"
)

// EncodeDataset serializes the whole dataset as an uncompressed LAS buffer.
func EncodeDataset(d *cloud.Dataset) []byte {
	return EncodeSubset(d, nil)
}

// EncodeSubset serializes the points at the given dataset indices, or every
// point when indices is nil. The intensity buffer is written back verbatim so
// the physical decoding stays bit-for-bit stable across a round trip.
func EncodeSubset(d *cloud.Dataset, indices []int32) []byte {
	if indices == nil {
		indices = make([]int32, d.Count)
		for i := range indices {
			indices[i] = int32(i)
		}
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, idx := range indices {
		minX = math.Min(minX, float64(d.Positions[3*idx]))
		maxX = math.Max(maxX, float64(d.Positions[3*idx]))
		minY = math.Min(minY, float64(d.Positions[3*idx+1]))
		maxY = math.Max(maxY, float64(d.Positions[3*idx+1]))
		minZ = math.Min(minZ, float64(d.Positions[3*idx+2]))
		maxZ = math.Max(maxZ, float64(d.Positions[3*idx+2]))
	}
	if len(indices) == 0 {
		minX, maxX, minY, maxY, minZ, maxZ = 0, 0, 0, 0, 0, 0
	}

	buf := make([]byte, int(headerSize14)+len(indices)*int(writeRecordLength))

	writeHeader(buf, d, uint64(len(indices)), minX, maxX, minY, maxY, minZ, maxZ)

	qx := newQuantizer(minX, writeScaleX)
	qy := newQuantizer(minY, writeScaleY)
	qz := newQuantizer(minZ, writeScaleZ)

	for out, idx := range indices {
		record := buf[int(headerSize14)+out*int(writeRecordLength):]
		binary.LittleEndian.PutUint32(record[0:4], uint32(qx.quantize(float64(d.Positions[3*idx]))))
		binary.LittleEndian.PutUint32(record[4:8], uint32(qy.quantize(float64(d.Positions[3*idx+1]))))
		binary.LittleEndian.PutUint32(record[8:12], uint32(qz.quantize(float64(d.Positions[3*idx+2]))))
		binary.LittleEndian.PutUint16(record[12:14], d.Intensities[idx])
		record[14] = 0x11 // single return, first of one
		record[15] = 0
		record[16] = d.Classifications[idx]
		record[17] = 0 // user data
		binary.LittleEndian.PutUint16(record[18:20], 0) // scan angle
		binary.LittleEndian.PutUint16(record[20:22], 0) // point source id
		binary.LittleEndian.PutUint64(record[22:30], math.Float64bits(d.GpsTimes[idx]))
	}

	return buf
}

// WriteDataset writes the whole dataset to filePath as LAS.
func WriteDataset(filePath string, d *cloud.Dataset) error {
	return os.WriteFile(filePath, EncodeDataset(d), 0666)
}

// WriteSubset writes the points at the given indices to filePath as LAS.
func WriteSubset(filePath string, d *cloud.Dataset, indices []int32) error {
	return os.WriteFile(filePath, EncodeSubset(d, indices), 0666)
}

func writeHeader(buf []byte, d *cloud.Dataset, count uint64, minX, maxX, minY, maxY, minZ, maxZ float64) {
	copy(buf[0:4], headerSignature)
	// global encoding bit 0: timestamps are absolute, not week seconds
	binary.LittleEndian.PutUint16(buf[6:8], 1)
	copy(buf[8:24], d.ID[:])
	buf[24] = 1 // version major
	buf[25] = 4 // version minor
	copy(buf[26:26+len(systemIdentifier)], systemIdentifier)
	copy(buf[58:58+len(systemIdentifier)], systemIdentifier)

	now := time.Now().UTC()
	binary.LittleEndian.PutUint16(buf[90:92], uint16(now.YearDay()))
	binary.LittleEndian.PutUint16(buf[92:94], uint16(now.Year()))

	binary.LittleEndian.PutUint16(buf[94:96], uint16(headerSize14))
	binary.LittleEndian.PutUint32(buf[96:100], uint32(headerSize14))
	buf[104] = writeFormat
	binary.LittleEndian.PutUint16(buf[105:107], writeRecordLength)
	// legacy 32 bit count stays zero for point format 6

	putFloat64(buf, 131, writeScaleX)
	putFloat64(buf, 139, writeScaleY)
	putFloat64(buf, 147, writeScaleZ)
	putFloat64(buf, 155, minX)
	putFloat64(buf, 163, minY)
	putFloat64(buf, 171, minZ)
	putFloat64(buf, 179, maxX)
	putFloat64(buf, 187, minX)
	putFloat64(buf, 195, maxY)
	putFloat64(buf, 203, minY)
	putFloat64(buf, 211, maxZ)
	putFloat64(buf, 219, minZ)

	binary.LittleEndian.PutUint64(buf[247:255], count)
	binary.LittleEndian.PutUint64(buf[255:263], count) // points by return, first return
}

func putFloat64(buf []byte, offset int, value float64) {
	binary.LittleEndian.PutUint64(buf[offset:offset+8], math.Float64bits(value))
}

// quantizer converts a coordinate to its scaled integer representation using
// exact decimal arithmetic, so offset subtraction and scale division cannot
// drift the stored integers the way repeated float64 rounding can.
type quantizer struct {
	offset decimal.Decimal
	scale  decimal.Decimal
}

func newQuantizer(offset, scale float64) quantizer {
	return quantizer{
		offset: decimal.NewFromFloat(offset),
		scale:  decimal.NewFromFloat(scale),
	}
}

func (q quantizer) quantize(value float64) int32 {
	scaled := decimal.NewFromFloat(value).Sub(q.offset).Div(q.scale).Round(0)
	v := scaled.IntPart()
	if v > math.MaxInt32 || v < math.MinInt32 {
		glog.Warningf("coordinate %v does not fit the 32 bit record field, clamping", value)
		if v > math.MaxInt32 {
			return math.MaxInt32
		}
		return math.MinInt32
	}
	return int32(v)
}
