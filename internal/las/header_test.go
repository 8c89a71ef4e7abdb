package las

import (
	"encoding/binary"
	"testing"

	"github.com/atmoscan/calipso_cloud/internal/cloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalHeader returns a syntactically valid LAS 1.2 buffer with zero points.
func minimalHeader() []byte {
	buf := make([]byte, minHeaderSize)
	copy(buf[0:4], headerSignature)
	buf[24] = 1
	buf[25] = 2
	buf[104] = 1                                              // point format 1
	binary.LittleEndian.PutUint16(buf[105:107], 28)           // record length
	binary.LittleEndian.PutUint32(buf[96:100], minHeaderSize) // point offset
	putFloat64(buf, 131, 1)
	putFloat64(buf, 139, 1)
	putFloat64(buf, 147, 1)
	return buf
}

func TestReadHeaderRejectsBrokenBuffers(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		_, err := ReadHeader(make([]byte, 10))
		var formatErr *FormatError
		require.ErrorAs(t, err, &formatErr)
	})

	t.Run("bad signature", func(t *testing.T) {
		buf := minimalHeader()
		copy(buf[0:4], "LAZF")
		_, err := ReadHeader(buf)
		var formatErr *FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Contains(t, formatErr.Reason, "signature")
	})

	t.Run("compressed point format", func(t *testing.T) {
		buf := minimalHeader()
		buf[104] = 1 | compressionBit
		_, err := ReadHeader(buf)
		var formatErr *FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Contains(t, formatErr.Reason, "compressed")
	})

	t.Run("unknown point format", func(t *testing.T) {
		buf := minimalHeader()
		buf[104] = 11
		_, err := ReadHeader(buf)
		require.Error(t, err)
	})

	t.Run("record length below format minimum", func(t *testing.T) {
		buf := minimalHeader()
		binary.LittleEndian.PutUint16(buf[105:107], 20) // format 1 needs 28
		_, err := ReadHeader(buf)
		require.Error(t, err)
	})

	t.Run("declared records exceed buffer", func(t *testing.T) {
		buf := minimalHeader()
		binary.LittleEndian.PutUint32(buf[107:111], 1000)
		_, err := ReadHeader(buf)
		var formatErr *FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Contains(t, formatErr.Reason, "exceed")
	})
}

func TestReadHeaderLegacyCount(t *testing.T) {
	buf := minimalHeader()
	records := make([]byte, 3*28)
	binary.LittleEndian.PutUint32(buf[107:111], 3)
	buf = append(buf, records...)

	h, err := ReadHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), h.PointCount)
	assert.Equal(t, uint8(1), h.PointFormat)
	assert.Equal(t, uint16(28), h.RecordLength)
}

func TestReadHeaderRoundTrip(t *testing.T) {
	d := cloud.NewDataset(2)
	d.Append(12.5, 41.9, 10.25, 1500, 3, 4.2e8)
	d.Append(-70.66, -33.45, 0.5, 2500, 1, 4.2e8+10)

	buf := EncodeDataset(d)

	h, err := ReadHeader(buf)
	require.NoError(t, err)

	assert.Equal(t, uint8(1), h.VersionMajor)
	assert.Equal(t, uint8(4), h.VersionMinor)
	assert.Equal(t, writeFormat, h.PointFormat)
	assert.Equal(t, writeRecordLength, h.RecordLength)
	assert.Equal(t, uint64(2), h.PointCount)

	assert.InDelta(t, -70.66, h.MinX, 1e-4)
	assert.InDelta(t, 12.5, h.MaxX, 1e-4)
	assert.InDelta(t, -33.45, h.MinY, 1e-4)
	assert.InDelta(t, 41.9, h.MaxY, 1e-4)
	assert.InDelta(t, 0.5, h.MinZ, 1e-3)
	assert.InDelta(t, 10.25, h.MaxZ, 1e-3)
}

func TestRecordSlicing(t *testing.T) {
	d := cloud.NewDataset(3)
	d.Append(1, 1, 1, 10, 0, 100)
	d.Append(2, 2, 2, 20, 0, 200)
	d.Append(3, 3, 3, 30, 0, 300)

	buf := EncodeDataset(d)
	h, err := ReadHeader(buf)
	require.NoError(t, err)

	for i := uint64(0); i < h.PointCount; i++ {
		record := h.Record(buf, i)
		assert.Len(t, record, int(h.RecordLength))
	}
	// intensity of the middle record sits at byte 12
	assert.Equal(t, uint16(20), binary.LittleEndian.Uint16(h.Record(buf, 1)[12:14]))
}
