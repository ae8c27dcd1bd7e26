package zipfmt

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCDFH(nameLen, extraLen, commentLen uint16, method uint16) []byte {
	buf := make([]byte, CDFHFixedSize)
	copy(buf[0:4], SigCDFH[:])
	binary.LittleEndian.PutUint16(buf[4:6], 0)
	binary.LittleEndian.PutUint16(buf[6:8], 0)
	binary.LittleEndian.PutUint16(buf[8:10], 0)
	binary.LittleEndian.PutUint16(buf[10:12], method)
	binary.LittleEndian.PutUint16(buf[12:14], 0x21)
	binary.LittleEndian.PutUint16(buf[14:16], 0x6000)
	binary.LittleEndian.PutUint32(buf[16:20], 0xDEADBEEF)
	binary.LittleEndian.PutUint32(buf[20:24], 100)
	binary.LittleEndian.PutUint32(buf[24:28], 200)
	binary.LittleEndian.PutUint16(buf[28:30], nameLen)
	binary.LittleEndian.PutUint16(buf[30:32], extraLen)
	binary.LittleEndian.PutUint16(buf[32:34], commentLen)
	binary.LittleEndian.PutUint16(buf[34:36], 0)
	binary.LittleEndian.PutUint16(buf[36:38], 0)
	binary.LittleEndian.PutUint32(buf[38:42], 0)
	binary.LittleEndian.PutUint32(buf[42:46], 500)
	return buf
}

func TestCDFHFromBytes(t *testing.T) {
	buf := buildCDFH(4, 0, 0, 8)

	cdfh, err := CDFHFromBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(8), cdfh.Method.Uint16())
	assert.Equal(t, uint32(100), cdfh.CompressedSize)
	assert.Equal(t, uint32(200), cdfh.UncompressedSize)
	assert.Equal(t, uint32(500), cdfh.LFHOffset)
	assert.Equal(t, uint16(4), cdfh.FileNameLength)
}

func TestCDFHFromBytesRejectsBadSignature(t *testing.T) {
	buf := buildCDFH(0, 0, 0, 0)
	buf[1] = 0xFF

	_, err := CDFHFromBytes(buf)
	assert.Error(t, err)
}
