package zipfmt

import (
	"encoding/binary"
	"fmt"
)

// SigCDFH is the 4-byte Central Directory File Header signature.
var SigCDFH = [4]byte{0x50, 0x4B, 0x01, 0x02}

// CDFHFixedSize is the size of a Central Directory File Header's fixed
// portion, before the variable-length filename, extra field, and comment.
const CDFHFixedSize = 46

// Zip64ExtraID is the header ID for the ZIP64 extended information extra
// field within a CDFH's extra blob.
const Zip64ExtraID = 0x0001

// CDFH is the fixed portion of a Central Directory File Header, decoded
// from its first CDFHFixedSize bytes. The variable-length filename, extra
// field, and comment that follow are handled by the caller (package czip),
// since resolving them may require per-field ZIP64 substitution.
type CDFH struct {
	VersionMadeBy     uint16
	VersionNeeded     uint16
	Flags             uint16
	Method            CompressionMethod
	ModTime           uint16
	ModDate           uint16
	CRC32             uint32
	CompressedSize    uint32 // may be the ZIP64 sentinel
	UncompressedSize  uint32 // may be the ZIP64 sentinel
	FileNameLength    uint16
	ExtraLength       uint16
	CommentLength     uint16
	DiskNumberStart   uint16
	InternalAttrs     uint16
	ExternalAttrs     uint32
	LFHOffset         uint32 // may be the ZIP64 sentinel
}

// CDFHFromBytes decodes the fixed portion of a CDFH. buf must be at least
// CDFHFixedSize bytes and its first 4 bytes must match SigCDFH.
func CDFHFromBytes(buf []byte) (CDFH, error) {
	var h CDFH

	if len(buf) < CDFHFixedSize {
		return h, fmt.Errorf("CDFH truncated: need %d bytes, got %d", CDFHFixedSize, len(buf))
	}
	if !matchSig(buf, SigCDFH) {
		return h, fmt.Errorf("invalid CDFH signature")
	}

	h.VersionMadeBy = binary.LittleEndian.Uint16(buf[4:6])
	h.VersionNeeded = binary.LittleEndian.Uint16(buf[6:8])
	h.Flags = binary.LittleEndian.Uint16(buf[8:10])
	h.Method = FromUint16(binary.LittleEndian.Uint16(buf[10:12]))
	h.ModTime = binary.LittleEndian.Uint16(buf[12:14])
	h.ModDate = binary.LittleEndian.Uint16(buf[14:16])
	h.CRC32 = binary.LittleEndian.Uint32(buf[16:20])
	h.CompressedSize = binary.LittleEndian.Uint32(buf[20:24])
	h.UncompressedSize = binary.LittleEndian.Uint32(buf[24:28])
	h.FileNameLength = binary.LittleEndian.Uint16(buf[28:30])
	h.ExtraLength = binary.LittleEndian.Uint16(buf[30:32])
	h.CommentLength = binary.LittleEndian.Uint16(buf[32:34])
	h.DiskNumberStart = binary.LittleEndian.Uint16(buf[34:36])
	h.InternalAttrs = binary.LittleEndian.Uint16(buf[36:38])
	h.ExternalAttrs = binary.LittleEndian.Uint32(buf[38:42])
	h.LFHOffset = binary.LittleEndian.Uint32(buf[42:46])

	return h, nil
}
