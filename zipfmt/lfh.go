package zipfmt

import (
	"encoding/binary"
	"fmt"
)

// SigLFH is the 4-byte Local File Header signature.
var SigLFH = [4]byte{0x50, 0x4B, 0x03, 0x04}

// LFHSize is the fixed size of a Local File Header, before the variable
// filename and extra field.
const LFHSize = 30

// LFH carries only the two fields this module needs from a Local File
// Header: the filename and extra-field lengths, which govern where an
// entry's data actually begins. The Central Directory is authoritative for
// every other field (size, method, timestamps), so the rest of the LFH is
// never decoded.
type LFH struct {
	FileNameLength uint16
	ExtraLength    uint16
}

// LFHFromBytes decodes the fixed portion of an LFH. buf must be at least
// LFHSize bytes and its first 4 bytes must match SigLFH.
func LFHFromBytes(buf []byte) (LFH, error) {
	var h LFH

	if len(buf) < LFHSize {
		return h, fmt.Errorf("LFH truncated: need %d bytes, got %d", LFHSize, len(buf))
	}
	if !matchSig(buf, SigLFH) {
		return h, fmt.Errorf("invalid LFH signature")
	}

	h.FileNameLength = binary.LittleEndian.Uint16(buf[26:28])
	h.ExtraLength = binary.LittleEndian.Uint16(buf[28:30])

	return h, nil
}
