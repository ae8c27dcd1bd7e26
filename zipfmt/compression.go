// Package zipfmt decodes the fixed-layout records of the ZIP file format:
// the End of Central Directory and its ZIP64 variants, Central Directory
// File Headers, and Local File Headers. Every decoder here is a pure
// function over an already-fetched byte slice; none of it performs I/O.
package zipfmt

import "fmt"

// CompressionMethod tags the compression algorithm a Central Directory File
// Header declares for an entry. Only Stored and Deflate are extractable;
// any other numeric value round-trips through Unknown.
type CompressionMethod struct {
	value uint16
}

// Stored is compression method 0: data stored verbatim.
var Stored = CompressionMethod{value: 0}

// Deflate is compression method 8: raw DEFLATE (RFC 1951), no zlib/gzip
// framing.
var Deflate = CompressionMethod{value: 8}

// FromUint16 wraps a raw CDFH compression-method field. Every value round
// trips: FromUint16(m).Uint16() == m.
func FromUint16(m uint16) CompressionMethod {
	return CompressionMethod{value: m}
}

// Uint16 returns the raw method number.
func (m CompressionMethod) Uint16() uint16 {
	return m.value
}

// IsStored reports whether m is compression method 0.
func (m CompressionMethod) IsStored() bool {
	return m.value == Stored.value
}

// IsDeflate reports whether m is compression method 8.
func (m CompressionMethod) IsDeflate() bool {
	return m.value == Deflate.value
}

// String renders the method for listings and error messages.
func (m CompressionMethod) String() string {
	switch m.value {
	case Stored.value:
		return "stored"
	case Deflate.value:
		return "deflate"
	default:
		return fmt.Sprintf("unknown(%d)", m.value)
	}
}
