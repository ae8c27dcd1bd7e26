// Package czip implements the archive parser and extractor: locating the
// End of Central Directory, resolving its ZIP64 variant, walking the
// Central Directory into a list of Entry values, resolving each entry's
// Local File Header to find its true data offset, and decoding STORED or
// DEFLATE payloads to memory, a file, or a stream.
package czip

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/valyala/bytebufferpool"

	"github.com/cloudzip/cloudzip/rangeio"
	"github.com/cloudzip/cloudzip/zipfmt"
)

// maxCommentSize is the largest trailing comment a ZIP file comment field
// can declare (it's a uint16 length).
const maxCommentSize = 65535

// Archive is a parsed view over a rangeio.Reader. The Central Directory is
// read and decoded lazily, on the first call to List, and cached for the
// archive's lifetime. Extract* calls read only the entry's Local File
// Header and data, never the Central Directory.
type Archive struct {
	src  rangeio.Reader
	size int64

	mu      sync.Mutex
	listed  bool
	listErr error
	entries []zipfmt.Entry
}

// Open wraps src as a parseable archive. src's Size() is sampled once.
func Open(src rangeio.Reader) *Archive {
	return &Archive{src: src, size: src.Size()}
}

// Close releases the underlying source.
func (a *Archive) Close() error {
	return a.src.Close()
}

// List returns every entry in the archive's Central Directory, in the
// order the Central Directory stores them. The first call does the actual
// parsing; subsequent calls return the cached result.
func (a *Archive) List(ctx context.Context) ([]zipfmt.Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.listed {
		return a.entries, a.listErr
	}

	entries, err := a.parseCentralDirectory(ctx)
	a.entries, a.listErr, a.listed = entries, err, true
	return a.entries, a.listErr
}

func (a *Archive) parseCentralDirectory(ctx context.Context) ([]zipfmt.Entry, error) {
	eocd, eocdOffset, err := a.findEOCD(ctx)
	if err != nil {
		return nil, err
	}

	cdOffset, cdSize, totalEntries := uint64(eocd.CDOffset), uint64(eocd.CDSize), uint64(eocd.TotalEntries)

	if eocd.IsZip64() {
		z64, err := a.readZip64EOCD(ctx, eocdOffset)
		if err != nil {
			return nil, err
		}
		cdOffset, cdSize, totalEntries = z64.CDOffset, z64.CDSize, z64.TotalEntries
	}

	// Resolve Open Question 2 (entry-count trust): a CDFH cannot be
	// smaller than its fixed portion, so total_entries can't exceed
	// cd_size / CDFHFixedSize. A hostile archive claiming billions of
	// entries over a small CD fails loudly here instead of allocating an
	// enormous slice.
	if maxPossible := cdSize / zipfmt.CDFHFixedSize; totalEntries > maxPossible {
		return nil, parseErr(KindTooManyEntries, int64(cdOffset),
			fmt.Errorf("declared %d entries but central directory of %d bytes can hold at most %d", totalEntries, cdSize, maxPossible))
	}

	if int64(cdOffset)+int64(cdSize) > a.size {
		return nil, parseErr(KindTruncated, int64(cdOffset),
			fmt.Errorf("central directory extends past end of source"))
	}

	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	bb.B = growTo(bb.B, int(cdSize))
	if _, err := readFull(ctx, a.src, int64(cdOffset), bb.B); err != nil {
		return nil, fmt.Errorf("read central directory error: %w", err)
	}

	entries := make([]zipfmt.Entry, 0, totalEntries)
	pos := 0
	for i := uint64(0); i < totalEntries; i++ {
		entry, n, err := decodeCDFH(bb.B[pos:], int64(cdOffset)+int64(pos))
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
		pos += n
	}

	return entries, nil
}

// findEOCD locates the End of Central Directory record in two phases: a
// fast path that assumes a zero-length comment, falling back to a bounded
// backward scan that disambiguates false-positive signature bytes in file
// content by checking the comment-length claim against the actual
// remaining tail.
func (a *Archive) findEOCD(ctx context.Context) (zipfmt.EndOfCentralDirectory, int64, error) {
	if a.size >= zipfmt.EOCDSize {
		eocd, offset, ok, err := a.tryFastPathEOCD(ctx)
		if err != nil {
			return zipfmt.EndOfCentralDirectory{}, 0, err
		}
		if ok {
			return eocd, offset, nil
		}
	}

	search := min(maxCommentSize+int64(zipfmt.EOCDSize), a.size)
	searchStart := a.size - search

	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	bb.B = growTo(bb.B, int(search))
	buf := bb.B
	if _, err := readFull(ctx, a.src, searchStart, buf); err != nil {
		return zipfmt.EndOfCentralDirectory{}, 0, fmt.Errorf("read EOCD search window error: %w", err)
	}

	for i := int(search) - zipfmt.EOCDSize; i >= 0; i-- {
		if !sigAt(buf, i, zipfmt.SigEOCD) {
			continue
		}

		commentLen := binary.LittleEndian.Uint16(buf[i+20 : i+22])
		if int(commentLen) != len(buf)-i-zipfmt.EOCDSize {
			continue
		}

		eocd, err := zipfmt.EOCDFromBytes(buf[i : i+zipfmt.EOCDSize])
		if err != nil {
			continue
		}
		return eocd, searchStart + int64(i), nil
	}

	return zipfmt.EndOfCentralDirectory{}, 0, parseErr(KindNoEOCD, a.size, fmt.Errorf("not a valid ZIP file"))
}

// tryFastPathEOCD reads the last EOCDSize bytes and accepts them as the
// EOCD record when the comment-length field is exactly zero, the
// overwhelmingly common case for an uncommented archive. ok is false when
// the tail didn't look like an EOCD record and the caller should fall
// back to the backward scan.
func (a *Archive) tryFastPathEOCD(ctx context.Context) (eocd zipfmt.EndOfCentralDirectory, offset int64, ok bool, err error) {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	bb.B = growTo(bb.B, zipfmt.EOCDSize)

	offset = a.size - zipfmt.EOCDSize
	if _, err := readFull(ctx, a.src, offset, bb.B); err != nil {
		return zipfmt.EndOfCentralDirectory{}, 0, false, fmt.Errorf("read EOCD tail error: %w", err)
	}

	if bb.B[20] != 0 || bb.B[21] != 0 {
		return zipfmt.EndOfCentralDirectory{}, 0, false, nil
	}

	eocd, decodeErr := zipfmt.EOCDFromBytes(bb.B)
	if decodeErr != nil {
		return zipfmt.EndOfCentralDirectory{}, 0, false, nil
	}

	return eocd, offset, true, nil
}

func (a *Archive) readZip64EOCD(ctx context.Context, eocdOffset int64) (zipfmt.Zip64EOCD, error) {
	locatorOffset := eocdOffset - zipfmt.Zip64LocatorSize
	locBuf := make([]byte, zipfmt.Zip64LocatorSize)
	if _, err := readFull(ctx, a.src, locatorOffset, locBuf); err != nil {
		return zipfmt.Zip64EOCD{}, fmt.Errorf("read ZIP64 locator error: %w", err)
	}

	loc, err := zipfmt.Zip64LocatorFromBytes(locBuf)
	if err != nil {
		return zipfmt.Zip64EOCD{}, parseErr(KindBadSignature, locatorOffset, err)
	}

	eocd64Buf := make([]byte, zipfmt.Zip64EOCDMinSize)
	if _, err := readFull(ctx, a.src, int64(loc.Zip64EOCDOffset), eocd64Buf); err != nil {
		return zipfmt.Zip64EOCD{}, fmt.Errorf("read ZIP64 EOCD error: %w", err)
	}

	eocd64, err := zipfmt.Zip64EOCDFromBytes(eocd64Buf)
	if err != nil {
		return zipfmt.Zip64EOCD{}, parseErr(KindBadSignature, int64(loc.Zip64EOCDOffset), err)
	}

	return eocd64, nil
}

func sigAt(buf []byte, i int, sig [4]byte) bool {
	return buf[i] == sig[0] && buf[i+1] == sig[1] && buf[i+2] == sig[2] && buf[i+3] == sig[3]
}

func growTo(b []byte, n int) []byte {
	if cap(b) < n {
		return make([]byte, n)
	}
	return b[:n]
}
