package czip

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/cloudzip/cloudzip/zipfmt"
)

// decodeCDFH decodes one Central Directory File Header — its fixed
// portion, filename, extra field (including selective ZIP64 widening),
// and comment — starting at buf[0]. absOffset is only used for error
// reporting. It returns the resolved Entry and the number of bytes
// consumed from buf.
func decodeCDFH(buf []byte, absOffset int64) (zipfmt.Entry, int, error) {
	if len(buf) < zipfmt.CDFHFixedSize {
		return zipfmt.Entry{}, 0, parseErr(KindTruncated, absOffset, fmt.Errorf("central directory ended mid-header"))
	}

	h, err := zipfmt.CDFHFromBytes(buf)
	if err != nil {
		return zipfmt.Entry{}, 0, parseErr(KindBadSignature, absOffset, err)
	}

	pos := zipfmt.CDFHFixedSize
	nameEnd := pos + int(h.FileNameLength)
	extraEnd := nameEnd + int(h.ExtraLength)
	commentEnd := extraEnd + int(h.CommentLength)
	if commentEnd > len(buf) {
		return zipfmt.Entry{}, 0, parseErr(KindCorruptEntry, absOffset, fmt.Errorf("entry name/extra/comment extends past central directory"))
	}

	name := decodeLossyUTF8(buf[pos:nameEnd])

	compressedSize := uint64(h.CompressedSize)
	uncompressedSize := uint64(h.UncompressedSize)
	lfhOffset := uint64(h.LFHOffset)

	if err := resolveZip64Extra(buf[nameEnd:extraEnd], &uncompressedSize, &compressedSize, &lfhOffset); err != nil {
		return zipfmt.Entry{}, 0, parseErr(KindCorruptEntry, absOffset, err)
	}

	entry := zipfmt.Entry{
		Name:             name,
		Method:           h.Method,
		CompressedSize:   compressedSize,
		UncompressedSize: uncompressedSize,
		CRC32:            h.CRC32,
		LFHOffset:        lfhOffset,
		DOSDate:          h.ModDate,
		DOSTime:          h.ModTime,
		IsDir:            zipfmt.NameEndsInSlash(name),
	}

	return entry, commentEnd, nil
}

// resolveZip64Extra walks the {id, size, payload} records in a CDFH's
// extra blob. When it finds the ZIP64 extended-information record
// (id == 0x0001), it replaces exactly those base fields that currently
// hold the 0xFFFFFFFF sentinel, reading their 8-byte replacements in
// strict order: uncompressed size, then compressed size, then LFH offset.
// A naive implementation that always reads three u64s misaligns on
// archives where only some fields overflowed — the per-field sentinel
// check is mandatory.
func resolveZip64Extra(extra []byte, uncompressedSize, compressedSize, lfhOffset *uint64) error {
	pos := 0
	for pos+4 <= len(extra) {
		id := binary.LittleEndian.Uint16(extra[pos : pos+2])
		size := int(binary.LittleEndian.Uint16(extra[pos+2 : pos+4]))
		payloadStart := pos + 4
		payloadEnd := payloadStart + size
		if payloadEnd > len(extra) {
			return fmt.Errorf("extra field record overruns extra blob")
		}

		if id == zipfmt.Zip64ExtraID {
			payload := extra[payloadStart:payloadEnd]
			p := 0

			if *uncompressedSize == 0xFFFFFFFF && p+8 <= len(payload) {
				*uncompressedSize = binary.LittleEndian.Uint64(payload[p : p+8])
				p += 8
			}
			if *compressedSize == 0xFFFFFFFF && p+8 <= len(payload) {
				*compressedSize = binary.LittleEndian.Uint64(payload[p : p+8])
				p += 8
			}
			if *lfhOffset == 0xFFFFFFFF && p+8 <= len(payload) {
				*lfhOffset = binary.LittleEndian.Uint64(payload[p : p+8])
				p += 8
			}
			// any trailing payload (e.g. disk-start-number) is simply
			// skipped by moving on to payloadEnd below.
		}

		pos = payloadEnd
	}

	return nil
}

// decodeLossyUTF8 returns name as UTF-8, replacing any invalid sequences
// rather than rejecting the archive. ZIP filenames are historically CP437
// or otherwise unspecified; this module never errors on filename content.
func decodeLossyUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	buf := make([]rune, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		buf = append(buf, r)
		b = b[size:]
	}
	return string(buf)
}
