package czip

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"

	"github.com/cloudzip/cloudzip/util"
	"github.com/cloudzip/cloudzip/zipfmt"
)

// dataOffset resolves an entry's Local File Header to find where its
// compressed bytes actually begin. The LFH's own filename/extra lengths
// govern this computation even when they differ from the CDFH's — the
// ZIP specification permits the two headers to disagree, and the LFH is
// authoritative for locating data.
func (a *Archive) dataOffset(ctx context.Context, e zipfmt.Entry) (int64, error) {
	lfhOffset := int64(e.LFHOffset)

	buf := make([]byte, zipfmt.LFHSize)
	if _, err := readFull(ctx, a.src, lfhOffset, buf); err != nil {
		return 0, fmt.Errorf("read local file header error: %w", err)
	}

	lfh, err := zipfmt.LFHFromBytes(buf)
	if err != nil {
		return 0, parseErr(KindBadSignature, lfhOffset, err)
	}

	return lfhOffset + zipfmt.LFHSize + int64(lfh.FileNameLength) + int64(lfh.ExtraLength), nil
}

// ExtractToMemory reads and decompresses entry into a newly allocated
// byte slice.
func (a *Archive) ExtractToMemory(ctx context.Context, e zipfmt.Entry) ([]byte, error) {
	offset, err := a.dataOffset(ctx, e)
	if err != nil {
		return nil, err
	}

	switch {
	case e.Method.IsStored():
		buf := make([]byte, e.UncompressedSize)
		if _, err := readFull(ctx, a.src, offset, buf); err != nil {
			return nil, fmt.Errorf("read stored entry %q error: %w", e.Name, err)
		}
		return buf, nil

	case e.Method.IsDeflate():
		compressed := make([]byte, e.CompressedSize)
		if _, err := readFull(ctx, a.src, offset, compressed); err != nil {
			return nil, fmt.Errorf("read deflate entry %q error: %w", e.Name, err)
		}

		// ZIP carries a raw DEFLATE bitstream (RFC 1951) with no zlib
		// or gzip framing, so the compressed bytes are fed to the
		// decoder exactly as read.
		fr := flate.NewReader(bytes.NewReader(compressed))
		defer func() { _ = fr.Close() }()

		out := make([]byte, e.UncompressedSize)
		if _, err := io.ReadFull(fr, out); err != nil {
			return nil, fmt.Errorf("inflate entry %q error: %w", e.Name, err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported compression method: %d", e.Method.Uint16())
	}
}

// ExtractToFile decompresses entry and writes it to path, creating any
// missing parent directories first. An empty parent (the current
// directory) is not created.
func (a *Archive) ExtractToFile(ctx context.Context, e zipfmt.Entry, path string) error {
	if parent := filepath.Dir(path); parent != "" && parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("create parent directory for %q error: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file %q error: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return a.ExtractToStream(ctx, e, f)
}

// ExtractToStream decompresses entry and copies it verbatim to sink.
func (a *Archive) ExtractToStream(ctx context.Context, e zipfmt.Entry, sink io.Writer) error {
	data, err := a.ExtractToMemory(ctx, e)
	if err != nil {
		return err
	}

	_, err = util.CopyBufferWithContext(ctx, sink, bytes.NewReader(data), nil)
	if err != nil {
		return fmt.Errorf("write entry %q error: %w", e.Name, err)
	}
	return nil
}
