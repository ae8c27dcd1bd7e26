// Package rangeio provides a random-access read abstraction over a byte
// source that may be a local file or a remote resource fetched over HTTP
// Range requests.
package rangeio

import (
	"context"
	"io"
)

// Reader is a random-access source: given an offset and a buffer, it fills
// the buffer starting at that offset and reports how many bytes landed.
//
// Implementations must be safe for concurrent use by multiple goroutines.
// ReadAt must never move an implicit read position; the returned count may
// be shorter than len(buf) only near EOF or on a short response from a
// remote source.
type Reader interface {
	io.Closer

	// ReadAt fills buf starting at offset and returns the number of bytes
	// copied. A short read that isn't EOF indicates the caller should
	// retry at offset+n.
	ReadAt(ctx context.Context, offset int64, buf []byte) (int, error)

	// Size returns the total byte length of the source, sampled once at
	// construction time.
	Size() int64
}
