package rangeio

import (
	"context"
	"fmt"
	"os"
)

// LocalReader is a Reader backed by a positioned read against an *os.File.
//
// os.File.ReadAt maps directly onto the platform's positioned-read
// primitive (pread on unix), so concurrent callers sharing one LocalReader
// never race and never disturb an implicit file offset.
type LocalReader struct {
	f    *os.File
	size int64
}

// OpenLocal opens name for reading and samples its size.
func OpenLocal(name string) (*LocalReader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open local zip error: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat local zip error: %w", err)
	}

	return &LocalReader{f: f, size: fi.Size()}, nil
}

func (r *LocalReader) ReadAt(_ context.Context, offset int64, buf []byte) (int, error) {
	n, err := r.f.ReadAt(buf, offset)
	if err != nil {
		return n, fmt.Errorf("read local zip error: %w", err)
	}
	return n, nil
}

func (r *LocalReader) Size() int64 {
	return r.size
}

func (r *LocalReader) Close() error {
	return r.f.Close()
}
