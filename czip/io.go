package czip

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudzip/cloudzip/rangeio"
)

// readFull issues ReadAt calls against src until buf is completely filled
// or an error (including io.EOF arriving early) occurs.
func readFull(ctx context.Context, src rangeio.Reader, offset int64, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := src.ReadAt(ctx, offset+int64(total), buf[total:])
		total += n
		if err != nil {
			if err == io.EOF && total == len(buf) {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			return total, fmt.Errorf("short read: got %d of %d bytes at offset %d", total, len(buf), offset)
		}
	}
	return total, nil
}
