package cliutil

import (
	"fmt"
	"io"

	"github.com/cloudzip/cloudzip/zipfmt"
)

// ListingWriter renders entries in the short ("-l") or verbose ("-v")
// format: right-justified fixed-width columns, a dashed rule, and a
// totals row aggregating every non-directory entry.
type ListingWriter struct {
	w       io.Writer
	Verbose bool

	totalUncompressed uint64
	totalCompressed   uint64
	fileCount         int
}

func NewListingWriter(w io.Writer, verbose bool) *ListingWriter {
	return &ListingWriter{w: w, Verbose: verbose}
}

func (lw *ListingWriter) Header() {
	if !lw.Verbose {
		return
	}
	fmt.Fprintf(lw.w, "%10s  %10s  %5s  %10s  %5s  Name\n", "Length", "Size", "Cmpr", "Date", "Time")
	fmt.Fprintln(lw.w, dashes(70))
}

func (lw *ListingWriter) Entry(e zipfmt.Entry) {
	if !lw.Verbose {
		fmt.Fprintln(lw.w, e.Name)
		return
	}

	t := e.ModTime()
	fmt.Fprintf(lw.w, "%10d  %10d  %s  %04d-%02d-%02d  %02d:%02d  %s\n",
		e.UncompressedSize, e.CompressedSize, ratio(e.CompressedSize, e.UncompressedSize),
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), e.Name)

	if !e.IsDir {
		lw.totalUncompressed += e.UncompressedSize
		lw.totalCompressed += e.CompressedSize
		lw.fileCount++
	}
}

func (lw *ListingWriter) Footer() {
	if !lw.Verbose {
		return
	}
	fmt.Fprintln(lw.w, dashes(70))
	fmt.Fprintf(lw.w, "%10d  %10d  %s  %21s  %d files\n",
		lw.totalUncompressed, lw.totalCompressed, ratio(lw.totalCompressed, lw.totalUncompressed), "", lw.fileCount)
}

func ratio(compressed, uncompressed uint64) string {
	if uncompressed == 0 {
		return "   0%"
	}
	return fmt.Sprintf("%4d%%", 100-(compressed*100/uncompressed))
}

func dashes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
