package cliutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cloudzip/cloudzip/zipfmt"
)

func TestListingWriterNonVerboseJustPrintsNames(t *testing.T) {
	var buf bytes.Buffer
	lw := NewListingWriter(&buf, false)
	lw.Header()
	lw.Entry(zipfmt.Entry{Name: "hello.txt"})
	lw.Footer()

	got := buf.String()
	if got != "hello.txt\n" {
		t.Fatalf("unexpected non-verbose output: %q", got)
	}
}

func TestListingWriterVerboseIncludesTotals(t *testing.T) {
	var buf bytes.Buffer
	lw := NewListingWriter(&buf, true)
	lw.Header()
	lw.Entry(zipfmt.Entry{Name: "a.txt", UncompressedSize: 100, CompressedSize: 50})
	lw.Entry(zipfmt.Entry{Name: "dir/", IsDir: true})
	lw.Footer()

	got := buf.String()
	if !strings.Contains(got, "a.txt") {
		t.Fatalf("expected entry name in output, got %q", got)
	}
	if !strings.Contains(got, "1 files") {
		t.Fatalf("expected totals row counting only the non-directory entry, got %q", got)
	}
	if !strings.Contains(got, "50%") {
		t.Fatalf("expected 50%% compression ratio in output, got %q", got)
	}
}

func TestRatioHandlesZeroUncompressed(t *testing.T) {
	if ratio(0, 0) != "   0%" {
		t.Fatalf("unexpected ratio for empty entry: %q", ratio(0, 0))
	}
}
