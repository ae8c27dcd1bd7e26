// Command cloudzip lists and extracts entries from a ZIP archive that may
// be a local file or an http(s):// URL, fetching only the bytes it needs
// from a remote archive via HTTP Range requests.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/cloudzip/cloudzip/czip"
	"github.com/cloudzip/cloudzip/internal/cliutil"
	"github.com/cloudzip/cloudzip/rangeio"
)

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		exit(err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintln(os.Stderr, "cloudzip:", err)
		exit(err)
		return
	}

	exit(nil)
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func run(ctx context.Context, opts *options) error {
	var src rangeio.Reader
	var err error

	if isHTTPURL(opts.Args.File) {
		src, err = rangeio.OpenHTTP(ctx, opts.Args.File)
	} else {
		src, err = rangeio.OpenLocal(opts.Args.File)
	}
	if err != nil {
		return fmt.Errorf("open %q error: %w", opts.Args.File, err)
	}
	defer func() { _ = src.Close() }()

	archive := czip.Open(src)
	defer func() { _ = archive.Close() }()

	httpSrc, isRemote := src.(*rangeio.HTTPReader)
	var transferredBefore uint64
	if isRemote {
		transferredBefore = httpSrc.TransferredBytes()
	}

	if opts.List || opts.Verbose {
		err = listEntries(ctx, archive, opts)
	} else {
		err = extractEntries(ctx, archive, opts)
	}
	if err != nil {
		return err
	}

	if isRemote && !opts.isQuiet() {
		fmt.Fprintf(os.Stderr, "\nTotal bytes transferred: %s\n",
			humanize.Bytes(httpSrc.TransferredBytes()-transferredBefore))
	}

	return nil
}

func listEntries(ctx context.Context, archive *czip.Archive, opts *options) error {
	entries, err := archive.List(ctx)
	if err != nil {
		return err
	}

	lw := cliutil.NewListingWriter(os.Stdout, opts.Verbose)
	lw.Header()
	for _, e := range entries {
		lw.Entry(e)
	}
	lw.Footer()
	return nil
}
