package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/cloudzip/cloudzip/czip"
	"github.com/cloudzip/cloudzip/internal"
	"github.com/cloudzip/cloudzip/internal/cliutil"
	"github.com/cloudzip/cloudzip/util"
	"github.com/cloudzip/cloudzip/zipfmt"
)

// extractEntries filters the listing, resolves an output path per entry
// (pipe / -d DIR / cwd, honoring -j), applies the overwrite policy, and
// extracts.
func extractEntries(ctx context.Context, archive *czip.Archive, opts *options) error {
	entries, err := archive.List(ctx)
	if err != nil {
		return err
	}

	filter := cliutil.Filter{Includes: opts.Args.Files, Excludes: opts.Exclude}

	var selected []zipfmt.Entry
	for _, e := range entries {
		if filter.Select(e.Name, e.IsDir) {
			selected = append(selected, e)
		}
	}

	var bar *progressbar.ProgressBar
	if !opts.Pipe && !opts.isQuiet() && len(selected) > 1 {
		var total int64
		for _, e := range selected {
			total += int64(e.UncompressedSize)
		}
		bar = util.ExtractionProgressBar(total, "extracting")
	}

	for i, e := range selected {
		entryCtx := internal.WithPrefixLogger(ctx, internal.Prefix(i+1, len(selected), e.Name))
		if err := extractOne(entryCtx, archive, e, opts, bar); err != nil {
			return fmt.Errorf("extract %q error: %w", e.Name, err)
		}
	}

	return nil
}

func extractOne(ctx context.Context, archive *czip.Archive, e zipfmt.Entry, opts *options, bar *progressbar.ProgressBar) error {
	if opts.Pipe {
		return archive.ExtractToStream(ctx, e, os.Stdout)
	}

	logger := internal.MustLogger(ctx)
	outputPath := resolveOutputPath(e.Name, opts)

	if _, err := os.Stat(outputPath); err == nil {
		switch {
		case opts.NeverOverwrite:
			if !opts.isQuiet() {
				logger.Print("skipping (file exists)")
			}
			return nil
		case !opts.Overwrite:
			if !opts.isQuiet() {
				logger.Print("skipping (use -o to overwrite)")
			}
			return nil
		}
	}

	if !opts.isQuiet() {
		logger.Print("extracting")
	}

	if err := archive.ExtractToFile(ctx, e, outputPath); err != nil {
		return err
	}

	if bar != nil {
		_ = bar.Add64(int64(e.UncompressedSize))
	}

	return nil
}

func resolveOutputPath(name string, opts *options) string {
	fileName := name
	if opts.JunkPaths {
		fileName = filepath.Base(name)
	}

	if opts.ExtractDir != "" {
		return filepath.Join(opts.ExtractDir, fileName)
	}
	return fileName
}
