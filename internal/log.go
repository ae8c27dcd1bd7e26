// Package internal holds ambient helpers shared by the cloudzip CLI:
// context-bound logging that doesn't belong in the core
// czip/zipfmt/rangeio packages. Filename filtering lives in the
// internal/cliutil subpackage.
package internal

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/cloudzip/cloudzip/util"
)

// Prefix builds a consistent log-line prefix for a file being processed,
// truncating long names so the prefix stays readable.
func Prefix(i, n int, name string) string {
	return fmt.Sprintf(`[%d/%d] "%s" - `, i, n, util.TruncateRightWithSuffix(name, 30, "..."))
}

type prefixKey struct{}
type loggerKey struct{}

// WithPrefixLogger creates a new *log.Logger writing to stderr with the
// given prefix, then attaches both the logger and the raw prefix string
// to ctx.
func WithPrefixLogger(ctx context.Context, prefix string) context.Context {
	logger := log.New(os.Stderr, prefix, 0)
	return context.WithValue(context.WithValue(ctx, prefixKey{}, prefix), loggerKey{}, logger)
}

// MustPrefix returns the prefix string attached to ctx by WithPrefixLogger.
func MustPrefix(ctx context.Context) string {
	return ctx.Value(prefixKey{}).(string)
}

// MustLogger returns the *log.Logger attached to ctx by WithPrefixLogger.
func MustLogger(ctx context.Context) *log.Logger {
	return ctx.Value(loggerKey{}).(*log.Logger)
}
