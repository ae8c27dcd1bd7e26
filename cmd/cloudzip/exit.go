//go:build !windows

package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

// exit maps a parse or run error to the process exit code. A nil error,
// or one that indicates go-flags already printed help/usage, exits 0;
// anything else exits 1.
func exit(err error) {
	if err != nil && !flags.WroteHelp(err) {
		os.Exit(1)
	}
}
