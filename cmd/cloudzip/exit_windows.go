//go:build windows

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"golang.org/x/term"
)

// exit holds the console window open on Windows (where double-clicking the
// binary spawns a console that closes immediately on exit) before mapping
// the error to a process exit code the same way the unix build does.
func exit(err error) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Press any key to close console")
		_, _ = bufio.NewReader(os.Stdin).ReadByte()
	}

	if err != nil && !flags.WroteHelp(err) {
		os.Exit(1)
	}
}
