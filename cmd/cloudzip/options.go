package main

import "github.com/jessevdk/go-flags"

// options holds the parsed command line: a positional archive source
// (local path or http(s) URL), an optional include list, and the short
// flags controlling list/extract behavior.
type options struct {
	List           bool     `short:"l" description:"list files (short format)"`
	Verbose        bool     `short:"v" description:"list verbosely"`
	Pipe           bool     `short:"p" description:"extract files to stdout"`
	ExtractDir     string   `short:"d" long:"dir" description:"extract files into this directory" value-name:"DIR"`
	Exclude        []string `short:"x" description:"exclude files matching PATTERN" value-name:"PATTERN"`
	NeverOverwrite bool     `short:"n" description:"never overwrite existing files"`
	Overwrite      bool     `short:"o" description:"overwrite existing files without prompting"`
	JunkPaths      bool     `short:"j" description:"junk paths (do not recreate directories)"`
	Quiet          []bool   `short:"q" description:"quiet mode (may be repeated; a single -q already suppresses all messages)"`

	Args struct {
		File  string   `positional-arg-name:"FILE" required:"true"`
		Files []string `positional-arg-name:"FILES"`
	} `positional-args:"true"`
}

func (o *options) isQuiet() bool {
	return len(o.Quiet) > 0 || o.Pipe
}

func parseArgs(args []string) (*options, error) {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return &opts, nil
}
