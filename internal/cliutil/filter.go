package cliutil

import (
	"path/filepath"
	"strings"
)

// Filter implements the CLI's include/exclude selection over entry names:
// directories are never selected for extraction; a non-empty include list
// keeps only entries matching by literal full name, literal basename, or
// glob; excludes always win and match by substring or glob.
type Filter struct {
	Includes []string
	Excludes []string
}

// Select reports whether the entry called name should be extracted.
// Directory entries (isDir true) always get false, since directories are
// always excluded from extraction.
func (f Filter) Select(name string, isDir bool) bool {
	if isDir {
		return false
	}

	if len(f.Includes) > 0 && !matchesAny(f.Includes, name, literalMatch) {
		return false
	}

	if matchesAny(f.Excludes, name, substringMatch) {
		return false
	}

	return true
}

func literalMatch(pattern, name string) bool {
	return name == pattern || filepath.Base(name) == pattern || MatchGlob(pattern, name)
}

func substringMatch(pattern, name string) bool {
	return strings.Contains(name, pattern) || MatchGlob(pattern, name)
}

func matchesAny(patterns []string, name string, match func(pattern, name string) bool) bool {
	for _, p := range patterns {
		if match(p, name) {
			return true
		}
	}
	return false
}
