// Package cliutil implements the CLI's own collaborator logic that sits
// outside the core archive parser: filename filtering, verbose-listing
// formatting, and glob matching.
package cliutil

// MatchGlob reports whether text matches pattern under this module's glob
// rule: '*' matches zero or more characters, '?' matches exactly one,
// there are no bracket classes, and the match is against the whole
// filename with no path-segment anchoring.
//
// path/filepath.Match and bmatcuk/doublestar both treat '/' specially
// (anchoring matches to path segments and supporting "**"); neither can
// express "match anywhere in the full name, slashes included, no bracket
// classes" without extra escaping gymnastics, so this is hand-rolled
// exactly the way the archive this behavior was ported from does it.
func MatchGlob(pattern, text string) bool {
	return matchGlob([]rune(pattern), []rune(text))
}

func matchGlob(pattern, text []rune) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '*':
			// collapse consecutive '*' and try every split point.
			for len(pattern) > 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}
			if len(pattern) == 0 {
				return true
			}
			for i := 0; i <= len(text); i++ {
				if matchGlob(pattern, text[i:]) {
					return true
				}
			}
			return false
		case '?':
			if len(text) == 0 {
				return false
			}
			pattern, text = pattern[1:], text[1:]
		default:
			if len(text) == 0 || text[0] != pattern[0] {
				return false
			}
			pattern, text = pattern[1:], text[1:]
		}
	}
	return len(text) == 0
}
