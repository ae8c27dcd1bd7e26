package cliutil

import "testing"

func TestMatchGlob(t *testing.T) {
	cases := []struct {
		pattern, text string
		want          bool
	}{
		{"*.txt", "readme.txt", true},
		{"*.txt", "readme.md", false},
		{"data/*.csv", "data/users.csv", true},
		{"data/*.csv", "other/users.csv", false},
		{"file?.log", "file1.log", true},
		{"file?.log", "file12.log", false},
		{"*", "anything", true},
		{"exact", "exact", true},
		{"exact", "exactly", false},
		{"a*b*c", "aXbYc", true},
		{"a*b*c", "ac", false},
	}

	for _, c := range cases {
		if got := MatchGlob(c.pattern, c.text); got != c.want {
			t.Errorf("MatchGlob(%q, %q) = %v, want %v", c.pattern, c.text, got, c.want)
		}
	}
}
