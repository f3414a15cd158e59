package render

import "strings"

var displayPrefixes = []string{"git+", "https://", "http://", "git://", "ssh://"}

// CleanURL strips the fetch-marker token and URL scheme prefixes from a
// source location for readable display. It performs no validation and
// assumes well-formed input.
func CleanURL(source string) string {
	s := source
	for changed := true; changed; {
		changed = false
		for _, p := range displayPrefixes {
			if strings.HasPrefix(s, p) {
				s = strings.TrimPrefix(s, p)
				changed = true
			}
		}
	}
	return s
}
