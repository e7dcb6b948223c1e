package ui

import (
	"regexp"
	"strings"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes color codes so rendered views can be compared as text.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// viewLines splits a rendered view into plain-text lines.
func viewLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(stripANSI(s), "\n")
}
