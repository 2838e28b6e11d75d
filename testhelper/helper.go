package testhelper

import (
	"regexp"
	"strings"
	"testing"
)

var (
	whiteSpaces = regexp.MustCompile(`^(\s+)`)
	leadingTabs = regexp.MustCompile(`^(\t+)`)
)

func replaceTab(match string) string {
	return strings.Repeat("  ", strings.Count(match, "\t"))
}

// TrimIndent strips the indentation of the second line from a raw string
// literal and drops its first line. A blank last line collapses into a
// trailing newline, so
//
//	TrimIndent(t, `
//		set(state, _ => _.a)
//	`)
//
// yields "set(state, _ => _.a)\n". Deeper tabs become two spaces each.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) < 2 {
		return src
	}

	indent := whiteSpaces.FindString(lines[1])
	for i, line := range lines {
		line = strings.TrimPrefix(line, indent)
		lines[i] = leadingTabs.ReplaceAllStringFunc(line, replaceTab)
	}

	lines = lines[1:]
	if last := len(lines) - 1; last > 0 && strings.TrimSpace(lines[last]) == "" {
		lines[last] = ""
	}
	return strings.Join(lines, "\n")
}
