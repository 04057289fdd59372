// Package diff renders unified diffs between generated stylesheet texts.
// The engine logs them at debug level when a widget's stylesheet is
// replaced, so a theme or breakpoint change can be traced to the exact
// lines it moved.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxLines        = 400
	truncateMessage = "... (diff truncated) ..."
)

// Unified diffs two stylesheet texts line by line. Identical inputs yield
// the empty string. The output carries no timestamps; the same pair of
// inputs always renders the same diff.
func Unified(previous, next []byte, fromLabel, toLabel string) string {
	if bytes.Equal(previous, next) {
		return ""
	}

	dmp := diffmatchpatch.New()
	prevChars, nextChars, lineIndex := dmp.DiffLinesToChars(string(previous), string(next))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(prevChars, nextChars, false), lineIndex)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n+++ %s\n", fromLabel, toLabel)

	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}

	out := buf.String()
	lines := strings.Split(out, "\n")
	if len(lines) > maxLines {
		return strings.Join(lines[:maxLines], "\n") + "\n" + truncateMessage + "\n"
	}
	return out
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}
