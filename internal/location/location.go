// Package location implements anchored textual spans (spec §3.1, §4.C):
// 1-based line/column coordinates, string identity, and substring
// extraction over already-read file text.
package location

import (
	"fmt"
	"strings"
)

// Location is an anchored textual span. Coordinates are 1-based and
// inclusive; a zero value for any of Start/End means "unknown" per
// spec §3.1 — absence means unknown or whole file.
type Location struct {
	FilePath   string
	StartLine  int
	StartCol   int
	EndLine    int
	EndCol     int
}

// HasSpan reports whether any coordinate is set. When false, String omits
// the coordinate tail entirely.
func (l Location) HasSpan() bool {
	return l.StartLine != 0 || l.StartCol != 0 || l.EndLine != 0 || l.EndCol != 0
}

// String renders "<path>[:sl:sc-el:ec]", the tail elided when no
// coordinate is set. Two locations are equal iff their String forms are
// equal (spec §3.1).
func (l Location) String() string {
	if !l.HasSpan() {
		return l.FilePath
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", l.FilePath, l.StartLine, l.StartCol, l.EndLine, l.EndCol)
}

// Equal reports whether two locations have identical string forms.
func (l Location) Equal(other Location) bool {
	return l.String() == other.String()
}

// lines splits text on "\n", keeping the trailing empty segment produced by
// a trailing newline, per spec §4.C ("trailing \n is counted").
func lines(text string) []string {
	return strings.Split(text, "\n")
}

// clampCol clamps a 1-based column to the inclusive range [1, len(line)+1].
func clampCol(col, lineLen int) int {
	if col < 1 {
		return 1
	}
	if col > lineLen+1 {
		return lineLen + 1
	}
	return col
}

// offsetFor converts a 1-based (line, col) pair into a byte offset into
// text, where col is inclusive of the start character. Out-of-range
// columns clamp to the line end, per spec §4.C.
func offsetFor(ls []string, line, col int) int {
	if line < 1 {
		line = 1
	}
	if line > len(ls) {
		line = len(ls)
	}
	offset := 0
	for i := 0; i < line-1; i++ {
		offset += len(ls[i]) + 1 // +1 for the "\n" split away
	}
	lineText := ""
	if line-1 < len(ls) {
		lineText = ls[line-1]
	}
	col = clampCol(col, len(lineText))
	return offset + (col - 1)
}

// SliceText returns the substring of text spanned by [startLine:startCol,
// endLine:endCol), 1-based, inclusive of the start column and exclusive of
// the end column (spec §4.C).
func SliceText(text string, startLine, startCol, endLine, endCol int) string {
	ls := lines(text)
	start := offsetFor(ls, startLine, startCol)
	end := offsetFor(ls, endLine, endCol)
	if end < start {
		end = start
	}
	if end > len(text) {
		end = len(text)
	}
	if start > len(text) {
		start = len(text)
	}
	return text[start:end]
}

// SliceTextAround returns the spanned substring together with the prefix
// (all of text before the span) and suffix (all of text after it) — used
// by callers that want surrounding context for a match.
func SliceTextAround(text string, startLine, startCol, endLine, endCol int) (prefix, span, suffix string) {
	ls := lines(text)
	start := offsetFor(ls, startLine, startCol)
	end := offsetFor(ls, endLine, endCol)
	if end < start {
		end = start
	}
	if start > len(text) {
		start = len(text)
	}
	if end > len(text) {
		end = len(text)
	}
	return text[:start], text[start:end], text[end:]
}
