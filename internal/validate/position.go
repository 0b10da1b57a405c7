package validate

import (
	"regexp"
	"strconv"

	"wgslfuzz/internal/diag"
)

var (
	lineColRe = regexp.MustCompile(`(?i)\bline\s*:?\s*(\d+)(?:\s*[,:]?\s*col(?:umn)?\s*:?\s*(\d+))?`)
	pairRe    = regexp.MustCompile(`\b(\d+):(\d+)\b`)
)

// posFromError pulls a line (and column, when present) out of a compiler
// message. The zero Pos means the message carries no location.
func posFromError(src, msg string) diag.Pos {
	var line, col int
	if m := lineColRe.FindStringSubmatch(msg); m != nil {
		line, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			col, _ = strconv.Atoi(m[2])
		}
	} else if m := pairRe.FindStringSubmatch(msg); m != nil {
		line, _ = strconv.Atoi(m[1])
		col, _ = strconv.Atoi(m[2])
	}
	if line <= 0 {
		return diag.Pos{}
	}
	return offsetOf(src, line, max(col, 1))
}

// offsetOf resolves a 1-based line and column. Positions past the end of a
// line or the text are clamped.
func offsetOf(src string, line, col int) diag.Pos {
	cur := 1
	start := 0
	for i := 0; i < len(src) && cur < line; i++ {
		if src[i] == '\n' {
			cur++
			start = i + 1
		}
	}
	if cur < line {
		return diag.PosAt(src, len(src))
	}
	off := start
	for off < len(src) && off-start < col-1 && src[off] != '\n' {
		off++
	}
	return diag.PosAt(src, off)
}
