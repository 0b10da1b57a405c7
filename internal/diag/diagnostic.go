package diag

import "fmt"

// Pos is a location in shader text. Line and Col are 1-based; zero means unknown.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string {
	if p.Line == 0 {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// PosAt resolves a byte offset in src to a line and column.
func PosAt(src string, offset int) Pos {
	if offset < 0 {
		return Pos{Offset: offset}
	}
	if offset > len(src) {
		offset = len(src)
	}
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return Pos{Offset: offset, Line: line, Col: col}
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Pos
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s %s %s", d.Severity, d.Code.ID(), d.Primary, d.Message)
}
