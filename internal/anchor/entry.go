package anchor

import "wgslfuzz/internal/token"

// Entry bundles the landmarks of the entry function.
type Entry struct {
	Fn          int // index of `fn`
	ParamsOpen  int
	ParamsClose int
	BodyOpen    int
	Coord       string // empty when no coordinate parameter was found
}

// HasCoord reports whether a coordinate parameter was identified.
func (e Entry) HasCoord() bool { return e.Coord != "" }

// Locate finds the entry function, its parameter list and body. The
// coordinate name is optional; ok is false only when the function or its
// body cannot be found.
func Locate(seq token.Seq) (Entry, bool) {
	fn, ok := FindEntry(seq)
	if !ok {
		return Entry{}, false
	}
	open, close, ok := FindParams(seq, fn)
	if !ok {
		return Entry{}, false
	}
	body, ok := FindBodyOpen(seq, close)
	if !ok {
		return Entry{}, false
	}
	coord, _ := FindCoordName(seq, open, close)
	return Entry{
		Fn:          fn,
		ParamsOpen:  open,
		ParamsClose: close,
		BodyOpen:    body,
		Coord:       coord,
	}, true
}

// Return describes the final return statement.
type Return struct {
	Keyword int // index of `return`
	Semi    int // index of the terminating `;`
	// ExprStart..ExprEnd is the expression without surrounding whitespace.
	ExprStart int
	ExprEnd   int
}

// Expr returns the exact text of the return expression.
func (r Return) Expr(seq token.Seq) string {
	return seq.Slice(r.ExprStart, r.ExprEnd)
}

// LocateReturn finds the final return statement and trims whitespace around
// its expression. ok is false when there is no return or it has no expression.
func LocateReturn(seq token.Seq) (Return, bool) {
	ret, semi, ok := FindLastReturn(seq)
	if !ok {
		return Return{}, false
	}
	start, end := ret+1, semi
	for start < end && seq[start].Kind == token.Whitespace {
		start++
	}
	for end > start && seq[end-1].Kind == token.Whitespace {
		end--
	}
	if start == end {
		return Return{}, false
	}
	return Return{Keyword: ret, Semi: semi, ExprStart: start, ExprEnd: end}, true
}
