package anchor

import (
	"wgslfuzz/internal/token"
)

// EntryName is the name of the fragment entry function.
const EntryName = "main"

// FallbackCoordName is the parameter name assumed to hold UV coordinates
// when no @location(0) annotation is found.
const FallbackCoordName = "uv"

// FindEntry returns the index of the first `fn` identifier followed, modulo
// whitespace and comments, by the identifier EntryName.
func FindEntry(seq token.Seq) (int, bool) {
	for i := range seq {
		if !seq[i].IsIdent("fn") {
			continue
		}
		if j := seq.NextSignificant(i); j >= 0 && seq[j].IsIdent(EntryName) {
			return i, true
		}
	}
	return -1, false
}

// FindParams returns the indices of the parentheses enclosing the parameter
// list of the function whose `fn` token is at fnIdx.
func FindParams(seq token.Seq, fnIdx int) (open, close int, ok bool) {
	name := seq.NextSignificant(fnIdx)
	if name < 0 {
		return -1, -1, false
	}
	open = seq.NextSignificant(name)
	if open < 0 || !seq[open].IsPunct("(") {
		return -1, -1, false
	}
	close = seq.MatchClose(open)
	if close < 0 {
		return -1, -1, false
	}
	return open, close, true
}

// FindCoordName returns the name of the parameter bound to the fragment
// coordinate input within seq[open:close]. A parameter annotated with
// @location(0) wins; otherwise a parameter literally named FallbackCoordName.
func FindCoordName(seq token.Seq, open, close int) (string, bool) {
	if open < 0 || close > len(seq) || open >= close {
		return "", false
	}
	fallback := false
	for i := open + 1; i < close; i++ {
		if isLocationZero(seq, i) {
			if name, ok := paramAfterAttributes(seq, i, close); ok {
				return name, true
			}
		}
		if seq[i].IsIdent(FallbackCoordName) && isParamName(seq, i, close) {
			fallback = true
		}
	}
	if fallback {
		return FallbackCoordName, true
	}
	return "", false
}

// FindBodyOpen returns the index of the first `{` after the parameter list.
func FindBodyOpen(seq token.Seq, paramsClose int) (int, bool) {
	for i := paramsClose + 1; i < len(seq); i++ {
		if seq[i].IsPunct("{") {
			return i, true
		}
		if seq[i].IsPunct(";") {
			return -1, false
		}
	}
	return -1, false
}

// FindLastReturn returns the index of the last `return` identifier and of the
// `;` that terminates its statement. The terminator is the first `;` outside
// any parentheses or brackets opened after `return`.
func FindLastReturn(seq token.Seq) (ret, semi int, ok bool) {
	ret = -1
	for i := len(seq) - 1; i >= 0; i-- {
		if seq[i].IsIdent("return") {
			ret = i
			break
		}
	}
	if ret < 0 {
		return -1, -1, false
	}
	depth := 0
	for j := ret + 1; j < len(seq); j++ {
		if seq[j].Kind != token.Punctuation {
			continue
		}
		switch seq[j].Text {
		case "(", "[":
			depth++
		case ")", "]":
			depth--
		case ";":
			if depth <= 0 {
				return ret, j, true
			}
		case "}":
			if depth <= 0 {
				return -1, -1, false
			}
		}
	}
	return -1, -1, false
}

// isLocationZero matches `@ location ( 0 )` starting at i.
func isLocationZero(seq token.Seq, i int) bool {
	if !seq[i].IsPunct("@") {
		return false
	}
	want := []func(token.Token) bool{
		func(t token.Token) bool { return t.IsIdent("location") },
		func(t token.Token) bool { return t.IsPunct("(") },
		func(t token.Token) bool {
			return t.Kind == token.Number && (t.Text == "0" || t.Text == "0u" || t.Text == "0i")
		},
		func(t token.Token) bool { return t.IsPunct(")") },
	}
	j := i
	for _, match := range want {
		j = seq.NextSignificant(j)
		if j < 0 || !match(seq[j]) {
			return false
		}
	}
	return true
}

// paramAfterAttributes skips the attribute at `@` index i and any following
// attributes, returning the identifier that is followed by ':'.
func paramAfterAttributes(seq token.Seq, i, close int) (string, bool) {
	j := i
	for j >= 0 && j < close {
		if seq[j].IsPunct("@") {
			j = seq.NextSignificant(j) // attribute name
			if j < 0 {
				return "", false
			}
			next := seq.NextSignificant(j)
			if next >= 0 && seq[next].IsPunct("(") {
				j = seq.MatchClose(next)
				if j < 0 {
					return "", false
				}
			}
			j = seq.NextSignificant(j)
			continue
		}
		if seq[j].Kind == token.Identifier && isParamName(seq, j, close) {
			return seq[j].Text, true
		}
		return "", false
	}
	return "", false
}

// isParamName reports whether the identifier at i is directly followed by ':'
// inside the parameter list.
func isParamName(seq token.Seq, i, close int) bool {
	n := seq.NextSignificant(i)
	return n >= 0 && n < close && seq[n].IsPunct(":")
}
