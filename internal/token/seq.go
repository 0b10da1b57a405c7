package token

import "strings"

// Seq is an ordered token sequence. Passes treat a Seq as immutable:
// every rewrite goes through Splice or Clone and yields a fresh slice.
type Seq []Token

// String serializes the sequence by concatenating token text in order.
func (s Seq) String() string {
	n := 0
	for i := range s {
		n += len(s[i].Text)
	}
	var b strings.Builder
	b.Grow(n)
	for i := range s {
		b.WriteString(s[i].Text)
	}
	return b.String()
}

// Clone returns a copy that shares no backing array with s.
func (s Seq) Clone() Seq {
	if s == nil {
		return nil
	}
	out := make(Seq, len(s))
	copy(out, s)
	return out
}

// Splice returns a new sequence where s[start:end] is replaced by repl.
// Out of range bounds are clamped.
func (s Seq) Splice(start, end int, repl ...Token) Seq {
	start = clamp(start, 0, len(s))
	end = clamp(end, start, len(s))
	out := make(Seq, 0, len(s)-(end-start)+len(repl))
	out = append(out, s[:start]...)
	out = append(out, repl...)
	out = append(out, s[end:]...)
	return out
}

// Slice returns the text of s[start:end].
func (s Seq) Slice(start, end int) string {
	start = clamp(start, 0, len(s))
	end = clamp(end, start, len(s))
	return s[start:end].String()
}

// NextSignificant returns the index of the first non-trivia token after i, or -1.
func (s Seq) NextSignificant(i int) int {
	for j := i + 1; j < len(s); j++ {
		if !s[j].IsTrivia() {
			return j
		}
	}
	return -1
}

// PrevSignificant returns the index of the last non-trivia token before i, or -1.
func (s Seq) PrevSignificant(i int) int {
	if i > len(s) {
		i = len(s)
	}
	for j := i - 1; j >= 0; j-- {
		if !s[j].IsTrivia() {
			return j
		}
	}
	return -1
}

// MatchClose returns the index of the delimiter closing the one at open.
// Only the delimiter pair at open is counted. Returns -1 when unbalanced.
func (s Seq) MatchClose(open int) int {
	if open < 0 || open >= len(s) || s[open].Kind != Punctuation {
		return -1
	}
	var closing string
	switch s[open].Text {
	case "(":
		closing = ")"
	case "[":
		closing = "]"
	case "{":
		closing = "}"
	default:
		return -1
	}
	depth := 0
	for j := open; j < len(s); j++ {
		if s[j].Kind != Punctuation {
			continue
		}
		switch s[j].Text {
		case s[open].Text:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// Idents returns the set of identifier texts in s.
func (s Seq) Idents() map[string]struct{} {
	out := make(map[string]struct{})
	for i := range s {
		if s[i].Kind == Identifier {
			out[s[i].Text] = struct{}{}
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
