// Package testkit holds token stream invariants shared by tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"wgslfuzz/internal/token"
)

// CheckLexInvariants verifies that seq is a lossless tokenization of src:
// 1) every token is non-empty and has a valid kind
// 2) offsets start at zero and each token follows its predecessor
// 3) the texts concatenate back to src
func CheckLexInvariants(src string, seq token.Seq) error {
	next := 0
	for i, tok := range seq {
		if tok.Text == "" {
			return fmt.Errorf("token %d is empty", i)
		}
		if tok.Kind == token.Invalid {
			return fmt.Errorf("token %d has invalid kind", i)
		}
		if tok.Offset != next {
			return fmt.Errorf("token %d at offset %d, want %d", i, tok.Offset, next)
		}
		if next+len(tok.Text) > len(src) || src[next:next+len(tok.Text)] != tok.Text {
			return fmt.Errorf("token %d text %q does not match source at %d", i, tok.Text, next)
		}
		next += len(tok.Text)
	}
	if next != len(src) {
		return fmt.Errorf("tokens cover %d of %d bytes", next, len(src))
	}
	return nil
}

// CheckMutantInvariants verifies a mutated stream against the source it was
// lexed from. Tokens keeping a source offset must still hold the source text
// and appear in source order; everything else must be marked synthetic.
func CheckMutantInvariants(src string, mutant token.Seq) error {
	last := -1
	for i, tok := range mutant {
		if tok.Text == "" {
			return fmt.Errorf("token %d is empty", i)
		}
		if tok.Kind == token.Invalid {
			return fmt.Errorf("token %d has invalid kind", i)
		}
		if tok.IsSynthetic() {
			continue
		}
		if tok.Offset < 0 || tok.Offset+len(tok.Text) > len(src) {
			return fmt.Errorf("token %d offset %d out of range", i, tok.Offset)
		}
		if src[tok.Offset:tok.Offset+len(tok.Text)] != tok.Text {
			return fmt.Errorf("token %d %q was rewritten but kept its offset %d", i, tok.Text, tok.Offset)
		}
		if tok.Offset <= last {
			return fmt.Errorf("token %d at offset %d is out of source order", i, tok.Offset)
		}
		last = tok.Offset
	}
	return nil
}
