package testkit

import (
	"testing"

	"wgslfuzz/internal/token"
)

func TestCheckLexInvariants(t *testing.T) {
	src := "let x = 1.0;"
	good := token.Seq{
		{Kind: token.Identifier, Text: "let", Offset: 0},
		{Kind: token.Whitespace, Text: " ", Offset: 3},
		{Kind: token.Identifier, Text: "x", Offset: 4},
		{Kind: token.Whitespace, Text: " ", Offset: 5},
		{Kind: token.Punctuation, Text: "=", Offset: 6},
		{Kind: token.Whitespace, Text: " ", Offset: 7},
		{Kind: token.Number, Text: "1.0", Offset: 8},
		{Kind: token.Punctuation, Text: ";", Offset: 11},
	}
	if err := CheckLexInvariants(src, good); err != nil {
		t.Fatalf("valid stream rejected: %v", err)
	}
	if err := CheckLexInvariants(src, good[:len(good)-1]); err == nil {
		t.Fatalf("short stream accepted")
	}
	bad := good.Clone()
	bad[2].Offset = 5
	if err := CheckLexInvariants(src, bad); err == nil {
		t.Fatalf("gap accepted")
	}
	bad = good.Clone()
	bad[6].Kind = token.Invalid
	if err := CheckLexInvariants(src, bad); err == nil {
		t.Fatalf("invalid kind accepted")
	}
}

func TestCheckMutantInvariants(t *testing.T) {
	src := "a+b"
	ok := token.Seq{
		{Kind: token.Identifier, Text: "a", Offset: 0},
		token.New(token.Punctuation, "*"),
		{Kind: token.Identifier, Text: "b", Offset: 2},
	}
	if err := CheckMutantInvariants(src, ok); err != nil {
		t.Fatalf("valid mutant rejected: %v", err)
	}
	rewritten := ok.Clone()
	rewritten[1] = token.Token{Kind: token.Punctuation, Text: "*", Offset: 1}
	if err := CheckMutantInvariants(src, rewritten); err == nil {
		t.Fatalf("rewrite without synthetic offset accepted")
	}
	dup := append(ok.Clone(), token.Token{Kind: token.Identifier, Text: "a", Offset: 0})
	if err := CheckMutantInvariants(src, dup); err == nil {
		t.Fatalf("duplicated source token accepted")
	}
}
