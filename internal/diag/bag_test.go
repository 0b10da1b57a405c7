package diag_test

import (
	"testing"

	"wgslfuzz/internal/diag"
)

func TestBagLimit(t *testing.T) {
	b := diag.NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.LexUnknownChar})
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	if b.HasErrors() {
		t.Fatalf("warnings must not count as errors")
	}
	if !b.HasWarnings() {
		t.Fatalf("HasWarnings() = false")
	}
}

func TestBagHugeLimitIsCapped(t *testing.T) {
	b := diag.NewBag(1 << 20)
	if b.Cap() != ^uint16(0) {
		t.Fatalf("Cap() = %d", b.Cap())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := diag.NewBag(8)
	b.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.AnchorNoReturn, Primary: diag.Pos{Offset: 9}})
	b.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.ValParse, Primary: diag.Pos{Offset: 2}})
	b.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.ValParse, Primary: diag.Pos{Offset: 2}})
	b.Sort()
	b.Dedup()
	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("after dedup got %d items", len(items))
	}
	if items[0].Code != diag.ValParse || items[1].Code != diag.AnchorNoReturn {
		t.Fatalf("unexpected order: %v", items)
	}
	if got := len(b.BySeverity(diag.SevError)); got != 1 {
		t.Fatalf("BySeverity(error) = %d", got)
	}
}

func TestDedupReporter(t *testing.T) {
	b := diag.NewBag(8)
	r := diag.NewDedupReporter(diag.BagReporter{Bag: b})
	r.Report(diag.LexUnknownChar, diag.SevWarning, diag.Pos{Offset: 1}, "unknown character")
	r.Report(diag.LexUnknownChar, diag.SevWarning, diag.Pos{Offset: 1}, "unknown character")
	r.Report(diag.LexUnknownChar, diag.SevWarning, diag.Pos{Offset: 4}, "unknown character")
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
}

func TestPosAt(t *testing.T) {
	src := "ab\ncd\n"
	cases := []struct {
		off       int
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{4, 2, 2},
		{100, 3, 1},
	}
	for _, c := range cases {
		p := diag.PosAt(src, c.off)
		if p.Line != c.line || p.Col != c.col {
			t.Errorf("PosAt(%d) = %d:%d, want %d:%d", c.off, p.Line, p.Col, c.line, c.col)
		}
	}
	if p := diag.PosAt(src, -1); p.Line != 0 {
		t.Errorf("negative offset resolved to line %d", p.Line)
	}
}

func TestCodeID(t *testing.T) {
	if got := diag.LexUnknownChar.ID(); got != "LEX1001" {
		t.Fatalf("ID() = %q", got)
	}
	if got := diag.ValCompile.ID(); got != "VAL3004" {
		t.Fatalf("ID() = %q", got)
	}
	if got := diag.AnchorNoEntry.ID(); got != "ANC4001" {
		t.Fatalf("ID() = %q", got)
	}
}

func TestBagSortPutsUnlocatedLast(t *testing.T) {
	b := diag.NewBag(4)
	b.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.AnchorNoEntry})
	b.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.ValParse, Primary: diag.Pos{Offset: 40, Line: 3, Col: 2}})
	b.Sort()
	if got := b.Items()[0].Code; got != diag.ValParse {
		t.Fatalf("first item = %s, want the located error", got.ID())
	}
}
