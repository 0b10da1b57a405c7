package fuzztests

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestFencedBlocks(t *testing.T) {
	doc := "intro\n```wgsl\nfn a() {}\n  let x = 1;\n```\n```sh\nls\n```\n```wgsl\n\n```\n```wgsl\nfn b() {}\n"
	got := fencedBlocks(doc, "wgsl")
	want := []string{"fn a() {}\n  let x = 1;\n"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestTestdataSeeds(t *testing.T) {
	root := fstest.MapFS{
		"testdata/a.wgsl":     {Data: []byte("a")},
		"testdata/sub/b.wgsl": {Data: []byte("b")},
		"testdata/notes.txt":  {Data: []byte("skip")},
		"elsewhere/c.wgsl":    {Data: []byte("skip")},
	}
	got := testdataSeeds(root)
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("seeds mismatch (-want +got):\n%s", diff)
	}
}

func TestClampSeed(t *testing.T) {
	big := make([]byte, maxSeedBytes+10)
	if got := clampSeed(big); len(got) != maxSeedBytes {
		t.Fatalf("clamped to %d bytes", len(got))
	}
	small := []byte("ab")
	got := clampSeed(small)
	got[0] = 'x'
	if small[0] != 'a' {
		t.Fatalf("clampSeed must copy")
	}
}

func TestCollectSeedsIncludesRepository(t *testing.T) {
	seeds := collectSeeds()
	if len(seeds) <= len(edgeSeeds) {
		t.Fatalf("expected preset and testdata seeds, got %d", len(seeds))
	}
}
