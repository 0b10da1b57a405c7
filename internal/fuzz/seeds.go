package fuzztests

import (
	"io/fs"
	"os"
	"path"
	"strings"
	"testing"

	"wgslfuzz/internal/preset"
)

const maxSeedBytes = 64 << 10

// repoRoot is relative to this package directory, where go test runs.
const repoRoot = "../.."

// edgeSeeds hit the anchor locator's failure paths directly.
var edgeSeeds = []string{
	"",
	"fn main(",
	"fn main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> { return vec4<f32>(uv, 0.0, 1.0); }\n",
	"fn main() { return; }",
	"fn main(uv: vec2<f32>) { return (((uv.x; }",
	"return return return 1.0;",
	"/* fn main(uv: vec2<f32>) { return 1.0; } */",
	"fn main(p: vec2<f32>) -> vec4<f32> { let c = p.yx * 2.0; return vec4<f32>(c.xyxy); }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range collectSeeds() {
		f.Add(clampSeed([]byte(s)))
	}
}

func collectSeeds() []string {
	seeds := append([]string(nil), edgeSeeds...)
	for _, p := range preset.All() {
		seeds = append(seeds, p.Code, p.Source())
	}
	root := os.DirFS(repoRoot)
	seeds = append(seeds, testdataSeeds(root)...)
	if doc, err := fs.ReadFile(root, "README.md"); err == nil {
		seeds = append(seeds, fencedBlocks(string(doc), "wgsl")...)
	}
	return seeds
}

// testdataSeeds returns every *.wgsl file under testdata; unreadable
// entries are skipped.
func testdataSeeds(root fs.FS) []string {
	var out []string
	_ = fs.WalkDir(root, "testdata", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ".wgsl" {
			return nil
		}
		if data, err := fs.ReadFile(root, p); err == nil {
			out = append(out, string(data))
		}
		return nil
	})
	return out
}

// fencedBlocks extracts the bodies of ```lang code fences from a markdown
// document, keeping indentation. An unclosed fence is dropped.
func fencedBlocks(doc, lang string) []string {
	var (
		out    []string
		body   []string
		inside bool
	)
	for line := range strings.Lines(doc) {
		fence := strings.TrimSpace(line)
		switch {
		case !inside && fence == "```"+lang:
			inside, body = true, body[:0]
		case inside && strings.HasPrefix(fence, "```"):
			inside = false
			if block := strings.Join(body, ""); strings.TrimSpace(block) != "" {
				out = append(out, block)
			}
		case inside:
			body = append(body, line)
		}
	}
	return out
}

func clampSeed(src []byte) []byte {
	return append([]byte(nil), src[:min(len(src), maxSeedBytes)]...)
}
