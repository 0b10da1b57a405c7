package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wgslfuzz/internal/diag"
	"wgslfuzz/internal/lexer"
)

const src = "fn main() {\n    return x;\n}\n"

func sampleBag() *diag.Bag {
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.ValParse, Message: "unknown identifier x", Primary: diag.PosAt(src, 23)})
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.AnchorNoCoord, Message: "no coordinate"})
	bag.Sort()
	return bag
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), src, PrettyOpts{Path: "shader.wgsl"})
	out := buf.String()
	for _, want := range []string{
		"shader.wgsl:2:12: ERROR VAL3002: unknown identifier x",
		"2 |     return x;",
		"  |            ^",
		"shader.wgsl: WARNING ANC4002: no coordinate",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("colors must be off unless requested")
	}

	buf.Reset()
	Pretty(&buf, sampleBag(), src, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI colors")
	}
}

func TestPrettyContext(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), src, PrettyOpts{Context: 1})
	for _, want := range []string{"1 | fn main() {", "3 | }"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("context missing %q:\n%s", want, buf.String())
		}
	}
}

func TestSummary(t *testing.T) {
	if got := Summary(sampleBag()); got != "1 error, 1 warning" {
		t.Fatalf("Summary = %q", got)
	}
	if got := Summary(diag.NewBag(1)); got != "no diagnostics" {
		t.Fatalf("Summary = %q", got)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{Path: "a.wgsl", Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	want := DiagnosticsOutput{
		Count: 1,
		Diagnostics: []DiagnosticJSON{{
			Severity: "ERROR", Code: "VAL3002", Title: "Shader parse failed", Message: "unknown identifier x",
			Location: LocationJSON{File: "a.wgsl", Offset: 23, Line: 2, Col: 12},
		}},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestSarif(t *testing.T) {
	var buf bytes.Buffer
	if err := Sarif(&buf, sampleBag(), "a.wgsl", SarifRunMeta{ToolName: "wgslfuzz", InvocationArgs: []string{"validate"}}); err != nil {
		t.Fatal(err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatal(err)
	}
	run := log.Runs[0]
	if len(run.Results) != 2 || run.Results[0].Level != "error" || run.Results[0].Locations[0].PhysicalLocation.Region.StartLine != 2 {
		t.Fatalf("unexpected results %+v", run.Results)
	}
	if run.Results[1].Locations[0].PhysicalLocation.Region != nil {
		t.Fatalf("unknown position must omit the region")
	}
	if len(run.Tool.Driver.Rules) != 2 || run.Invocations[0].ExecutionSuccessful {
		t.Fatalf("unexpected run metadata %+v", run)
	}
}

func TestTokens(t *testing.T) {
	seq := lexer.Tokenize("let a = 1.0;")
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, seq, "let a = 1.0;", TokenOptions{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 || !strings.Contains(lines[3], `"1.0" at 1:9`) {
		t.Fatalf("unexpected listing:\n%s", buf.String())
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, seq, "let a = 1.0;", TokenOptions{Trivia: true}); err != nil {
		t.Fatal(err)
	}
	var rows []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(seq) || rows[1].Kind != "Whitespace" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}
