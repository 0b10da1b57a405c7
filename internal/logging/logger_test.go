package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_DefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Writer: &buf})

	logger.Debug("debug suppressed")
	if got := buf.Len(); got != 0 {
		t.Fatalf("expected debug output to be suppressed, got %d bytes", got)
	}

	logger.Info("visible message", "pass", "chaos")
	out := buf.String()
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "pass=chaos") {
		t.Fatalf("expected info log with attributes, got %q", out)
	}
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Verbose: true, Writer: &buf})

	logger.Debug("debug visible")
	if out := buf.String(); !strings.Contains(out, "debug visible") {
		t.Fatalf("expected debug output when verbose, got %q", out)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	New(Options{JSON: true, Writer: &buf}).Info("hello", "seed", 7)
	if out := buf.String(); !strings.Contains(out, `"msg":"hello"`) || !strings.Contains(out, `"seed":7`) {
		t.Fatalf("unexpected JSON output %q", out)
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	if logger.Enabled(t.Context(), 0) {
		t.Fatalf("nop logger must report disabled")
	}
	logger.With("key", "value").WithGroup("g").Error("dropped")

	if OrNop(nil) == nil {
		t.Fatalf("OrNop(nil) returned nil")
	}
	l := New(Options{Writer: &bytes.Buffer{}})
	if OrNop(l) != l {
		t.Fatalf("OrNop must keep a non-nil logger")
	}
}
