package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wgslfuzz/internal/pipeline"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[fuzz]
structure = true
operators = false
intensity = 0.9

[run]
seed = 1234
jobs = 2
corpus = "out/corpus"
`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	want.Fuzz.Structure = true
	want.Fuzz.Operators = false
	want.Fuzz.Intensity = 0.9
	want.Run.Seed = 1234
	want.Run.Jobs = 2
	want.Run.Corpus = filepath.Join(dir, "out", "corpus")
	want.Path = path
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"syntax":      "[fuzz\n",
		"unknown key": "[fuzz]\nintesity = 0.5\n",
		"intensity":   "[fuzz]\nintensity = 1.5\n",
		"negative":    "[run]\ncount = -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, t.TempDir(), body)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
	_, err := Load(writeConfig(t, t.TempDir(), "[fuzz]\nintesity = 0.5\n"))
	if err == nil || !strings.Contains(err.Error(), "fuzz.intesity") {
		t.Fatalf("error should name the unknown key: %v", err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[run]\npreset = \"rings\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Run.Preset != "rings" || cfg.Path != filepath.Join(root, FileName) {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestDefaultsAreValid(t *testing.T) {
	d := Defaults()
	if err := d.Fuzz.Validate(); err != nil {
		t.Fatal(err)
	}
	if d.Fuzz != pipeline.DefaultConfig() {
		t.Fatalf("fuzz defaults drifted from pipeline.DefaultConfig")
	}
}
