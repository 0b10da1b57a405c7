package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	t.Cleanup(func() { Version, color.NoColor = orig, origNoColor })

	color.NoColor = true
	Version = "1.2.3-rc1"
	if got := Colored(); got != "1.2.3-rc1" {
		t.Errorf("Colored() = %q without color", got)
	}

	color.NoColor = false
	if got := Colored(); !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc1") {
		t.Errorf("Colored() = %q, want ANSI escapes", got)
	}

	Version = "dev"
	if got := Colored(); got != "dev" {
		t.Errorf("Colored() = %q for a non-semver version", got)
	}
}

func TestCommitPrefersLdflags(t *testing.T) {
	orig := GitCommit
	t.Cleanup(func() { GitCommit = orig })
	GitCommit = "abc123def456"
	if got := Commit(); got != "abc123def456" {
		t.Errorf("Commit() = %q", got)
	}
}
