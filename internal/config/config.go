// Package config loads wgslfuzz.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"wgslfuzz/internal/pipeline"
)

// FileName is the config file looked up from the working directory upward.
const FileName = "wgslfuzz.toml"

// File mirrors wgslfuzz.toml.
type File struct {
	Fuzz pipeline.Config `toml:"fuzz"`
	Run  Run             `toml:"run"`

	// Path is where the file was read from; empty for defaults.
	Path string `toml:"-"`
}

// Run holds batch and CLI settings.
type Run struct {
	Seed    uint64 `toml:"seed"`
	Count   int    `toml:"count"`
	Jobs    int    `toml:"jobs"`
	Retries int    `toml:"retries"`
	Preset  string `toml:"preset"`
	// Presets is an extra YAML preset library.
	Presets  string `toml:"presets"`
	Corpus   string `toml:"corpus"`
	Validate bool   `toml:"validate"`
}

// Defaults returns the settings used when no file is found.
func Defaults() File {
	return File{
		Fuzz: pipeline.DefaultConfig(),
		Run: Run{
			Count:    16,
			Retries:  3,
			Preset:   "plasma",
			Validate: true,
		},
	}
}

// Find walks from startDir to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over Defaults. Unknown keys are rejected and relative
// paths are resolved against the file's directory.
func Load(path string) (File, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return File{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return File{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Fuzz.Validate(); err != nil {
		return File{}, fmt.Errorf("%s: [fuzz]: %w", path, err)
	}
	if cfg.Run.Count < 0 || cfg.Run.Jobs < 0 || cfg.Run.Retries < 0 {
		return File{}, fmt.Errorf("%s: [run] count, jobs and retries must not be negative", path)
	}
	root := filepath.Dir(path)
	cfg.Run.Corpus = resolve(root, cfg.Run.Corpus)
	cfg.Run.Presets = resolve(root, cfg.Run.Presets)
	cfg.Path = path
	return cfg, nil
}

func resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, filepath.FromSlash(p))
}

// Discover loads the nearest config file above startDir, or Defaults when
// there is none.
func Discover(startDir string) (File, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return File{}, err
	}
	if !ok {
		return Defaults(), nil
	}
	return Load(path)
}
