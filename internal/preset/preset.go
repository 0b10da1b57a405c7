// Package preset holds the built-in shader programs and the helper preamble
// every program is compiled with.
package preset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Embedded library and helper definitions.

//go:embed presets.yaml
var builtinYAML []byte

//go:embed preamble.wgsl
var preamble string

// ErrUnknownPreset is returned by Lookup for names not in the library.
var ErrUnknownPreset = errors.New("unknown preset")

// Name identifies a preset.
type Name string

const (
	Gradient Name = "gradient"
	Plasma   Name = "plasma"
	Rings    Name = "rings"
	Tunnel   Name = "tunnel"
)

// Preset is one named fragment program. Code does not include the preamble.
type Preset struct {
	Name        Name   `yaml:"name"`
	Description string `yaml:"description"`
	Code        string `yaml:"code"`
}

// Source returns the preset composed with the preamble.
func (p Preset) Source() string { return Compose(p.Code) }

// Library is an ordered set of presets.
type Library struct {
	Presets []Preset `yaml:"presets"`

	index map[Name]int
}

// Parse decodes a YAML preset library. Unknown fields are rejected.
func Parse(data []byte) (*Library, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var lib Library
	if err := dec.Decode(&lib); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	lib.index = make(map[Name]int, len(lib.Presets))
	for i, p := range lib.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset #%d: missing name", i+1)
		}
		if strings.TrimSpace(p.Code) == "" {
			return nil, fmt.Errorf("preset %q: empty code", p.Name)
		}
		if _, dup := lib.index[p.Name]; dup {
			return nil, fmt.Errorf("preset %q: defined twice", p.Name)
		}
		lib.index[p.Name] = i
	}
	return &lib, nil
}

// Load reads and parses a preset library file.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	lib, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// Lookup returns the preset called name.
func (l *Library) Lookup(name string) (Preset, error) {
	if i, ok := l.index[Name(name)]; ok {
		return l.Presets[i], nil
	}
	return Preset{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownPreset, name, strings.Join(l.names(), ", "))
}

// Names lists preset names in library order.
func (l *Library) Names() []Name {
	out := make([]Name, len(l.Presets))
	for i, p := range l.Presets {
		out[i] = p.Name
	}
	return out
}

func (l *Library) names() []string {
	out := make([]string, len(l.Presets))
	for i, p := range l.Presets {
		out[i] = string(p.Name)
	}
	return out
}

var builtin = sync.OnceValue(func() *Library {
	lib, err := Parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("preset: embedded library: %v", err))
	}
	return lib
})

// Builtin returns the embedded library.
func Builtin() *Library { return builtin() }

// All returns a copy of the embedded presets.
func All() []Preset {
	return append([]Preset(nil), builtin().Presets...)
}

// Lookup finds name in the embedded library.
func Lookup(name string) (Preset, error) { return builtin().Lookup(name) }

// Preamble returns the helper definitions shared by every program: the
// Uniforms block bound as u, hash21, noise, palette and smin.
func Preamble() string { return preamble }

// Compose prepends the preamble to code.
func Compose(code string) string {
	return preamble + "\n" + code
}
