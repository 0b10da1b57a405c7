package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"wgslfuzz/internal/mutate"
)

// ErrIntensity is returned by Config.Validate for intensities outside (0, 1].
var ErrIntensity = errors.New("intensity must be in (0, 1]")

// Config selects which passes are eligible and how hard they mutate.
type Config struct {
	Numbers   bool    `toml:"numbers" yaml:"numbers" msgpack:"numbers" json:"numbers"`
	Operators bool    `toml:"operators" yaml:"operators" msgpack:"operators" json:"operators"`
	Builtins  bool    `toml:"builtins" yaml:"builtins" msgpack:"builtins" json:"builtins"`
	Geometry  bool    `toml:"geometry" yaml:"geometry" msgpack:"geometry" json:"geometry"`
	Color     bool    `toml:"color" yaml:"color" msgpack:"color" json:"color"`
	Chaos     bool    `toml:"chaos" yaml:"chaos" msgpack:"chaos" json:"chaos"`
	Structure bool    `toml:"structure" yaml:"structure" msgpack:"structure" json:"structure"`
	Intensity float64 `toml:"intensity" yaml:"intensity" msgpack:"intensity" json:"intensity"`
}

// DefaultConfig enables the perturbing passes at a moderate intensity.
// Structure is left off because it discards the original program.
func DefaultConfig() Config {
	return Config{
		Numbers:   true,
		Operators: true,
		Builtins:  true,
		Geometry:  true,
		Color:     true,
		Chaos:     true,
		Intensity: 0.5,
	}
}

// Validate reports whether the config is usable.
func (c Config) Validate() error {
	if !(c.Intensity > 0 && c.Intensity <= 1) {
		return fmt.Errorf("%w: got %g", ErrIntensity, c.Intensity)
	}
	return nil
}

// Enabled reports whether the named pass is switched on. Swizzle has no flag
// and is enabled whenever the intensity is above mutate.SwizzleThreshold.
func (c Config) Enabled(name PassName) bool {
	switch name {
	case PassNumbers:
		return c.Numbers
	case PassOperators:
		return c.Operators
	case PassBuiltins:
		return c.Builtins
	case PassGeometry:
		return c.Geometry
	case PassColor:
		return c.Color
	case PassChaos:
		return c.Chaos
	case PassStructure:
		return c.Structure
	case PassSwizzle:
		return c.Intensity > mutate.SwizzleThreshold
	}
	return false
}

// Set switches the named flag. It returns false for swizzle and unknown names.
func (c *Config) Set(name PassName, on bool) bool {
	switch name {
	case PassNumbers:
		c.Numbers = on
	case PassOperators:
		c.Operators = on
	case PassBuiltins:
		c.Builtins = on
	case PassGeometry:
		c.Geometry = on
	case PassColor:
		c.Color = on
	case PassChaos:
		c.Chaos = on
	case PassStructure:
		c.Structure = on
	default:
		return false
	}
	return true
}

// Only returns a config with just the named passes enabled.
func Only(intensity float64, names ...PassName) Config {
	c := Config{Intensity: intensity}
	for _, n := range names {
		c.Set(n, true)
	}
	return c
}

// String renders the enabled passes and intensity, e.g. "numbers,chaos@0.50".
func (c Config) String() string {
	var on []string
	for _, st := range Stages {
		if st.Gate != GateThreshold && c.Enabled(st.Name) {
			on = append(on, string(st.Name))
		}
	}
	if len(on) == 0 {
		on = append(on, "none")
	}
	return fmt.Sprintf("%s@%.2f", strings.Join(on, ","), c.Intensity)
}
