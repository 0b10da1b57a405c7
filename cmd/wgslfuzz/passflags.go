package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wgslfuzz/internal/pipeline"
)

type passFlags struct {
	only      []string
	enable    []string
	disable   []string
	intensity float64
}

func (f *passFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.only, "passes", nil, "enable only these passes (comma separated)")
	cmd.Flags().StringSliceVar(&f.enable, "enable", nil, "enable passes on top of the config")
	cmd.Flags().StringSliceVar(&f.disable, "disable", nil, "disable passes from the config")
	cmd.Flags().Float64Var(&f.intensity, "intensity", 0.5, "mutation intensity in (0, 1]")
}

// apply layers the flags over base: --intensity, then --passes, then
// --enable and --disable.
func (f *passFlags) apply(cmd *cobra.Command, base pipeline.Config) (pipeline.Config, error) {
	cfg := base
	if cmd.Flags().Changed("intensity") {
		cfg.Intensity = f.intensity
	}
	if len(f.only) > 0 {
		cfg = pipeline.Config{Intensity: cfg.Intensity}
	}
	for _, group := range []struct {
		names []string
		on    bool
	}{{f.only, true}, {f.enable, true}, {f.disable, false}} {
		names, err := parsePassList(group.names)
		if err != nil {
			return cfg, err
		}
		for _, n := range names {
			if !cfg.Set(n, group.on) {
				return cfg, fmt.Errorf("pass %q cannot be toggled; it follows --intensity", n)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parsePassList(items []string) ([]pipeline.PassName, error) {
	out := make([]pipeline.PassName, 0, len(items))
	for _, raw := range items {
		name, ok := pipeline.ParsePassName(strings.ToLower(strings.TrimSpace(raw)))
		if !ok {
			return nil, fmt.Errorf("unknown pass %q (expected one of %s)", raw, passNames())
		}
		out = append(out, name)
	}
	return out, nil
}

func passNames() string {
	names := make([]string, len(pipeline.Stages))
	for i, st := range pipeline.Stages {
		names[i] = string(st.Name)
	}
	return strings.Join(names, ", ")
}
