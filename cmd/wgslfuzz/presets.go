package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"wgslfuzz/internal/preset"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List and print shader presets",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := presetLibrary(cmd)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, p := range lib {
			fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.Description)
		}
		return tw.Flush()
	},
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a preset's WGSL code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGlobals(cmd)
		if err != nil {
			return err
		}
		cfg, err := g.loadConfig()
		if err != nil {
			return err
		}
		libPath := presetsFile
		if libPath == "" {
			libPath = cfg.Run.Presets
		}
		p, err := lookupPreset(libPath, args[0])
		if err != nil {
			return err
		}
		code := p.Code
		if presetsComposed {
			code = p.Source()
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), code)
		return err
	},
}

var presetsPreambleCmd = &cobra.Command{
	Use:   "preamble",
	Short: "Print the helper preamble shared by every preset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), preset.Preamble())
		return err
	},
}

var (
	presetsFile     string
	presetsComposed bool
)

func init() {
	presetsCmd.PersistentFlags().StringVar(&presetsFile, "presets", "", "YAML preset library consulted before the built-in presets")
	presetsShowCmd.Flags().BoolVar(&presetsComposed, "composed", false, "include the preamble")
	presetsCmd.AddCommand(presetsListCmd, presetsShowCmd, presetsPreambleCmd)
}

// presetLibrary returns the configured library's presets followed by the
// built-ins it does not shadow.
func presetLibrary(cmd *cobra.Command) ([]preset.Preset, error) {
	g, err := readGlobals(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	libPath := presetsFile
	if libPath == "" {
		libPath = cfg.Run.Presets
	}
	return mergePresets(libPath)
}

func mergePresets(libPath string) ([]preset.Preset, error) {
	if libPath == "" {
		return preset.All(), nil
	}
	lib, err := preset.Load(libPath)
	if err != nil {
		return nil, err
	}
	out := append([]preset.Preset(nil), lib.Presets...)
	seen := make(map[preset.Name]bool, len(out))
	for _, p := range out {
		seen[p.Name] = true
	}
	for _, p := range preset.All() {
		if !seen[p.Name] {
			out = append(out, p)
		}
	}
	return out, nil
}
