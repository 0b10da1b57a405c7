package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"wgslfuzz/internal/config"
	"wgslfuzz/internal/preset"
)

// shaderInput is a program ready for the pipeline.
type shaderInput struct {
	Source string
	// Label names the input in diagnostics: a path, "<stdin>" or "preset:<name>".
	Label string
	// Preset is empty for file input.
	Preset string
}

type inputFlags struct {
	preset  string
	presets string
	compose bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "built-in or library preset to use when no file is given")
	cmd.Flags().StringVar(&f.presets, "presets", "", "YAML preset library consulted before the built-in presets")
	cmd.Flags().BoolVar(&f.compose, "compose", false, "prepend the preset preamble to file input")
}

// resolve picks the input: a file argument ("-" for stdin) wins, then
// --preset, then the configured preset.
func (f *inputFlags) resolve(cmd *cobra.Command, args []string, cfg config.File) (shaderInput, error) {
	if len(args) > 0 {
		return readFileInput(cmd.InOrStdin(), args[0], f.compose)
	}
	name := f.preset
	if name == "" {
		name = cfg.Run.Preset
	}
	if name == "" {
		return shaderInput{}, errors.New("no input: pass a file or --preset")
	}
	libPath := f.presets
	if libPath == "" {
		libPath = cfg.Run.Presets
	}
	p, err := lookupPreset(libPath, name)
	if err != nil {
		return shaderInput{}, err
	}
	return shaderInput{Source: p.Source(), Label: "preset:" + string(p.Name), Preset: string(p.Name)}, nil
}

func readFileInput(stdin io.Reader, path string, compose bool) (shaderInput, error) {
	var (
		data  []byte
		err   error
		label = path
	)
	if path == "-" {
		label = "<stdin>"
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return shaderInput{}, fmt.Errorf("failed to read %s: %w", label, err)
	}
	src := string(data)
	if compose {
		src = preset.Compose(src)
	}
	return shaderInput{Source: src, Label: label}, nil
}

// lookupPreset searches the library at libPath first, then the built-ins.
func lookupPreset(libPath, name string) (preset.Preset, error) {
	if libPath != "" {
		lib, err := preset.Load(libPath)
		if err != nil {
			return preset.Preset{}, err
		}
		if p, err := lib.Lookup(name); err == nil {
			return p, nil
		}
	}
	return preset.Lookup(name)
}
