package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wgslfuzz/internal/config"
	"wgslfuzz/internal/logging"
)

type globalOptions struct {
	color          string
	quiet          bool
	timings        bool
	verbose        bool
	configPath     string
	maxDiagnostics int
}

func configFileName() string { return config.FileName }

func readGlobals(cmd *cobra.Command) (globalOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var (
		g   globalOptions
		err error
	)
	if g.color, err = flags.GetString("color"); err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.verbose, err = flags.GetBool("verbose"); err != nil {
		return g, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if g.configPath, err = flags.GetString("config"); err != nil {
		return g, fmt.Errorf("failed to get config flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return g, nil
}

// useColor resolves --color against the given output stream.
func useColor(mode string, f *os.File) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

// logger builds the command logger. Quiet without verbose discards everything.
func (g globalOptions) logger(cmd *cobra.Command) *slog.Logger {
	if g.quiet && !g.verbose {
		return logging.Nop()
	}
	return logging.New(logging.Options{Verbose: g.verbose, Writer: cmd.ErrOrStderr()})
}

// loadConfig reads --config when given, otherwise the nearest wgslfuzz.toml.
func (g globalOptions) loadConfig() (config.File, error) {
	if g.configPath != "" {
		return config.Load(g.configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.File{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	return config.Discover(wd)
}
