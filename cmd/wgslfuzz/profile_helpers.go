package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wgslfuzz/internal/prof"
)

// startProfiling reads the persistent profiling flags and starts a session.
// The returned stop function is safe to call more than once.
func startProfiling(cmd *cobra.Command) (func() error, error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return func() error { return nil }, nil
	}
	s, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return s.Stop, nil
}
