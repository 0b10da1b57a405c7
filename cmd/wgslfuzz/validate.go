package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wgslfuzz/internal/diagfmt"
	"wgslfuzz/internal/observ"
	"wgslfuzz/internal/validate"
	"wgslfuzz/internal/version"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] [file.wgsl|-]",
	Short: "Validate a WGSL shader with naga",
	Long: `Validate compiles a shader through naga's WGSL front end and SPIR-V back end
and reports the first failure together with anchor warnings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var (
	validateInput     inputFlags
	validateFormat    string
	validateEmitSPIRV string
	validateNoAnchors bool
)

func init() {
	validateInput.register(validateCmd)
	validateCmd.Flags().StringVar(&validateFormat, "format", "pretty", "output format (pretty|json|sarif)")
	validateCmd.Flags().StringVar(&validateEmitSPIRV, "emit-spirv", "", "write the compiled SPIR-V to this file")
	validateCmd.Flags().BoolVar(&validateNoAnchors, "no-anchors", false, "skip the mutation anchor warnings")
}

func runValidate(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	in, err := validateInput.resolve(cmd, args, cfg)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	idx := timer.Begin("validate")
	v := &validate.Naga{MaxDiagnostics: g.maxDiagnostics, SkipAnchors: validateNoAnchors}
	bag := v.Validate(cmd.Context(), in.Source)
	timer.End(idx, diagfmt.Summary(bag))

	out := cmd.OutOrStdout()
	switch validateFormat {
	case "pretty":
		if bag.Len() > 0 {
			colored, err := useColor(g.color, os.Stdout)
			if err != nil {
				return err
			}
			diagfmt.Pretty(out, bag, in.Source, diagfmt.PrettyOpts{Color: colored, Path: in.Label, Context: 1})
		} else if !g.quiet {
			fmt.Fprintf(out, "%s: ok\n", in.Label)
		}
	case "json":
		err = diagfmt.JSON(out, bag, diagfmt.JSONOpts{Path: in.Label, Max: g.maxDiagnostics})
	case "sarif":
		err = diagfmt.Sarif(out, bag, in.Label, diagfmt.SarifRunMeta{
			ToolName:       "wgslfuzz",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args,
		})
	default:
		return fmt.Errorf("unknown format: %s", validateFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}

	if !validate.Accept(bag) {
		if g.timings {
			fmt.Fprintln(cmd.ErrOrStderr(), timer.Summary())
		}
		return fmt.Errorf("%s: %s", in.Label, diagfmt.Summary(bag))
	}

	if validateEmitSPIRV != "" {
		idx := timer.Begin("spirv")
		words, err := validate.Compile(in.Source)
		timer.End(idx, "")
		if err != nil {
			return fmt.Errorf("failed to compile %s: %w", in.Label, err)
		}
		if err := os.WriteFile(validateEmitSPIRV, words, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", validateEmitSPIRV, err)
		}
	}
	if g.timings {
		fmt.Fprintln(cmd.ErrOrStderr(), timer.Summary())
	}
	return nil
}
