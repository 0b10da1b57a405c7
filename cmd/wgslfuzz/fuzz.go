package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wgslfuzz/internal/corpus"
	"wgslfuzz/internal/diag"
	"wgslfuzz/internal/diagfmt"
	"wgslfuzz/internal/observ"
	"wgslfuzz/internal/pipeline"
	"wgslfuzz/internal/validate"
)

var fuzzCmd = &cobra.Command{
	Use:   "fuzz [flags] [file.wgsl|-]",
	Short: "Mutate one shader and print the result",
	Long: `Fuzz runs the mutation pipeline once over a file, stdin or a preset and
writes the mutant to stdout. With --validate the mutant is checked by naga
and a rejection is reported as an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFuzz,
}

var (
	fuzzInput    inputFlags
	fuzzPasses   passFlags
	fuzzSeed     uint64
	fuzzOutput   string
	fuzzValidate bool
	fuzzSave     bool
	fuzzCorpus   string
	fuzzPassList bool
)

func init() {
	fuzzInput.register(fuzzCmd)
	fuzzPasses.register(fuzzCmd)
	fuzzCmd.Flags().Uint64Var(&fuzzSeed, "seed", 0, "random seed (default from config)")
	fuzzCmd.Flags().StringVarP(&fuzzOutput, "output", "o", "", "write the mutant to a file instead of stdout")
	fuzzCmd.Flags().BoolVar(&fuzzValidate, "validate", false, "validate the mutant with naga (default from config)")
	fuzzCmd.Flags().BoolVar(&fuzzSave, "save", false, "store the mutant in the corpus when it is accepted")
	fuzzCmd.Flags().StringVar(&fuzzCorpus, "corpus", "", "corpus directory for --save")
	fuzzCmd.Flags().BoolVar(&fuzzPassList, "show-passes", false, "print the applied passes to stderr")
}

func runFuzz(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	in, err := fuzzInput.resolve(cmd, args, cfg)
	if err != nil {
		return err
	}
	pcfg, err := fuzzPasses.apply(cmd, cfg.Fuzz)
	if err != nil {
		return err
	}
	seed := cfg.Run.Seed
	if cmd.Flags().Changed("seed") {
		seed = fuzzSeed
	}
	doValidate := cfg.Run.Validate
	if cmd.Flags().Changed("validate") {
		doValidate = fuzzValidate
	}
	if fuzzSave {
		doValidate = true
	}

	log := g.logger(cmd)
	timer := observ.NewTimer()
	res, err := pipeline.Run(cmd.Context(), in.Source, pcfg, pipeline.Options{
		Seed:   seed,
		Logger: log.With("input", in.Label),
		Timer:  timer,
	})
	if err != nil {
		return fmt.Errorf("fuzz %s: %w", in.Label, err)
	}
	if fuzzPassList {
		fmt.Fprintf(cmd.ErrOrStderr(), "passes: %s\n", joinPasses(res.Passes))
	}

	var bag *diag.Bag
	if doValidate {
		idx := timer.Begin("validate")
		bag = (&validate.Naga{MaxDiagnostics: g.maxDiagnostics}).Validate(cmd.Context(), res.Source)
		timer.End(idx, "")
	}

	if err := writeOutput(cmd, fuzzOutput, res.Source); err != nil {
		return err
	}

	if bag != nil && bag.Len() > 0 && !g.quiet {
		colored, err := useColor(g.color, os.Stderr)
		if err != nil {
			return err
		}
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, res.Source, diagfmt.PrettyOpts{Color: colored, Path: "mutant"})
	}
	if g.timings {
		fmt.Fprintln(cmd.ErrOrStderr(), timer.Summary())
	}
	if bag != nil && !validate.Accept(bag) {
		return fmt.Errorf("mutant rejected: %s", diagfmt.Summary(bag))
	}

	if fuzzSave {
		dir, err := corpusDir(fuzzCorpus, cfg.Run.Corpus)
		if err != nil {
			return err
		}
		store, err := corpus.Open(dir)
		if err != nil {
			return err
		}
		e, err := store.Put(corpus.Entry{
			Preset:   in.Preset,
			Seed:     seed,
			Config:   pcfg,
			Passes:   passStrings(res.Passes),
			Source:   res.Source,
			Warnings: warningsOf(bag),
		})
		if err != nil {
			return err
		}
		if !g.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", e.ID)
		}
	}
	return nil
}

func writeOutput(cmd *cobra.Command, path, src string) error {
	if path == "" || path == "-" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), src)
		return err
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// corpusDir picks the flag, then the config value, then the XDG default.
func corpusDir(flag, configured string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if configured != "" {
		return configured, nil
	}
	return corpus.DefaultDir()
}

func passStrings(passes []pipeline.PassName) []string {
	out := make([]string, len(passes))
	for i, p := range passes {
		out[i] = string(p)
	}
	return out
}

func joinPasses(passes []pipeline.PassName) string {
	if len(passes) == 0 {
		return "none"
	}
	return strings.Join(passStrings(passes), ",")
}

func warningsOf(bag *diag.Bag) []string {
	if bag == nil {
		return nil
	}
	var out []string
	for _, d := range bag.BySeverity(diag.SevWarning) {
		out = append(out, d.String())
	}
	return out
}
