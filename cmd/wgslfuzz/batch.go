package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"wgslfuzz/internal/batch"
	"wgslfuzz/internal/corpus"
	"wgslfuzz/internal/validate"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] [file.wgsl|-]",
	Short: "Generate many validated mutants in parallel",
	Long: `Batch fuzzes one input --count times across --jobs workers. Every slot is
reproducible from --seed. Mutants accepted by naga are stored in the corpus.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

var (
	batchInput      inputFlags
	batchPasses     passFlags
	batchSeed       uint64
	batchCount      int
	batchJobs       int
	batchRetries    int
	batchCorpus     string
	batchNoStore    bool
	batchNoValidate bool
	batchUI         string
)

func init() {
	batchInput.register(batchCmd)
	batchPasses.register(batchCmd)
	batchCmd.Flags().Uint64Var(&batchSeed, "seed", 0, "base random seed (default from config)")
	batchCmd.Flags().IntVarP(&batchCount, "count", "n", 0, "number of mutants to produce (default from config)")
	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", 0, "parallel workers (0 = GOMAXPROCS)")
	batchCmd.Flags().IntVar(&batchRetries, "retries", 0, "extra attempts per rejected slot (default from config)")
	batchCmd.Flags().StringVar(&batchCorpus, "corpus", "", "corpus directory (default from config or XDG data dir)")
	batchCmd.Flags().BoolVar(&batchNoStore, "no-store", false, "do not write accepted mutants to the corpus")
	batchCmd.Flags().BoolVar(&batchNoValidate, "no-validate", false, "accept every mutant without running naga")
	batchCmd.Flags().StringVar(&batchUI, "ui", "auto", "progress UI (auto|on|off)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	mode, err := readUIMode(batchUI)
	if err != nil {
		return err
	}
	in, err := batchInput.resolve(cmd, args, cfg)
	if err != nil {
		return err
	}
	pcfg, err := batchPasses.apply(cmd, cfg.Fuzz)
	if err != nil {
		return err
	}

	opts := batch.Options{
		Source:  in.Source,
		Preset:  in.Preset,
		Config:  pcfg,
		Seed:    cfg.Run.Seed,
		Count:   cfg.Run.Count,
		Jobs:    cfg.Run.Jobs,
		Retries: cfg.Run.Retries,
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		opts.Seed = batchSeed
	}
	if flags.Changed("count") {
		opts.Count = batchCount
	}
	if flags.Changed("jobs") {
		opts.Jobs = batchJobs
	}
	if flags.Changed("retries") {
		opts.Retries = batchRetries
	}
	if cfg.Run.Validate && !batchNoValidate {
		opts.Validator = &validate.Naga{MaxDiagnostics: g.maxDiagnostics}
	}
	if !batchNoStore {
		dir, err := corpusDir(batchCorpus, cfg.Run.Corpus)
		if err != nil {
			return err
		}
		if opts.Store, err = corpus.Open(dir); err != nil {
			return err
		}
	}

	useUI := shouldUseTUI(mode, g.quiet)
	if !useUI {
		// Без UI события идут в лог
		opts.Logger = g.logger(cmd)
	}

	var sum batch.Summary
	if useUI {
		title := fmt.Sprintf("fuzzing %s [%s]", in.Label, pcfg)
		sum, err = runBatchWithUI(cmd.Context(), title, opts)
	} else {
		sum, err = batch.Run(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	if !g.quiet {
		printBatchSummary(cmd.OutOrStdout(), sum, opts.Store)
	}
	if g.timings {
		fmt.Fprintln(cmd.ErrOrStderr(), sum.Timings.Summary())
	}
	if sum.Accepted == 0 {
		return fmt.Errorf("no mutant accepted out of %d attempts", sum.Attempts)
	}
	return nil
}

func printBatchSummary(w io.Writer, sum batch.Summary, store *corpus.Store) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tSTATUS\tATTEMPTS\tPASSES\tID")
	for _, o := range sum.Outcomes {
		id := o.Entry.ID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", o.Slot, o.Status, o.Attempts, joinPasses(o.Passes), id)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d accepted, %d rejected, %d failed in %s (%d attempts)\n",
		sum.Accepted, sum.Rejected, sum.Failed, sum.Elapsed.Round(time.Millisecond), sum.Attempts)
	if store != nil && sum.Accepted > 0 {
		fmt.Fprintf(w, "corpus: %s\n", store.Dir())
	}
}
