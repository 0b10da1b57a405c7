package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"wgslfuzz/internal/corpus"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect stored mutants",
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List corpus entries, oldest first",
	Args:  cobra.NoArgs,
	RunE:  runCorpusList,
}

var corpusShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored mutant",
	Args:  cobra.ExactArgs(1),
	RunE:  runCorpusShow,
}

var corpusRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete corpus entries",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCorpusRm,
}

var (
	corpusDirFlag string
	corpusFormat  string
	corpusMeta    bool
)

func init() {
	corpusCmd.PersistentFlags().StringVar(&corpusDirFlag, "dir", "", "corpus directory (default from config or XDG data dir)")
	corpusListCmd.Flags().StringVar(&corpusFormat, "format", "pretty", "output format (pretty|json)")
	corpusShowCmd.Flags().BoolVar(&corpusMeta, "meta", false, "print the entry metadata as JSON instead of the source")
	corpusCmd.AddCommand(corpusListCmd, corpusShowCmd, corpusRmCmd)
}

func openCorpus(cmd *cobra.Command) (*corpus.Store, error) {
	g, err := readGlobals(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	dir, err := corpusDir(corpusDirFlag, cfg.Run.Corpus)
	if err != nil {
		return nil, err
	}
	return corpus.Open(dir)
}

// entryView is the JSON shape of an entry; Source is omitted from listings.
type entryView struct {
	ID       string   `json:"id"`
	Preset   string   `json:"preset,omitempty"`
	Seed     uint64   `json:"seed"`
	Slot     uint32   `json:"slot"`
	Attempt  uint32   `json:"attempt"`
	Config   string   `json:"config"`
	Passes   []string `json:"passes"`
	Hash     string   `json:"hash"`
	Warnings []string `json:"warnings,omitempty"`
	Created  string   `json:"created"`
	Source   string   `json:"source,omitempty"`
}

func viewOf(e corpus.Entry, withSource bool) entryView {
	v := entryView{
		ID:       e.ID,
		Preset:   e.Preset,
		Seed:     e.Seed,
		Slot:     e.Slot,
		Attempt:  e.Attempt,
		Config:   e.Config.String(),
		Passes:   e.Passes,
		Hash:     e.Hash,
		Warnings: e.Warnings,
		Created:  e.Created().UTC().Format("2006-01-02T15:04:05Z"),
	}
	if v.Passes == nil {
		v.Passes = []string{}
	}
	if withSource {
		v.Source = e.Source
	}
	return v
}

func runCorpusList(cmd *cobra.Command, args []string) error {
	store, err := openCorpus(cmd)
	if err != nil {
		return err
	}
	entries, err := store.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch corpusFormat {
	case "json":
		views := make([]entryView, len(entries))
		for i, e := range entries {
			views[i] = viewOf(e, false)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "pretty":
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tPRESET\tSEED\tSLOT\tCONFIG\tPASSES\tCREATED")
		for _, e := range entries {
			v := viewOf(e, false)
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
				v.ID, orDash(v.Preset), v.Seed, v.Slot, v.Config, orDash(strings.Join(v.Passes, ",")), v.Created)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format: %s", corpusFormat)
	}
}

func runCorpusShow(cmd *cobra.Command, args []string) error {
	store, err := openCorpus(cmd)
	if err != nil {
		return err
	}
	e, err := store.Get(args[0])
	if err != nil {
		return err
	}
	if corpusMeta {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(viewOf(e, true))
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), e.Source)
	return err
}

func runCorpusRm(cmd *cobra.Command, args []string) error {
	store, err := openCorpus(cmd)
	if err != nil {
		return err
	}
	for _, id := range args {
		if err := store.Delete(id); err != nil {
			return fmt.Errorf("rm %s: %w", id, err)
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
