package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wgslfuzz/internal/diag"
	"wgslfuzz/internal/diagfmt"
	"wgslfuzz/internal/lexer"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file.wgsl|-]",
	Short: "Tokenize a WGSL shader",
	Long:  `Tokenize splits a shader into lossless tokens and prints them with their positions`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

var (
	tokenizeInput  inputFlags
	tokenizeFormat string
	tokenizeTrivia bool
)

func init() {
	tokenizeInput.register(tokenizeCmd)
	tokenizeCmd.Flags().StringVar(&tokenizeFormat, "format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().BoolVar(&tokenizeTrivia, "trivia", false, "include whitespace and comment tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	in, err := tokenizeInput.resolve(cmd, args, cfg)
	if err != nil {
		return err
	}

	bag := diag.NewBag(g.maxDiagnostics)
	seq := lexer.TokenizeWith(in.Source, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	opts := diagfmt.TokenOptions{Trivia: tokenizeTrivia}
	switch tokenizeFormat {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), seq, in.Source, opts)
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), seq, in.Source, opts)
	default:
		return fmt.Errorf("unknown format: %s", tokenizeFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to format tokens: %w", err)
	}

	if bag.Len() > 0 && !g.quiet {
		colored, err := useColor(g.color, os.Stderr)
		if err != nil {
			return err
		}
		bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, in.Source, diagfmt.PrettyOpts{Color: colored, Path: in.Label})
	}
	return nil
}
