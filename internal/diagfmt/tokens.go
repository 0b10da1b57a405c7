package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"wgslfuzz/internal/diag"
	"wgslfuzz/internal/token"
)

type TokenOutput struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Offset int    `json:"offset"`
	Line   int    `json:"line"`
	Col    int    `json:"col"`
}

// TokenOptions filters token listings.
type TokenOptions struct {
	// Trivia includes whitespace and comments.
	Trivia bool
}

func tokenRows(seq token.Seq, src string, opts TokenOptions) []TokenOutput {
	out := make([]TokenOutput, 0, len(seq))
	for _, tok := range seq {
		if tok.IsTrivia() && !opts.Trivia {
			continue
		}
		pos := diag.PosAt(src, tok.Offset)
		out = append(out, TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Offset: tok.Offset,
			Line:   pos.Line,
			Col:    pos.Col,
		})
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, seq token.Seq, src string, opts TokenOptions) error {
	for i, row := range tokenRows(seq, src, opts) {
		if _, err := fmt.Fprintf(w, "%3d: %-13s %q at %d:%d\n", i+1, row.Kind, row.Text, row.Line, row.Col); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, seq token.Seq, src string, opts TokenOptions) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokenRows(seq, src, opts))
}
