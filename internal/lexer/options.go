package lexer

import (
	"wgslfuzz/internal/diag"
)

type Options struct {
	Reporter diag.Reporter // may be nil; lexing continues regardless
}

func (lx *Lexer) report(code diag.Code, off Mark, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevWarning, diag.PosAt(lx.cursor.Src, int(off)), msg)
	}
}
