package validate

import (
	"wgslfuzz/internal/anchor"
	"wgslfuzz/internal/diag"
	"wgslfuzz/internal/token"
)

// CheckAnchors warns about missing landmarks. Each missing anchor turns one
// or more structural passes into no-ops.
func CheckAnchors(src string, seq token.Seq, rep diag.Reporter) {
	at := func(i int) diag.Pos {
		if i < 0 || i >= len(seq) {
			return diag.Pos{}
		}
		return diag.PosAt(src, seq[i].Offset)
	}

	fn, ok := anchor.FindEntry(seq)
	if !ok {
		rep.Report(diag.AnchorNoEntry, diag.SevWarning, diag.Pos{},
			"no `fn "+anchor.EntryName+"`; geometry and structure passes will not apply")
	} else if e, ok := anchor.Locate(seq); !ok {
		rep.Report(diag.AnchorNoBody, diag.SevWarning, at(fn), "entry function has no parameter list or body")
	} else {
		if !e.HasCoord() {
			rep.Report(diag.AnchorNoCoord, diag.SevWarning, at(e.ParamsOpen),
				"no @location(0) or `"+anchor.FallbackCoordName+"` parameter; geometry and structure passes will not apply")
		}
		if seq.MatchClose(e.BodyOpen) < 0 {
			rep.Report(diag.AnchorUnbalanced, diag.SevWarning, at(e.BodyOpen), "entry body brace is never closed")
		}
	}

	if _, ok := anchor.LocateReturn(seq); !ok {
		rep.Report(diag.AnchorNoReturn, diag.SevWarning, diag.Pos{},
			"no final return statement; chaos and structure passes will not apply")
	}
}
