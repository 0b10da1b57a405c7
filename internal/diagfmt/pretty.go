package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"wgslfuzz/internal/diag"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с кареткой под колонкой.
func Pretty(w io.Writer, bag *diag.Bag, src string, opts PrettyOpts) {
	if bag == nil {
		return
	}
	paint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		c.EnableColor()
		return c.Sprint(s)
	}
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	lines := strings.Split(src, "\n")

	for _, d := range bag.Items() {
		loc := pathOr(opts.Path)
		if d.Primary.Line > 0 {
			loc = fmt.Sprintf("%s:%d:%d", loc, d.Primary.Line, d.Primary.Col)
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			paint(bold, loc),
			paint(severityColor(d.Severity), d.Severity.String()),
			d.Code.ID(),
			d.Message)

		if d.Primary.Line <= 0 || d.Primary.Line > len(lines) {
			continue
		}
		first := max(d.Primary.Line-opts.Context, 1)
		last := min(d.Primary.Line+opts.Context, len(lines))
		gutter := len(fmt.Sprint(last))
		for n := first; n <= last; n++ {
			fmt.Fprintf(w, "%s %s\n", paint(dim, fmt.Sprintf("%*d |", gutter, n)), lines[n-1])
			if n == d.Primary.Line {
				pad := strings.Repeat(" ", max(d.Primary.Col-1, 0))
				fmt.Fprintf(w, "%s %s%s\n", paint(dim, strings.Repeat(" ", gutter)+" |"), pad, paint(severityColor(d.Severity), "^"))
			}
		}
	}
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

// Summary returns e.g. "2 errors, 1 warning".
func Summary(bag *diag.Bag) string {
	if bag == nil {
		return "no diagnostics"
	}
	errs := len(bag.BySeverity(diag.SevError))
	warns := len(bag.BySeverity(diag.SevWarning))
	if errs == 0 && warns == 0 {
		return "no diagnostics"
	}
	return fmt.Sprintf("%s, %s", plural(errs, "error"), plural(warns, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
