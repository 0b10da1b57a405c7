package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"wgslfuzz/internal/lexer"
	"wgslfuzz/internal/logging"
	"wgslfuzz/internal/observ"
	"wgslfuzz/internal/rng"
)

// ErrPassPanic wraps a panic recovered from inside a pass.
var ErrPassPanic = errors.New("mutation pass panicked")

// Options configures Run.
type Options struct {
	// Rand is the random source. When nil, rng.New(Seed) is used.
	Rand rng.Rand
	Seed uint64
	// Logger receives per-pass debug records; nil discards them.
	Logger *slog.Logger
	// Timer, when set, records one phase per stage.
	Timer *observ.Timer
}

// Result is the outcome of one Run.
type Result struct {
	Source  string
	Passes  []PassName
	Timings observ.Report
}

// Run is Fuzz with validation, logging, timing and panic recovery. A failed
// run yields a zero Result, never partially mutated text.
func Run(ctx context.Context, src string, cfg Config, opts Options) (res Result, err error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	r := opts.Rand
	if r == nil {
		r = rng.New(opts.Seed)
	}
	log := logging.OrNop(opts.Logger)
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}

	current := "tokenize"
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("pass panicked", "pass", current, "panic", rec, "stack", string(debug.Stack()))
			res = Result{}
			err = fmt.Errorf("%w: %s: %v", ErrPassPanic, current, rec)
		}
	}()

	idx := timer.Begin(current)
	seq := lexer.Tokenize(src)
	timer.End(idx, fmt.Sprintf("%d tokens", len(seq)))

	for _, st := range Stages {
		if !eligible(st, cfg, r) {
			if cfg.Enabled(st.Name) {
				log.Debug("pass skipped by gate", "pass", st.Name, "intensity", cfg.Intensity)
			}
			continue
		}
		current = string(st.Name)
		idx = timer.Begin(current)
		seq = st.Pass(seq, cfg.Intensity, r)
		timer.End(idx, "")
		res.Passes = append(res.Passes, st.Name)
		log.Debug("pass applied", "pass", st.Name, "tokens", len(seq))
	}

	current = "serialize"
	idx = timer.Begin(current)
	res.Source = seq.String()
	timer.End(idx, "")
	res.Timings = timer.Report()
	return res, nil
}
