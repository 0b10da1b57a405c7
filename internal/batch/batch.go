// Package batch fuzzes one program many times in parallel, validating each
// mutant and storing the accepted ones.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"wgslfuzz/internal/corpus"
	"wgslfuzz/internal/diag"
	"wgslfuzz/internal/logging"
	"wgslfuzz/internal/observ"
	"wgslfuzz/internal/pipeline"
	"wgslfuzz/internal/rng"
	"wgslfuzz/internal/validate"
)

// MaxRetries bounds Options.Retries so every attempt gets its own stream.
const MaxRetries = 1<<attemptBits - 2

const attemptBits = 16

// Options configures Run.
type Options struct {
	// Source is the full program, preamble included.
	Source string
	// Preset is recorded on stored entries.
	Preset string
	Config pipeline.Config
	Seed   uint64
	// Count is the number of slots; each yields at most one mutant.
	Count int
	// Jobs limits parallel workers; zero means GOMAXPROCS.
	Jobs int
	// Retries is how many extra attempts a slot gets after a failure or rejection.
	Retries int

	// Validator judges mutants; nil accepts everything.
	Validator validate.Validator
	// Store receives accepted mutants; nil keeps them only in the Summary.
	Store  *corpus.Store
	Sink   Sink
	Logger *slog.Logger
}

// Outcome is the final state of one slot.
type Outcome struct {
	Slot     int
	Attempts int
	Status   Status
	Source   string
	Passes   []pipeline.PassName
	Entry    corpus.Entry
	Bag      *diag.Bag
	Err      error
	Timings  observ.Report
}

// Summary aggregates a batch.
type Summary struct {
	Accepted int
	Rejected int
	Failed   int
	Attempts int
	Outcomes []Outcome
	Timings  observ.Report
	Elapsed  time.Duration
}

func (o Options) validate() error {
	if o.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", o.Count)
	}
	if o.Retries < 0 || o.Retries > MaxRetries {
		return fmt.Errorf("retries must be in [0, %d], got %d", MaxRetries, o.Retries)
	}
	return o.Config.Validate()
}

// Run executes every slot. Slot i draws from rng.Stream(Seed, i<<16|attempt),
// so results do not depend on scheduling. Per-slot failures are counted in
// the Summary; the returned error is for cancellation and storage faults.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if err := opts.validate(); err != nil {
		return Summary{}, err
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if opts.Sink == nil {
		opts.Sink = nopSink{}
	}
	log := logging.OrNop(opts.Logger)
	start := time.Now()

	// Индексы слотов уникальны для каждой горутины, мьютекс не нужен
	outcomes := make([]Outcome, opts.Count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, opts.Count))
	for i := range opts.Count {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			out, err := runSlot(gctx, opts, i, log)
			outcomes[i] = out
			return err
		})
	}
	err := g.Wait()

	sum := Summary{Outcomes: outcomes, Elapsed: time.Since(start)}
	reports := make([]observ.Report, 0, len(outcomes))
	for _, o := range outcomes {
		sum.Attempts += o.Attempts
		reports = append(reports, o.Timings)
		switch o.Status {
		case StatusAccepted:
			sum.Accepted++
		case StatusRejected:
			sum.Rejected++
		case StatusFailed:
			sum.Failed++
		}
	}
	sum.Timings = observ.Aggregate(reports...)
	log.Info("batch finished",
		"accepted", sum.Accepted, "rejected", sum.Rejected, "failed", sum.Failed,
		"attempts", sum.Attempts, "elapsed", sum.Elapsed)
	return sum, err
}

func streamIndex(slot, attempt int) (uint64, error) {
	s, err := safecast.Conv[uint64](slot)
	if err != nil {
		return 0, err
	}
	a, err := safecast.Conv[uint64](attempt)
	if err != nil {
		return 0, err
	}
	return s<<attemptBits | a, nil
}

func runSlot(ctx context.Context, opts Options, slot int, log *slog.Logger) (Outcome, error) {
	out := Outcome{Slot: slot}
	opts.Sink.OnEvent(Event{Slot: slot, Status: StatusStarted})
	var reports []observ.Report

	for attempt := 0; attempt <= opts.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		begin := time.Now()
		out.Attempts++
		opts.Sink.OnEvent(Event{Slot: slot, Attempt: attempt, Status: StatusAttempt})
		final := attempt == opts.Retries

		idx, err := streamIndex(slot, attempt)
		if err != nil {
			return out, err
		}
		res, err := pipeline.Run(ctx, opts.Source, opts.Config, pipeline.Options{
			Rand:   rng.Stream(opts.Seed, idx),
			Logger: log.With("slot", slot, "attempt", attempt),
			Timer:  observ.NewTimer(),
		})
		reports = append(reports, res.Timings)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return out, err
			}
			log.Debug("attempt failed", "slot", slot, "attempt", attempt, "err", err)
			out.Status, out.Err = StatusFailed, err
			opts.Sink.OnEvent(Event{Slot: slot, Attempt: attempt, Status: StatusFailed, Final: final, Err: err, Elapsed: time.Since(begin)})
			continue
		}
		out.Source, out.Passes, out.Err = res.Source, res.Passes, nil

		if opts.Validator != nil {
			out.Bag = opts.Validator.Validate(ctx, res.Source)
			if !validate.Accept(out.Bag) {
				out.Status = StatusRejected
				log.Debug("mutant rejected", "slot", slot, "attempt", attempt, "errors", len(out.Bag.BySeverity(diag.SevError)))
				opts.Sink.OnEvent(Event{Slot: slot, Attempt: attempt, Status: StatusRejected, Final: final, Elapsed: time.Since(begin)})
				continue
			}
		}

		out.Status = StatusAccepted
		if opts.Store != nil {
			entry, err := opts.Store.Put(entryFor(opts, slot, attempt, res, out.Bag))
			if err != nil {
				return out, fmt.Errorf("store slot %d: %w", slot, err)
			}
			out.Entry = entry
		}
		opts.Sink.OnEvent(Event{Slot: slot, Attempt: attempt, Status: StatusAccepted, Final: true, ID: out.Entry.ID, Elapsed: time.Since(begin)})
		break
	}
	out.Timings = observ.Aggregate(reports...)
	return out, nil
}

func entryFor(opts Options, slot, attempt int, res pipeline.Result, bag *diag.Bag) corpus.Entry {
	e := corpus.Entry{
		Preset: opts.Preset,
		Seed:   opts.Seed,
		Config: opts.Config,
		Source: res.Source,
	}
	// Границы проверены в Options.validate и streamIndex.
	e.Slot, _ = safecast.Conv[uint32](slot)
	e.Attempt, _ = safecast.Conv[uint32](attempt)
	for _, p := range res.Passes {
		e.Passes = append(e.Passes, string(p))
	}
	if bag != nil {
		for _, d := range bag.Items() {
			e.Warnings = append(e.Warnings, d.String())
		}
	}
	return e
}
