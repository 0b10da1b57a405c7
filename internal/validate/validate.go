// Package validate judges mutated shaders by compiling them with naga.
// The fuzzing engine never calls it; callers use the diagnostics to decide
// whether to keep a mutant.
package validate

import (
	"context"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/spirv"
	"github.com/gogpu/naga/wgsl"

	"wgslfuzz/internal/diag"
	"wgslfuzz/internal/lexer"
)

// DefaultMaxDiagnostics bounds the bag a Validator returns.
const DefaultMaxDiagnostics = 64

// Validator reports diagnostics for a shader source.
type Validator interface {
	Validate(ctx context.Context, src string) *diag.Bag
}

// Naga validates by running naga's WGSL front end and SPIR-V back end.
type Naga struct {
	// MaxDiagnostics caps the bag; zero means DefaultMaxDiagnostics.
	MaxDiagnostics int
	// SkipAnchors disables the anchor warnings.
	SkipAnchors bool
}

// NewNaga returns a Naga validator with default limits.
func NewNaga() *Naga { return &Naga{} }

// Validate never returns nil. The first failing compiler stage becomes one
// error diagnostic; later stages are not attempted.
func (n *Naga) Validate(ctx context.Context, src string) *diag.Bag {
	limit := n.MaxDiagnostics
	if limit <= 0 {
		limit = DefaultMaxDiagnostics
	}
	bag := diag.NewBag(limit)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	if err := ctx.Err(); err != nil {
		rep.Report(diag.ValCompile, diag.SevError, diag.Pos{}, err.Error())
		return bag
	}

	seq := lexer.TokenizeWith(src, lexer.Options{Reporter: rep})
	if !n.SkipAnchors {
		CheckAnchors(src, seq, rep)
	}
	compile(src, rep)
	bag.Sort()
	return bag
}

// compile runs the naga stages in order. A panic inside naga is reported
// as a compile error.
func compile(src string, rep diag.Reporter) {
	stage := diag.ValTokenize
	defer func() {
		if rec := recover(); rec != nil {
			rep.Report(stage, diag.SevError, diag.Pos{}, fmt.Sprintf("compiler panic: %v", rec))
		}
	}()

	tokens, err := wgsl.NewLexer(src).Tokenize()
	if err != nil {
		reportStage(src, rep, stage, err)
		return
	}
	stage = diag.ValParse
	ast, err := wgsl.NewParser(tokens).Parse()
	if err != nil {
		reportStage(src, rep, stage, err)
		return
	}
	stage = diag.ValLower
	module, err := wgsl.LowerWithSource(ast, src)
	if err != nil {
		reportStage(src, rep, stage, err)
		return
	}
	if len(module.EntryPoints) == 0 {
		rep.Report(diag.ValLower, diag.SevWarning, diag.Pos{}, "module declares no entry points")
	}
	stage = diag.ValCompile
	if _, err := spirv.NewBackend(spirv.DefaultOptions()).Compile(module); err != nil {
		reportStage(src, rep, stage, err)
	}
}

func reportStage(src string, rep diag.Reporter, code diag.Code, err error) {
	rep.Report(code, diag.SevError, posFromError(src, err.Error()), err.Error())
}

// Accept reports whether bag holds no errors. Warnings do not reject.
func Accept(bag *diag.Bag) bool {
	return bag == nil || !bag.HasErrors()
}

// Compile translates src to SPIR-V.
func Compile(src string) ([]byte, error) {
	spv, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile wgsl: %w", err)
	}
	return spv, nil
}
