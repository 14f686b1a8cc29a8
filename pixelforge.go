// Package pixelforge is the pure-function facade over the compiler core:
// Compile lowers a game model to C source, Analyze scores a set of tile
// assets. Both are deliberately side-effect-free; callers own all file I/O.
package pixelforge

import (
	"fmt"

	"pixelforge/internal/asset"
	"pixelforge/internal/codegen"
	"pixelforge/internal/diag"
	"pixelforge/internal/model"
)

// CompileOptions mirrors the teacher's staged-pipeline options struct,
// generalized from CoreLX/ROM output to this target's C/codegen.Config.
type CompileOptions struct {
	Codegen *codegen.Config
}

func DefaultCompileOptions() CompileOptions {
	return CompileOptions{Codegen: codegen.DefaultConfig()}
}

func mergeCompileOptions(opts CompileOptions) CompileOptions {
	if opts.Codegen == nil {
		opts.Codegen = codegen.DefaultConfig()
	}
	return opts
}

// CompileResult carries the generated source plus every diagnostic
// accumulated along the way, mirroring the teacher's CompileResult shape.
type CompileResult struct {
	Source      string
	Diagnostics []diag.Diagnostic
}

func (r CompileResult) HasErrors() bool { return diag.HasErrors(r.Diagnostics) }

// Compile runs model validation and full C emission for game, recovering
// from any internal panic as an InternalCompilerError diagnostic rather
// than letting it escape to the caller — the same deferred-recovery shape
// the teacher's CompileSource pipeline uses.
func Compile(game *model.Game, opts CompileOptions) (result CompileResult, err error) {
	opts = mergeCompileOptions(opts)

	defer func() {
		if p := recover(); p != nil {
			result.Diagnostics = append(result.Diagnostics, diag.Errorf(
				diag.StageCodegen, diag.CategoryInternal, "", "", "internal compiler error: %v", p))
			err = fmt.Errorf("internal compiler error: %v", p)
		}
	}()

	genResult := codegen.Generate(game, opts.Codegen)
	result = CompileResult{Source: genResult.Source, Diagnostics: genResult.Diagnostics}
	if result.HasErrors() {
		err = &diag.Error{Diagnostics: diag.Filter(result.Diagnostics, diag.SeverityError)}
	}
	return result, err
}

// AnalyzeOptions configures a single Analyze call.
type AnalyzeOptions struct {
	Config asset.Config
}

func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{Config: asset.DefaultConfig()}
}

// Analyze runs the asset analyzer over a set of already-decoded 2bpp tile
// sets keyed by asset name.
func Analyze(assets map[string][][16]byte, opts AnalyzeOptions) asset.Report {
	if opts.Config == (asset.Config{}) {
		opts.Config = asset.DefaultConfig()
	}
	return asset.Analyze(assets, opts.Config)
}

// Service is a thin wrapper exposing Compile/Analyze as methods, for
// callers (the build-system plugin, external tooling) that prefer an
// object over two free functions — grounded on the teacher's own minimal
// Service pattern.
type Service struct {
	Options CompileOptions
}

func NewService(opts CompileOptions) *Service {
	return &Service{Options: mergeCompileOptions(opts)}
}

func (s *Service) Compile(game *model.Game) (CompileResult, error) {
	return Compile(game, s.Options)
}

func (s *Service) Analyze(assets map[string][][16]byte, opts AnalyzeOptions) asset.Report {
	return Analyze(assets, opts)
}
