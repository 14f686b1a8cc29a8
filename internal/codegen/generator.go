package codegen

import (
	"pixelforge/internal/diag"
	"pixelforge/internal/ir"
	"pixelforge/internal/model"
)

// Config carries the codegen-time knobs that do not belong to the game
// model itself (GBC support, dialog buffer sizing, validation policy).
type Config struct {
	GBCSupport             bool
	WarnOnValidationErrors bool
	DialogBufferSize       int
}

func DefaultConfig() *Config {
	return &Config{GBCSupport: true, WarnOnValidationErrors: true, DialogBufferSize: 80}
}

// Generator holds all per-build monotonic state. Nothing here is global:
// a fresh Generator is created per Compile call and discarded afterward
// (clearState is implicit in that discard, matching the "attach all codegen
// state to the generator instance" design note).
type Generator struct {
	game *model.Game
	cfg  *Config
	em   *CEmitter

	diags []diag.Diagnostic

	oamNext       int
	mixerIDNext   int
	paletteSlot   map[string]int // "bkg"/"obj" -> next free slot

	transitionCallbackIDs map[string]int // not read: registerTransitionCallback dedups with reflect.DeepEqual
	transitionCallbacks   []ir.DomainStmt
	composedSequences     [][]byte

	loopCounterNext int
	pathCounterNext int

	usedEasings map[string]bool
}

func NewGenerator(game *model.Game, cfg *Config) *Generator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Generator{
		game:                  game,
		cfg:                   cfg,
		em:                    NewEmitter(),
		paletteSlot:           map[string]int{"bkg": 0, "obj": 0},
		transitionCallbackIDs: map[string]int{},
		usedEasings:           map[string]bool{"LINEAR": true},
	}
}

// fatalError is the panic payload used to unwind to Generate's recover on a
// fatal diagnostic (UnhandledIR, RecorderMissing-class build errors).
type fatalError struct{ d diag.Diagnostic }

func (g *Generator) fatalf(category diag.Category, location, format string, args ...any) {
	panic(fatalError{diag.Errorf(diag.StageCodegen, category, "", location, format, args...)})
}

func (g *Generator) errorf(category diag.Category, location, format string, args ...any) {
	g.diags = append(g.diags, diag.Errorf(diag.StageCodegen, category, "", location, format, args...))
}

func (g *Generator) warnf(category diag.Category, location, format string, args ...any) {
	g.diags = append(g.diags, diag.Warnf(diag.StageCodegen, category, "", location, format, args...))
}

func (g *Generator) nextOAM(n int) int {
	slot := g.oamNext
	g.oamNext += n
	return slot
}

func (g *Generator) nextLoopCounter() string {
	n := g.loopCounterNext
	g.loopCounterNext++
	return loopCounterVar(n)
}

func (g *Generator) nextPathName() string {
	n := g.pathCounterNext
	g.pathCounterNext++
	return pathVar(n)
}

// Result is the outcome of a Generate call.
type Result struct {
	Source      string
	Diagnostics []diag.Diagnostic
}

// Generate runs model.Validate, then emits the full translation unit in the
// fixed section order from spec §4.3: preamble, data, helpers, scenes,
// main loop. A fatalError panic raised anywhere during emission is recovered
// here and appended to the diagnostics collected so far, in a Result with
// no Source.
func Generate(game *model.Game, cfg *Config) (res Result) {
	g := NewGenerator(game, cfg)

	defer func() {
		if p := recover(); p != nil {
			if fe, ok := p.(fatalError); ok {
				res = Result{Diagnostics: append(g.diags, fe.d)}
				return
			}
			res = Result{Diagnostics: append(g.diags, diag.Errorf(diag.StageCodegen, diag.CategoryInternal, "", "",
				"internal compiler error: %v", p))}
		}
	}()

	if vdiags := game.Validate(); diag.HasErrors(vdiags) {
		g.diags = append(g.diags, vdiags...)
		return Result{Diagnostics: g.diags}
	} else {
		g.diags = append(g.diags, vdiags...)
	}

	g.collectUsedEasings()

	g.emitPreamble()
	g.em.Blank()
	g.emitDataSections()
	g.em.Blank()
	g.emitHelperFunctions()
	g.em.Blank()
	g.emitSceneFunctions()
	g.em.Blank()
	g.emitMainLoop()

	return Result{Source: g.em.String(), Diagnostics: g.diags}
}

func (g *Generator) emitPreamble() {
	e := g.em
	e.Comment("Generated translation unit. Do not edit by hand.")
	e.Raw(`#include <gb/gb.h>
#include <gb/hardware.h>
#include <stdio.h>
#include <string.h>
#include <stdlib.h>

typedef unsigned char UINT8;
typedef signed char INT8;
typedef unsigned int UINT16;
typedef signed int INT16;
`)
	e.Line("#define %s %d", SceneNoneConst, SceneNoneValue)
	e.Line("#define %s 255", AnimNoneConst)
	e.Blank()
	e.Comment("Animation flag bits")
	e.Line("#define LOOPING 0x01")
	e.Line("#define PAUSED  0x02")
	e.Line("#define REVERSED 0x04")
	e.Line("#define COMPLETE 0x08")
	e.Blank()
	e.Comment("Mixer channel index mapping")
	e.Line("#define PULSE1 0")
	e.Line("#define PULSE2 1")
	e.Line("#define WAVE   2")
	e.Line("#define NOISE  3")
	e.Blank()
	g.emitTransitionStepConstants()
	e.Line("#define MAX_TWEENS %d", MaxTweens)
	e.Line("#define DIALOG_BUFFER_SIZE %d", g.cfg.DialogBufferSize)
}
