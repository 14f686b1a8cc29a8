// Package record implements the recording runtime: the statement recorder
// stack that an imperative Go DSL closure emits IR into while it runs (spec
// §4.2). Unlike the teacher's corelx package, there is no lexer or parser
// here — game authors write Go closures that call into a Builder, and the
// Builder appends ir.Stmt values to whichever scope is current.
package record

import (
	"fmt"

	"pixelforge/internal/diag"
	"pixelforge/internal/ir"
)

// Scope is one nested recording frame: a scene body, an if/else branch, a
// while/for body, a pool for-each body, or a transition's composed step
// list. Builder.WithScope pushes a Scope, runs a closure against it, and
// pops it back off, so Go's own call stack gives us reentrancy for free.
type Scope struct {
	stmts []ir.Stmt
	owner string // scene/sprite/pool name the scope belongs to, for diagnostics
}

func (s *Scope) append(stmt ir.Stmt) { s.stmts = append(s.stmts, stmt) }

// Builder is the recording runtime's entry point. A Game owns exactly one
// Builder; every scene-authoring closure receives it (or a value closing
// over it) and records into whatever scope is topmost.
type Builder struct {
	scopes []*Scope
	diags  []diag.Diagnostic
}

func NewBuilder() *Builder {
	return &Builder{}
}

// WithScope pushes a new recording scope owned by owner, runs fn, pops the
// scope, and returns the recorded statement list. The push/pop happens in a
// defer so a panic inside fn (e.g. a Require failure) still leaves the
// Builder's scope stack balanced.
func (b *Builder) WithScope(owner string, fn func()) []ir.Stmt {
	s := &Scope{owner: owner}
	b.scopes = append(b.scopes, s)
	defer func() {
		b.scopes = b.scopes[:len(b.scopes)-1]
	}()
	fn()
	return s.stmts
}

// Record appends stmt to the current scope. It panics if called outside any
// WithScope — every DSL statement constructor (ir.SoundPlay, ir.AnimPlay,
// ...) is expected to be wrapped by a helper that calls Record immediately,
// so a call outside a scope is an authoring bug, not recoverable input.
func (b *Builder) Record(stmt ir.Stmt) {
	if len(b.scopes) == 0 {
		panic(record{diag.CategoryRecorderMissing, "Record called with no active scope"})
	}
	b.scopes[len(b.scopes)-1].append(stmt)
}

// Emit is an alias for Record kept for DSL call sites that read more
// naturally as "emit a statement" than "record one" (transition steps,
// cutscene steps).
func (b *Builder) Emit(stmt ir.Stmt) { b.Record(stmt) }

// Require panics with a diag.Diagnostic if cond is false. DSL helpers call
// this to reject authoring mistakes (referencing an undeclared sprite,
// recursing a cutscene into itself) at record time rather than deferring to
// codegen or the simulator.
func (b *Builder) Require(cond bool, category diag.Category, location, format string, args ...any) {
	if cond {
		return
	}
	d := diag.Errorf(diag.StageRecord, category, "", location, format, args...)
	panic(record{d.Category, d.Message})
}

// Diagnostics returns any non-fatal diagnostics accumulated during
// recording (currently just a plain accessor; reserved for future
// record-time warnings such as an animation recorded with zero frames).
func (b *Builder) Diagnostics() []diag.Diagnostic { return b.diags }

func (b *Builder) warn(category diag.Category, location, format string, args ...any) {
	b.diags = append(b.diags, diag.Warnf(diag.StageRecord, category, "", location, format, args...))
}

// record is the panic payload Require and a missing-scope Record raise.
// Recover converts it back into a diag.Diagnostic; it is never meant to
// escape the top-level Compile entry point.
type record struct {
	category diag.Category
	message  string
}

func (r record) Error() string { return fmt.Sprintf("%s: %s", r.category, r.message) }

// Recover turns a panic value raised by Require or Record into a
// diag.Diagnostic if it originated from this package. Any other panic value
// yields ok=false and is not converted; re-panicking it is left to the
// caller.
func Recover(p any) (diag.Diagnostic, bool) {
	if r, ok := p.(record); ok {
		return diag.Errorf(diag.StageRecord, r.category, "", "", "%s", r.message), true
	}
	return diag.Diagnostic{}, false
}
