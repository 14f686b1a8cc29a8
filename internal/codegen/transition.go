package codegen

import (
	"fmt"
	"reflect"

	"pixelforge/internal/ir"
)

// Transition step-type constants, bit-stable per spec §4.3/§6.
const (
	TStepEnd     = 0
	TStepFadeOut = 1
	TStepFadeIn  = 2
	TStepFlash   = 3
	TStepWipeL   = 4
	TStepWipeR   = 5
	TStepWipeU   = 6
	TStepWipeD   = 7
	TStepIrisOut = 8
	TStepIrisIn  = 9
	TStepWait    = 10
	TStepShake   = 11
	TStepCallback = 12
	TStepParallel = 13
)

func (g *Generator) emitTransitionStepConstants() {
	e := g.em
	e.Comment("Transition step-type constants")
	pairs := []struct {
		name string
		val  int
	}{
		{"TSTEP_END", TStepEnd}, {"FADE_OUT", TStepFadeOut}, {"FADE_IN", TStepFadeIn},
		{"FLASH", TStepFlash}, {"WIPE_L", TStepWipeL}, {"WIPE_R", TStepWipeR},
		{"WIPE_U", TStepWipeU}, {"WIPE_D", TStepWipeD}, {"IRIS_OUT", TStepIrisOut},
		{"IRIS_IN", TStepIrisIn}, {"WAIT", TStepWait}, {"SHAKE", TStepShake},
		{"CALLBACK", TStepCallback}, {"PARALLEL", TStepParallel},
	}
	for _, p := range pairs {
		e.Line("#define %s %d", p.name, p.val)
	}
}

// transitionStep is one flattened primitive step of a composed transition.
type transitionStep struct {
	typ      int
	duration int
	params   []int
}

// encodeTransitionSequence flattens a composed transition's Nested []ir.Stmt
// (built from DomainStmt{Category:"transition", Op:"composed"}) into the
// byte stream format from spec §4.3:
//
//	[step_count, step_type, duration, [extra params], ..., 0]
//
// Sequence members are emitted in order; Parallel members are nested
// records (a count followed by that many flat (type, duration, params)
// triples) — a Parallel nested inside another Parallel is unsupported and
// encodes as a (0, 0) no-op, per spec.
func (g *Generator) encodeTransitionSequence(steps []ir.Stmt) []byte {
	flat := g.flattenTransitionSteps(steps, false)
	out := []byte{byte(len(flat))}
	for _, s := range flat {
		out = append(out, encodeOneStep(s)...)
	}
	out = append(out, TStepEnd)
	return out
}

func (g *Generator) flattenTransitionSteps(stmts []ir.Stmt, insideParallel bool) []transitionStep {
	var out []transitionStep
	for _, stmt := range stmts {
		ds, ok := stmt.(*ir.DomainStmt)
		if !ok || ds.Category != "transition" {
			continue
		}
		switch ds.Op {
		case "fade_out":
			out = append(out, transitionStep{TStepFadeOut, intScalar(ds, 0, "frames"), nil})
		case "fade_in":
			out = append(out, transitionStep{TStepFadeIn, intScalar(ds, 0, "frames"), nil})
		case "flash":
			out = append(out, transitionStep{TStepFlash, intScalar(ds, 1, "frames"), []int{intScalar(ds, 0, "color")}})
		case "wipe":
			out = append(out, transitionStep{wipeStepType(ds), intScalar(ds, 0, "frames"), nil})
		case "iris":
			out = append(out, transitionStep{irisStepType(ds), intScalar(ds, 0, "frames"), nil})
		case "shake":
			out = append(out, transitionStep{TStepShake, 0, []int{intScalar(ds, 0, "intensity"), intScalar(ds, 1, "decay")}})
		case "wait":
			out = append(out, transitionStep{TStepWait, intScalar(ds, 0, "frames"), nil})
		case "callback":
			id := g.registerTransitionCallback(ds.Nested)
			out = append(out, transitionStep{TStepCallback, 0, []int{id}})
		case "cancel":
			// Cancel does not participate in sequence encoding.
		case "composed":
			if insideParallel {
				// Nested sequences/parallels inside a parallel are unsupported.
				out = append(out, transitionStep{TStepEnd, 0, nil})
				continue
			}
			out = append(out, g.flattenTransitionSteps(ds.Nested, false)...)
		case "parallel":
			if insideParallel {
				out = append(out, transitionStep{TStepEnd, 0, nil})
				continue
			}
			children := g.flattenTransitionSteps(ds.Nested, true)
			var packed []int
			for _, c := range children {
				for _, b := range encodeOneStep(c) {
					packed = append(packed, int(b))
				}
			}
			out = append(out, transitionStep{TStepParallel, len(children), packed})
		}
	}
	return out
}

func wipeStepType(ds *ir.DomainStmt) int {
	switch ds.Scalars["dir"] {
	case "L":
		return TStepWipeL
	case "R":
		return TStepWipeR
	case "U":
		return TStepWipeU
	default:
		return TStepWipeD
	}
}

func irisStepType(ds *ir.DomainStmt) int {
	if ds.Scalars["mode"] == "close" {
		return TStepIrisOut
	}
	return TStepIrisIn
}

// intScalar extracts an integer literal from ds.Args[idx] if present,
// falling back to a named Scalars entry, falling back to 0. Both codegen
// and the test suite only ever construct these from ir.Lit literals.
func intScalar(ds *ir.DomainStmt, idx int, name string) int {
	if idx < len(ds.Args) {
		if lit, ok := ds.Args[idx].(*ir.Literal); ok {
			return int(lit.Value.Raw)
		}
	}
	if v, ok := ds.Scalars[name]; ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return 0
}

func encodeOneStep(s transitionStep) []byte {
	out := []byte{byte(s.typ), byte(s.duration)}
	for _, p := range s.params {
		out = append(out, byte(p))
	}
	return out
}

// registerComposedSequence assigns (with dedup-by-equality) a sequence id
// for a flattened byte stream, matching the "per-generator monotonic vector
// deduplicated by equality" allocation policy.
func (g *Generator) registerComposedSequence(stream []byte) int {
	for i, existing := range g.composedSequences {
		if bytesEqual(existing, stream) {
			return i
		}
	}
	g.composedSequences = append(g.composedSequences, stream)
	return len(g.composedSequences) - 1
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// registerTransitionCallback dedups callback IR lists by structural
// equality, reusing a single id for identical callback bodies.
func (g *Generator) registerTransitionCallback(body []ir.Stmt) int {
	for id, cb := range g.transitionCallbacks {
		if reflect.DeepEqual(cb.Nested, body) {
			return id
		}
	}
	id := len(g.transitionCallbacks)
	g.transitionCallbacks = append(g.transitionCallbacks, ir.DomainStmt{Nested: body})
	return id
}

// stmtListKey produces a shallow key for a statement list: category/op/
// target for domain statements, the target of an assignment, the name of a
// call, and "?" for any other statement, so different lists can share a key.
func stmtListKey(stmts []ir.Stmt) string {
	var sb []byte
	for _, s := range stmts {
		sb = append(sb, []byte(formatStmtKey(s))...)
	}
	return string(sb)
}

func formatStmtKey(s ir.Stmt) string {
	switch v := s.(type) {
	case *ir.DomainStmt:
		return v.Category + ":" + v.Op + ":" + v.Target + "|"
	case *ir.Assign:
		return "assign:" + v.Target + "|"
	case *ir.FuncCall:
		return "call:" + v.Name + "|"
	default:
		return "?|"
	}
}

func (g *Generator) emitTransitionData() {
	e := g.em
	if len(g.composedSequences) == 0 {
		return
	}
	e.Comment("Composed transition sequences")
	for i, seq := range g.composedSequences {
		bytesLit := make([]string, len(seq))
		for j, b := range seq {
			bytesLit[j] = itoa(int(b))
		}
		e.Line("const UINT8 _trans_seq_%d[] = {%s};", i, joinComma(bytesLit))
	}
}

// emitTransitionCallbacks emits one function per distinct registered
// callback body plus a run_transition_callback(id) dispatcher switch, for
// both standalone TransCallback statements and CALLBACK steps nested in a
// composed/parallel sequence.
func (g *Generator) emitTransitionCallbacks() {
	if len(g.transitionCallbacks) == 0 {
		return
	}
	e := g.em
	e.Comment("Transition callbacks")
	for i, cb := range g.transitionCallbacks {
		e.Block(fmt.Sprintf("void _trans_cb_%d(void)", i), func() {
			g.lowerStmts(cb.Nested)
		})
	}
	e.Blank()
	e.Block("void run_transition_callback(INT8 id)", func() {
		e.Block("switch (id)", func() {
			for i := range g.transitionCallbacks {
				e.Line("case %d: _trans_cb_%d(); break;", i, i)
			}
		})
	})
}

func (g *Generator) emitTransitionState() {
	e := g.em
	e.Comment("Transition state")
	e.Line("UINT8 %s = 0;", transTypeVar)
	e.Line("UINT8 %s = 0;", transTimerVar)
	e.Line("UINT8 %s = 0;", transDurationVar)
	e.Line("UINT16 %s = 0;", transFlashColorVar)
	e.Line("UINT8 %s = 0;", transCenterXVar)
	e.Line("UINT8 %s = 0;", transCenterYVar)
	e.Line("INT8 %s = -1;", transCallbackVar)
	e.Line("UINT8 %s = 0;", transShakeIntensityVar)
	e.Line("UINT8 %s = 0;", transShakeDecayVar)
	e.Line("UINT8 %s = %s;", transTargetSceneVar, SceneNoneConst)
	e.Line("INT8 %s = -1;", transSeqIDVar)
	e.Line("UINT8 %s = 0;", transSeqStepVar)
	e.Line("UINT8 %s = 0;", transSeqTimerVar)
	e.Line("UINT8 %s = 0;", transSeqActiveVar)
}

// emitTransitionUpdate emits update_transition() (and update_trans_sequence()
// when any composed sequence exists), the runtime walker for one sequence id
// at a time as described in spec §4.3.
func (g *Generator) emitTransitionUpdate() {
	e := g.em
	e.Block("void update_transition(void)", func() {
		e.Block("if (!"+transTimerVar+")", func() {
			e.Line("return;")
		})
		e.Line("%s--;", transTimerVar)
		e.Block("if (!"+transTimerVar+")", func() {
			e.Block("if ("+transCallbackVar+" != -1)", func() {
				e.Line("run_transition_callback(%s);", transCallbackVar)
			})
		})
	})
	if len(g.composedSequences) == 0 {
		return
	}
	e.Blank()
	e.Block("void update_trans_sequence(void)", func() {
		e.Block("if (!"+transSeqActiveVar+")", func() {
			e.Line("return;")
		})
		e.Comment("advances one flattened (type,duration,params) record per elapsed step")
		e.Block("if ("+transSeqTimerVar+" > 0)", func() {
			e.Line("%s--;", transSeqTimerVar)
			e.Line("return;")
		})
		e.Line("advance_trans_sequence_step();")
	})
}
