// Package sim implements the in-process interpreter used to validate DSL
// programs without emulation: it walks the same IR the code generator
// lowers, against a mutable in-memory state bag (spec §4.4).
package sim

import (
	"fmt"

	"pixelforge/internal/diag"
	"pixelforge/internal/ir"
	"pixelforge/internal/model"
)

const maxWhileIterations = 10000

// poolEntry is one in-memory pool instance slot.
type poolEntry struct {
	active bool
	x, y   int64
	fields map[string]int64
}

// Simulator holds the mutable state bag described in spec §4.4: a variable
// map, sprite/pool stores, camera position, transition-active flag, current
// scene, frame count, and joypad/joypad-prev registers.
type Simulator struct {
	game *model.Game

	vars map[string]ir.Value

	pools map[string][]*poolEntry

	cameraX, cameraY int64
	transitionActive bool

	currentScene    string
	pendingScene    string
	sceneJustChanged bool

	frameCount int64

	joypad, joypadPrev uint8

	mixerGroups map[string]*mixerGroupState
	tweens      []*tweenSlot

	machines   map[string]string
	spriteAnim map[string]string

	Errors []diag.Diagnostic
}

// New constructs a Simulator from game, initializing every declared
// variable to its default and every pool to an all-inactive array of its
// declared capacity.
func New(game *model.Game) *Simulator {
	s := &Simulator{
		game:       game,
		vars:       map[string]ir.Value{},
		pools:      map[string][]*poolEntry{},
		machines:   map[string]string{},
		spriteAnim: map[string]string{},
	}
	for _, v := range game.Variables {
		s.vars[v.Name] = ir.Value{Raw: ir.Wrap(v.Initial, v.Kind), Kind: v.Kind}
	}
	for _, p := range game.Pools {
		entries := make([]*poolEntry, p.Capacity)
		for i := range entries {
			entries[i] = &poolEntry{fields: map[string]int64{}}
		}
		s.pools[p.Name] = entries
	}
	for _, m := range game.StateMachines {
		s.machines[m.Name] = m.Initial
	}
	if game.StartScene != "" {
		s.currentScene = game.StartScene
	} else if len(game.Scenes) > 0 {
		s.currentScene = game.Scenes[0].Name
	}
	return s
}

func (s *Simulator) fatal(category diag.Category, format string, args ...any) {
	d := diag.Errorf(diag.StageSimulate, category, "", "", format, args...)
	s.Errors = append(s.Errors, d)
	panic(d)
}

// Variable reads a variable's current value.
func (s *Simulator) Variable(name string) (ir.Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// SetVariable writes a variable's value, wrapping to its declared kind.
func (s *Simulator) SetVariable(name string, v ir.Value) {
	cur, ok := s.vars[name]
	kind := v.Kind
	if ok {
		kind = cur.Kind
	}
	s.vars[name] = ir.Value{Raw: ir.Wrap(v.Raw, kind), Kind: kind}
}

func (s *Simulator) CurrentScene() string { return s.currentScene }
func (s *Simulator) FrameCount() int64    { return s.frameCount }
func (s *Simulator) Camera() (int64, int64) { return s.cameraX, s.cameraY }

// Pool exposes the in-memory slots of a declared pool for test assertions.
func (s *Simulator) Pool(name string) []*poolEntry { return s.pools[name] }

// StateMachineState returns a state machine's current state name.
func (s *Simulator) StateMachineState(name string) string { return s.machines[name] }

// SpriteAnim returns a sprite's current anim name, or "" if none is playing
// (the simulator's equivalent of ANIM_NONE).
func (s *Simulator) SpriteAnim(sprite string) string { return s.spriteAnim[sprite] }

// EnterScene runs the named scene's onEnter body immediately (used both for
// the very first scene and, from ExecuteFrame, for a scene that became
// current at the start of this frame).
func (s *Simulator) EnterScene(name string) {
	sc := s.game.FindScene(name)
	if sc == nil {
		s.fatal(diag.CategoryUnknownReference, "scene %q does not exist", name)
		return
	}
	s.currentScene = name
	s.executeStmts(sc.Enter)
}

// ExecuteFrame runs one frame: if a scene change was requested last frame,
// enters the new scene's onEnter first, then always runs the current
// scene's onFrame body, per the scene-change-delay semantics in spec §4.4.
func (s *Simulator) ExecuteFrame() (err error) {
	defer func() {
		if p := recover(); p != nil {
			if d, ok := p.(diag.Diagnostic); ok {
				err = fmt.Errorf("%s", d.Message)
				return
			}
			panic(p)
		}
	}()

	if s.sceneJustChanged {
		s.sceneJustChanged = false
		s.currentScene = s.pendingScene
		s.pendingScene = ""
		if sc := s.game.FindScene(s.currentScene); sc != nil {
			s.executeStmts(sc.Enter)
		}
	}

	if sc := s.game.FindScene(s.currentScene); sc != nil {
		s.executeStmts(sc.Update)
	}

	s.updateTweens()
	s.frameCount++
	return nil
}

// TweenValue returns the current value of the first active (or most
// recently finished) tween targeting the named variable, for test
// assertions; ok is false if no tween has ever targeted it.
func (s *Simulator) TweenValue(target string) (ir.Value, bool) {
	v := s.vars[target]
	for _, t := range s.tweens {
		if t.target == target {
			return v, true
		}
	}
	return v, false
}

func (s *Simulator) requestSceneChange(name string) {
	if sc := s.game.FindScene(s.currentScene); sc != nil {
		s.executeStmts(sc.Exit)
	}
	s.pendingScene = name
	s.currentScene = name
	s.sceneJustChanged = true
}

// ExecuteStatement runs a single IR statement against the state bag;
// exported for unit tests that exercise one statement in isolation.
func (s *Simulator) ExecuteStatement(stmt ir.Stmt) { s.executeStmt(stmt) }

func (s *Simulator) executeStmts(stmts []ir.Stmt) {
	for _, st := range stmts {
		s.executeStmt(st)
	}
}

func (s *Simulator) executeStmt(stmt ir.Stmt) {
	switch st := stmt.(type) {
	case *ir.Assign:
		s.execAssign(st)
	case *ir.If:
		if s.evalBool(st.Cond) {
			s.executeStmts(st.Then)
		} else {
			s.executeStmts(st.Else)
		}
	case *ir.When:
		for _, b := range st.Branches {
			if s.evalBool(b.Cond) {
				s.executeStmts(b.Body)
				return
			}
		}
		s.executeStmts(st.Else)
	case *ir.While:
		n := 0
		for s.evalBool(st.Cond) {
			s.executeStmts(st.Body)
			n++
			if n > maxWhileIterations {
				s.fatal(diag.CategoryInternal, "infinite loop")
				return
			}
		}
	case *ir.For:
		from := s.eval(st.Range[0])
		to := s.eval(st.Range[1])
		for i := from.Raw; i <= to.Raw; i++ {
			s.SetVariable(st.Counter, ir.Value{Raw: i, Kind: from.Kind})
			s.executeStmts(st.Body)
		}
	case *ir.FuncCall:
		// User/SDK function calls have no simulator-visible effect; they
		// are meaningful only in emitted C.
	case *ir.Raw:
		// Not meaningful off-device.
	case *ir.ArrayAssign:
		// Backing array storage is not modeled by the simulator; array
		// assignment is accepted as a no-op off-device statement.
	case *ir.SceneChange:
		s.requestSceneChange(st.Scene)
	case *ir.DomainStmt:
		s.execDomainStmt(st)
	default:
		s.fatal(diag.CategoryUnhandledIR, "unhandled IR statement type %T", stmt)
	}
}

func (s *Simulator) execAssign(st *ir.Assign) {
	cur, ok := s.vars[st.Target]
	if !ok {
		cur = ir.Value{Kind: ir.U16}
	}
	val := s.eval(st.Value)
	var result ir.Value
	switch st.Op {
	case ir.SET:
		result = ir.Value{Raw: val.Raw, Kind: cur.Kind}
	case ir.ASSIGN_ADD:
		result, _ = ir.EvalBinary(ir.ADD, cur, val)
	case ir.ASSIGN_SUB:
		result, _ = ir.EvalBinary(ir.SUB, cur, val)
	case ir.ASSIGN_MUL:
		result, _ = ir.EvalBinary(ir.MUL, cur, val)
	case ir.ASSIGN_AND:
		result, _ = ir.EvalBinary(ir.AND, cur, val)
	case ir.ASSIGN_OR:
		result, _ = ir.EvalBinary(ir.OR, cur, val)
	}
	s.vars[st.Target] = ir.Value{Raw: ir.Wrap(result.Raw, cur.Kind), Kind: cur.Kind}
}

func (s *Simulator) evalBool(e ir.Expr) bool { return s.eval(e).Raw != 0 }

// Eval is exported for tests that exercise expression evaluation directly.
func (s *Simulator) Eval(e ir.Expr) ir.Value { return s.eval(e) }

func (s *Simulator) eval(expr ir.Expr) ir.Value {
	switch e := expr.(type) {
	case *ir.Literal:
		return e.Value
	case *ir.VarRef:
		if v, ok := s.vars[e.Name]; ok {
			return v
		}
		s.fatal(diag.CategoryUnknownReference, "unknown variable %q", e.Name)
		return ir.Value{}
	case *ir.Binary:
		l := s.eval(e.Left)
		r := s.eval(e.Right)
		v, ok := ir.EvalBinary(e.Op, l, r)
		if !ok {
			s.fatal(diag.CategoryDivByZero, "division or modulo by zero")
			return ir.Value{}
		}
		return v
	case *ir.Unary:
		return ir.EvalUnary(e.Op, s.eval(e.Operand))
	case *ir.Ternary:
		if s.evalBool(e.Cond) {
			return s.eval(e.Then)
		}
		return s.eval(e.Else)
	case *ir.Call:
		// SDK/user functions are not modeled; calls evaluate to zero.
		return ir.Value{Kind: ir.U16}
	case *ir.ArrayAccess:
		return ir.Value{Kind: ir.U16}
	case *ir.DomainExpr:
		return s.evalDomainExpr(e)
	default:
		s.fatal(diag.CategoryUnhandledIR, "unhandled IR expression type %T", expr)
		return ir.Value{}
	}
}

func (s *Simulator) evalDomainExpr(e *ir.DomainExpr) ir.Value {
	switch e.Category {
	case "pool":
		if e.Op == "active_count" {
			count := int64(0)
			for _, entry := range s.pools[e.Target] {
				if entry.active {
					count++
				}
			}
			return ir.Value{Raw: count, Kind: ir.U16}
		}
	case "camera":
		switch e.Op {
		case "x":
			return ir.Value{Raw: s.cameraX, Kind: ir.U16}
		case "y":
			return ir.Value{Raw: s.cameraY, Kind: ir.U16}
		}
	case "transition":
		if e.Op == "active" {
			return ir.BoolValue(s.transitionActive)
		}
	}
	return ir.Value{Kind: ir.U16}
}
