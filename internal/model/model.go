// Package model defines the static game description that the recording
// runtime populates and the code generator/simulator consume: sprites,
// pools, animations, state machines, scenes, and the rest of the entity
// catalogue from spec §3.
package model

import (
	"fmt"
	"sort"

	"pixelforge/internal/diag"
	"pixelforge/internal/ir"
)

// Variable is a named, kinded global the DSL declares for use in
// expressions and assignments.
type Variable struct {
	Name    string
	Kind    ir.Kind
	Initial int64
}

// Sprite is a hardware OAM-backed entity.
type Sprite struct {
	Name      string
	OAMSlot   int // -1 = unassigned: skipped by Validate's collision check; codegen does not assign a slot
	TileIndex int
	Palette   string
	InitialX  int64
	InitialY  int64
	Hitbox    *Hitbox
	Anims     []*Animation
}

// Hitbox is a sprite's optional collision rectangle, offset from its owned
// position.
type Hitbox struct {
	OffsetX, OffsetY int
	Width, Height    int
}

// Animation is a named sequence of frame indices played at a fixed speed.
type Animation struct {
	Name   string
	Frames []int
	Speed  int // frame delay in ticks, minimum 1
	Loop   bool

	// OnComplete runs once when a non-looping animation reaches its
	// terminal frame, dispatched by switch on the sprite's current anim.
	OnComplete []ir.Stmt

	// FrameEvents maps a frame index (into Frames) to IR run the tick that
	// frame becomes current.
	FrameEvents map[int][]ir.Stmt
}

// Pool is a fixed-capacity array of homogeneous entities with declared
// per-instance fields.
type Pool struct {
	Name     string
	Capacity int
	Fields   []PoolField

	// OnSpawn runs with the pool's index variable bound to the newly
	// claimed slot, before the slot's sprite (if any) is moved into place.
	OnSpawn []ir.Stmt
	// OnDespawn runs before the slot is cleared and its sprite parked.
	OnDespawn []ir.Stmt
	// OnFrame runs once per active slot, per update() tick.
	OnFrame []ir.Stmt
	// DespawnConditions is a disjunction of boolean expressions checked
	// once per active slot, per update() tick; any true condition
	// despawns that slot.
	DespawnConditions []ir.Expr
}

// PoolField is one column of a Pool's struct-of-arrays layout.
type PoolField struct {
	Name string
	Kind ir.Kind
}

// State is one node of a StateMachine.
type State struct {
	Name  string
	Enter []ir.Stmt
	Body  []ir.Stmt
	Exit  []ir.Stmt

	// BoundSprite/BoundAnim, if set, auto-play that animation on the named
	// sprite when this state is entered.
	BoundSprite string
	BoundAnim   string
	// LockUntilComplete gates every outgoing transition from this state on
	// BoundSprite's anim having returned to ANIM_NONE.
	LockUntilComplete bool
}

// Transition is a guarded edge between two named states.
type Transition struct {
	From string
	To   string
	Cond ir.Expr
}

// StateMachine is a named finite-state machine over a set of States plus
// guarded Transitions, updated once per frame.
type StateMachine struct {
	Name        string
	States      []*State
	Transitions []Transition
	Initial     string
}

// Scene is one top-level game screen: an Enter body run once, a per-frame
// Update body, and an Exit body run the frame a SceneChange is observed.
type Scene struct {
	Name   string
	Enter  []ir.Stmt
	Update []ir.Stmt
	Exit   []ir.Stmt
}

// MixerGroup is a named audio bus with its own volume/mute/priority state.
type MixerGroup struct {
	Name     string
	Priority int
	// Channels is a subset of {"PULSE1", "PULSE2", "WAVE", "NOISE"}: the
	// hardware channels this group owns for priority gating.
	Channels []string
}

// Palette is a named set of hardware color slots.
type Palette struct {
	Name  string
	Kind  string // "bkg" or "obj"
	Slots int
}

// NavGrid is a named pathfinding grid of fixed width/height tile costs.
type NavGrid struct {
	Name   string
	Width  int
	Height int
}

// Dialog is a named text-box definition.
type Dialog struct {
	Name string
	X, Y int
	W, H int
}

// Menu is a named selectable-item list.
type Menu struct {
	Name  string
	Items []string
}

// Tween is a named interpolation target. Codegen does not read declared
// Tweens: the emitted start_tween claims a free runtime slot on every call.
type Tween struct {
	Name string
}

// InputBuffer is a named rolling window of recent joypad state.
type InputBuffer struct {
	Name string
	Size int
}

// SoundEffect is a named short sample.
type SoundEffect struct {
	Name string
}

// Music is a named background track.
type Music struct {
	Name string
}

// SaveSchema is a named set of persisted fields.
type SaveSchema struct {
	Name   string
	Fields []PoolField
	Slots  int
}

// Cutscene is a named scripted sequence, distinct from a Scene in that it
// always returns control to the scene that started it.
type Cutscene struct {
	Name string
	Body []ir.Stmt
}

// Camera is the single implicit camera. Validate does not inspect it.
type Camera struct {
	BoundsSet bool
}

// Game is the root of the static description: everything the recording
// runtime accumulates while a game's authoring closures run.
type Game struct {
	Name string

	Variables     []*Variable
	Sprites       []*Sprite
	Pools         []*Pool
	StateMachines []*StateMachine
	Scenes        []*Scene
	MixerGroups   []*MixerGroup
	Palettes      []*Palette
	NavGrids      []*NavGrid
	Dialogs       []*Dialog
	Menus         []*Menu
	Tweens        []*Tween
	InputBuffers  []*InputBuffer
	Sounds        []*SoundEffect
	Music         []*Music
	SaveSchemas   []*SaveSchema
	Cutscenes     []*Cutscene
	Camera        Camera

	StartScene string
}

func NewGame(name string) *Game {
	return &Game{Name: name}
}

// --- lookups used by codegen/sim ---

func (g *Game) FindSprite(name string) *Sprite {
	for _, s := range g.Sprites {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (g *Game) FindPool(name string) *Pool {
	for _, p := range g.Pools {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (g *Game) FindScene(name string) *Scene {
	for _, s := range g.Scenes {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (g *Game) FindStateMachine(name string) *StateMachine {
	for _, m := range g.StateMachines {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (g *Game) FindVariable(name string) *Variable {
	for _, v := range g.Variables {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Validate enforces the static invariants from spec §3: unique names within
// each catalogue, OAM slot uniqueness among sprites with a fixed slot,
// palette slot uniqueness per declared type, pool field-name uniqueness,
// positive pool capacity, state-machine initial and transition states
// being declared, and that the start scene exists.
// It never mutates Game; codegen calls it before the first emission pass.
func (g *Game) Validate() []diag.Diagnostic {
	var diags []diag.Diagnostic

	diags = append(diags, checkUniqueNames("sprite", spriteNames(g.Sprites))...)
	diags = append(diags, checkUniqueNames("pool", poolNames(g.Pools))...)
	diags = append(diags, checkUniqueNames("scene", sceneNames(g.Scenes))...)
	diags = append(diags, checkUniqueNames("variable", variableNames(g.Variables))...)
	diags = append(diags, checkUniqueNames("state machine", machineNames(g.StateMachines))...)
	diags = append(diags, checkUniqueNames("mixer group", mixerNames(g.MixerGroups))...)

	diags = append(diags, g.validateOAMSlots()...)
	diags = append(diags, g.validatePalettes()...)
	diags = append(diags, g.validatePools()...)
	diags = append(diags, g.validateStateMachines()...)
	diags = append(diags, g.validateScenes()...)

	return diags
}

func (g *Game) validateOAMSlots() []diag.Diagnostic {
	var diags []diag.Diagnostic
	seen := map[int]string{}
	for _, s := range g.Sprites {
		if s.OAMSlot < 0 {
			continue
		}
		if owner, ok := seen[s.OAMSlot]; ok {
			diags = append(diags, diag.Errorf(diag.StageValidate, diag.CategoryConfigConflict, "",
				s.Name, "OAM slot %d already claimed by sprite %q", s.OAMSlot, owner))
			continue
		}
		seen[s.OAMSlot] = s.Name
	}
	return diags
}

func (g *Game) validatePalettes() []diag.Diagnostic {
	var diags []diag.Diagnostic
	seenBkg := map[int]string{}
	seenObj := map[int]string{}
	for _, p := range g.Palettes {
		seen := seenBkg
		if p.Kind == "obj" {
			seen = seenObj
		}
		for slot := 0; slot < p.Slots; slot++ {
			if owner, ok := seen[slot]; ok && owner != p.Name {
				diags = append(diags, diag.Errorf(diag.StageValidate, diag.CategoryConfigConflict, "",
					p.Name, "palette slot %d (%s) already claimed by %q", slot, p.Kind, owner))
				continue
			}
			seen[slot] = p.Name
		}
	}
	return diags
}

func (g *Game) validatePools() []diag.Diagnostic {
	var diags []diag.Diagnostic
	for _, p := range g.Pools {
		if p.Capacity <= 0 {
			diags = append(diags, diag.Errorf(diag.StageValidate, diag.CategoryConfigConflict, "",
				p.Name, "pool capacity must be positive, got %d", p.Capacity))
		}
		fieldSeen := map[string]bool{}
		for _, f := range p.Fields {
			if fieldSeen[f.Name] {
				diags = append(diags, diag.Errorf(diag.StageValidate, diag.CategoryConfigConflict, "",
					p.Name, "duplicate pool field name %q", f.Name))
			}
			fieldSeen[f.Name] = true
		}
	}
	return diags
}

func (g *Game) validateStateMachines() []diag.Diagnostic {
	var diags []diag.Diagnostic
	for _, m := range g.StateMachines {
		stateSeen := map[string]bool{}
		for _, s := range m.States {
			if stateSeen[s.Name] {
				diags = append(diags, diag.Errorf(diag.StageValidate, diag.CategoryConfigConflict, "",
					m.Name, "duplicate state name %q", s.Name))
			}
			stateSeen[s.Name] = true
		}
		if m.Initial != "" && !stateSeen[m.Initial] {
			diags = append(diags, diag.Errorf(diag.StageValidate, diag.CategoryUnknownReference, "",
				m.Name, "initial state %q is not declared", m.Initial))
		}
		for _, t := range m.Transitions {
			if !stateSeen[t.From] {
				diags = append(diags, diag.Errorf(diag.StageValidate, diag.CategoryUnknownReference, "",
					m.Name, "transition from unknown state %q", t.From))
			}
			if !stateSeen[t.To] {
				diags = append(diags, diag.Errorf(diag.StageValidate, diag.CategoryUnknownReference, "",
					m.Name, "transition to unknown state %q", t.To))
			}
		}
	}
	return diags
}

func (g *Game) validateScenes() []diag.Diagnostic {
	var diags []diag.Diagnostic
	if len(g.Scenes) == 0 {
		diags = append(diags, diag.Errorf(diag.StageValidate, diag.CategoryConfigConflict, "",
			g.Name, "game declares no scenes"))
		return diags
	}
	if g.StartScene != "" && g.FindScene(g.StartScene) == nil {
		diags = append(diags, diag.Errorf(diag.StageValidate, diag.CategoryUnknownReference, "",
			g.Name, "start scene %q is not declared", g.StartScene))
	}
	return diags
}

func checkUniqueNames(kind string, names []string) []diag.Diagnostic {
	var diags []diag.Diagnostic
	seen := map[string]bool{}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	for _, n := range sorted {
		if seen[n] {
			diags = append(diags, diag.Errorf(diag.StageValidate, diag.CategoryConfigConflict, "",
				n, fmt.Sprintf("duplicate %s name %q", kind, n)))
			continue
		}
		seen[n] = true
	}
	return diags
}

func spriteNames(s []*Sprite) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.Name
	}
	return out
}

func poolNames(p []*Pool) []string {
	out := make([]string, len(p))
	for i, v := range p {
		out[i] = v.Name
	}
	return out
}

func sceneNames(s []*Scene) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.Name
	}
	return out
}

func variableNames(v []*Variable) []string {
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = x.Name
	}
	return out
}

func machineNames(m []*StateMachine) []string {
	out := make([]string, len(m))
	for i, v := range m {
		out[i] = v.Name
	}
	return out
}

func mixerNames(m []*MixerGroup) []string {
	out := make([]string, len(m))
	for i, v := range m {
		out[i] = v.Name
	}
	return out
}
