package sim

import (
	"testing"

	"pixelforge/internal/ir"
	"pixelforge/internal/model"
)

// TestCounterWrap: declare u8 counter=0; scene with every.frame { counter += 1 }.
// Advance 10 frames -> counter == 10. Advance to 260 frames -> counter == 4 (wrap).
func TestCounterWrap(t *testing.T) {
	g := model.NewGame("demo")
	g.Variables = append(g.Variables, &model.Variable{Name: "counter", Kind: ir.U8})
	g.Scenes = append(g.Scenes, &model.Scene{
		Name: "main",
		Update: []ir.Stmt{
			&ir.Assign{Target: "counter", Op: ir.ASSIGN_ADD, Value: ir.Lit(ir.U8, 1)},
		},
	})
	g.StartScene = "main"

	s := New(g)
	s.EnterScene("main")

	for i := 0; i < 10; i++ {
		if err := s.ExecuteFrame(); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	v, ok := s.Variable("counter")
	if !ok || v.Raw != 10 {
		t.Fatalf("after 10 frames counter = %v, want 10", v.Raw)
	}

	for i := 10; i < 260; i++ {
		if err := s.ExecuteFrame(); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	v, ok = s.Variable("counter")
	if !ok || v.Raw != 4 {
		t.Fatalf("after 260 frames counter = %v, want 4 (wrap)", v.Raw)
	}
}

// TestSceneChangeDelay: in scene A, onFrame does scene(B); onEnter(B) sets
// flag = 7. Run one frame with start A: after the frame, current scene is B
// and flag == 0 (enter runs next frame). Run a second frame: flag == 7.
func TestSceneChangeDelay(t *testing.T) {
	g := model.NewGame("demo")
	g.Variables = append(g.Variables, &model.Variable{Name: "flag", Kind: ir.U8})
	g.Scenes = append(g.Scenes,
		&model.Scene{
			Name:   "A",
			Update: []ir.Stmt{&ir.SceneChange{Scene: "B"}},
		},
		&model.Scene{
			Name:  "B",
			Enter: []ir.Stmt{&ir.Assign{Target: "flag", Op: ir.SET, Value: ir.Lit(ir.U8, 7)}},
		},
	)
	g.StartScene = "A"

	s := New(g)
	s.EnterScene("A")

	if err := s.ExecuteFrame(); err != nil {
		t.Fatalf("frame 1: %v", err)
	}
	if s.CurrentScene() != "B" {
		t.Fatalf("after frame 1, scene = %q, want B", s.CurrentScene())
	}
	v, _ := s.Variable("flag")
	if v.Raw != 0 {
		t.Fatalf("after frame 1, flag = %v, want 0 (enter runs next frame)", v.Raw)
	}

	if err := s.ExecuteFrame(); err != nil {
		t.Fatalf("frame 2: %v", err)
	}
	v, _ = s.Variable("flag")
	if v.Raw != 7 {
		t.Fatalf("after frame 2, flag = %v, want 7", v.Raw)
	}
}

// TestPoolSpawnDespawnOrdering: pool size 4, four entries spawned; then
// despawn_where(active_count > 1) runs against the real execPoolStmt code
// path. active_count falls by one on every despawn, so the surviving entry
// reveals iteration order: a back-to-front scan (the required order) keeps
// index 0, while a forward scan would instead keep index 3.
func TestPoolSpawnDespawnOrdering(t *testing.T) {
	g := model.NewGame("demo")
	g.Pools = append(g.Pools, &model.Pool{Name: "bullets", Capacity: 4})

	s := New(g)
	for i := 0; i < 4; i++ {
		s.ExecuteStatement(ir.PoolSpawnAt("bullets", ir.Lit(ir.U16, 0), ir.Lit(ir.U16, 0)))
	}

	s.ExecuteStatement(ir.PoolDespawnWhere("bullets", &ir.Binary{
		Op:    ir.GT,
		Left:  ir.PoolActiveCount("bullets"),
		Right: ir.Lit(ir.U16, 1),
	}))

	entries := s.Pool("bullets")
	if !entries[0].active {
		t.Fatalf("entry 0 should have survived a back-to-front despawn scan")
	}
	for _, i := range []int{1, 2, 3} {
		if entries[i].active {
			t.Fatalf("entry %d should have been despawned", i)
		}
	}
}

// TestTweenIntegerCorrectness: start a U8 tween from 200 to 50 over 10 frames
// with LINEAR. After each of frames 1..10, value == 200 - 15*k for k=0..10
// with the final frame exactly 50.
func TestTweenIntegerCorrectness(t *testing.T) {
	g := model.NewGame("demo")
	g.Variables = append(g.Variables, &model.Variable{Name: "x", Kind: ir.U8, Initial: 200})
	g.Scenes = append(g.Scenes, &model.Scene{Name: "main"})
	g.StartScene = "main"

	s := New(g)
	s.EnterScene("main")
	s.ExecuteStatement(ir.TweenStart("x", ir.Lit(ir.U8, 200), ir.Lit(ir.U8, 50), 10, "LINEAR"))

	for k := 1; k <= 10; k++ {
		if err := s.ExecuteFrame(); err != nil {
			t.Fatalf("frame %d: %v", k, err)
		}
		v, ok := s.TweenValue("x")
		if !ok {
			t.Fatalf("frame %d: no tween value for x", k)
		}
		want := int64(200 - 15*k)
		if v.Raw != want {
			t.Errorf("frame %d: value = %d, want %d", k, v.Raw, want)
		}
	}
	v, _ := s.TweenValue("x")
	if v.Raw != 50 {
		t.Errorf("final value = %d, want exactly 50", v.Raw)
	}
}

// TestMixerPriority: groups {music=priority 0 owning PULSE2, sfx=priority 5
// owning PULSE1}; PULSE1's gate must match sfx's priority, and a channel no
// group claims (NOISE) must always allow play.
func TestMixerPriority(t *testing.T) {
	g := model.NewGame("demo")
	g.MixerGroups = append(g.MixerGroups,
		&model.MixerGroup{Name: "music", Priority: 0, Channels: []string{"PULSE2"}},
		&model.MixerGroup{Name: "sfx", Priority: 5, Channels: []string{"PULSE1"}},
	)
	s := New(g)
	pulse1 := mixerChannelIndexForTest("PULSE1")

	if s.MixerCanPlay(pulse1, 4) {
		t.Error("mixer_can_play(PULSE1, priority=4) should be false (4 < 5)")
	}
	if !s.MixerCanPlay(pulse1, 5) {
		t.Error("mixer_can_play(PULSE1, priority=5) should be true (5 >= 5)")
	}
	if !s.MixerCanPlay(pulse1, 9) {
		t.Error("mixer_can_play(PULSE1, priority=9) should be true (9 >= 5)")
	}
	if !s.MixerCanPlay(mixerChannelIndexForTest("NOISE"), 0) {
		t.Error("mixer_can_play on an unowned channel should always be true")
	}
}

func mixerChannelIndexForTest(name string) int {
	for i, n := range mixerChannelNames {
		if n == name {
			return i
		}
	}
	return -1
}

// TestStateMachineLockUntilCompleteGatesTransition: an "attack" state is
// bound to sprite "hero" playing anim "swing" and is lockUntilComplete;
// its one transition to "idle" is unconditionally true. update must not
// fire that transition while hero's anim is still "swing", and must fire
// it once the anim is stopped (simulating ANIM_NONE).
func TestStateMachineLockUntilCompleteGatesTransition(t *testing.T) {
	g := model.NewGame("demo")
	g.StateMachines = append(g.StateMachines, &model.StateMachine{
		Name:    "player",
		Initial: "attack",
		States: []*model.State{
			{Name: "attack", BoundSprite: "hero", BoundAnim: "swing", LockUntilComplete: true},
			{Name: "idle"},
		},
		Transitions: []model.Transition{
			{From: "attack", To: "idle", Cond: ir.Lit(ir.U8, 1)},
		},
	})

	s := New(g)
	s.ExecuteStatement(ir.SMStart("player", "attack"))
	if got := s.SpriteAnim("hero"); got != "swing" {
		t.Fatalf("entering attack should auto-play swing, got %q", got)
	}

	s.ExecuteStatement(ir.SMUpdate("player"))
	if got := s.StateMachineState("player"); got != "attack" {
		t.Fatalf("transition should be locked while anim is playing, state = %q", got)
	}

	s.ExecuteStatement(ir.AnimStop("hero"))
	s.ExecuteStatement(ir.SMUpdate("player"))
	if got := s.StateMachineState("player"); got != "idle" {
		t.Fatalf("transition should fire once anim returns to none, state = %q", got)
	}
}

// TestTransitionSequenceActivation confirms the simulator-visible effect of a
// composed transition (codegen/transition_test.go covers exact byte encoding).
func TestTransitionSequenceActivation(t *testing.T) {
	g := model.NewGame("demo")
	s := New(g)
	s.ExecuteStatement(ir.TransComposed(
		ir.TransFadeOut(ir.Lit(ir.U8, 20)),
		ir.TransWait(ir.Lit(ir.U8, 10)),
		ir.TransFadeIn(ir.Lit(ir.U8, 20)),
	))
	active := s.Eval(&ir.DomainExpr{Category: "transition", Op: "active"})
	if active.Raw == 0 {
		t.Error("transition should be active after a composed sequence starts")
	}
	s.ExecuteStatement(ir.TransCancel())
	active = s.Eval(&ir.DomainExpr{Category: "transition", Op: "active"})
	if active.Raw != 0 {
		t.Error("transition should be inactive after cancel")
	}
}
