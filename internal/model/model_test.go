package model

import (
	"testing"

	"pixelforge/internal/diag"
	"pixelforge/internal/ir"
)

func newValidGame() *Game {
	g := NewGame("demo")
	g.Scenes = append(g.Scenes, &Scene{Name: "main"})
	g.StartScene = "main"
	return g
}

func TestValidateEmptyGame(t *testing.T) {
	g := NewGame("demo")
	diags := g.Validate()
	if !diag.HasErrors(diags) {
		t.Fatal("a game with no scenes should fail validation")
	}
}

func TestValidateMinimalGamePasses(t *testing.T) {
	g := newValidGame()
	diags := g.Validate()
	if diag.HasErrors(diags) {
		t.Fatalf("minimal valid game failed validation: %+v", diags)
	}
}

func TestValidateDuplicateSpriteNames(t *testing.T) {
	g := newValidGame()
	g.Sprites = append(g.Sprites,
		&Sprite{Name: "hero", OAMSlot: -1},
		&Sprite{Name: "hero", OAMSlot: -1},
	)
	diags := g.Validate()
	if !diag.HasErrors(diags) {
		t.Fatal("duplicate sprite names should be rejected")
	}
	found := false
	for _, d := range diags {
		if d.Category == diag.CategoryConfigConflict && d.Location == "hero" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a ConfigConflict diagnostic located at %q, got %+v", "hero", diags)
	}
}

func TestValidateOAMSlotCollision(t *testing.T) {
	g := newValidGame()
	g.Sprites = append(g.Sprites,
		&Sprite{Name: "a", OAMSlot: 3},
		&Sprite{Name: "b", OAMSlot: 3},
	)
	diags := g.Validate()
	if !diag.HasErrors(diags) {
		t.Fatal("two sprites claiming the same fixed OAM slot should be rejected")
	}
}

func TestValidateOAMAutoAllocateNoCollision(t *testing.T) {
	g := newValidGame()
	g.Sprites = append(g.Sprites,
		&Sprite{Name: "a", OAMSlot: -1},
		&Sprite{Name: "b", OAMSlot: -1},
	)
	diags := g.Validate()
	if diag.HasErrors(diags) {
		t.Fatalf("auto-allocated (-1) OAM slots should never collide, got %+v", diags)
	}
}

func TestValidatePoolCapacityMustBePositive(t *testing.T) {
	g := newValidGame()
	g.Pools = append(g.Pools, &Pool{Name: "bullets", Capacity: 0})
	diags := g.Validate()
	if !diag.HasErrors(diags) {
		t.Fatal("zero-capacity pool should be rejected")
	}
}

func TestValidatePoolDuplicateFieldName(t *testing.T) {
	g := newValidGame()
	g.Pools = append(g.Pools, &Pool{
		Name:     "bullets",
		Capacity: 8,
		Fields: []PoolField{
			{Name: "dx", Kind: ir.I8},
			{Name: "dx", Kind: ir.I8},
		},
	})
	diags := g.Validate()
	if !diag.HasErrors(diags) {
		t.Fatal("duplicate pool field names should be rejected")
	}
}

func TestValidateStateMachineUnknownTransitionEndpoints(t *testing.T) {
	g := newValidGame()
	g.StateMachines = append(g.StateMachines, &StateMachine{
		Name:    "enemy_ai",
		States:  []*State{{Name: "idle"}, {Name: "chase"}},
		Initial: "idle",
		Transitions: []Transition{
			{From: "idle", To: "attack"},
		},
	})
	diags := g.Validate()
	if !diag.HasErrors(diags) {
		t.Fatal("transition to an undeclared state should be rejected")
	}
}

func TestValidateStateMachineUnknownInitial(t *testing.T) {
	g := newValidGame()
	g.StateMachines = append(g.StateMachines, &StateMachine{
		Name:    "enemy_ai",
		States:  []*State{{Name: "idle"}},
		Initial: "nonexistent",
	})
	diags := g.Validate()
	if !diag.HasErrors(diags) {
		t.Fatal("an initial state not present in States should be rejected")
	}
}

func TestValidateStartSceneMustExist(t *testing.T) {
	g := NewGame("demo")
	g.Scenes = append(g.Scenes, &Scene{Name: "main"})
	g.StartScene = "missing"
	diags := g.Validate()
	if !diag.HasErrors(diags) {
		t.Fatal("a start scene that doesn't match any declared scene should be rejected")
	}
}

func TestValidatePaletteSlotCollisionAcrossPalettes(t *testing.T) {
	g := newValidGame()
	g.Palettes = append(g.Palettes,
		&Palette{Name: "p1", Kind: "bkg", Slots: 4},
		&Palette{Name: "p2", Kind: "bkg", Slots: 4},
	)
	diags := g.Validate()
	if !diag.HasErrors(diags) {
		t.Fatal("two background palettes both claiming slots 0-3 should collide")
	}
}

func TestValidatePaletteDifferentKindsDoNotCollide(t *testing.T) {
	g := newValidGame()
	g.Palettes = append(g.Palettes,
		&Palette{Name: "bg", Kind: "bkg", Slots: 4},
		&Palette{Name: "obj", Kind: "obj", Slots: 4},
	)
	diags := g.Validate()
	if diag.HasErrors(diags) {
		t.Fatalf("bkg and obj palettes occupy independent slot spaces, got %+v", diags)
	}
}

func TestFindLookups(t *testing.T) {
	g := newValidGame()
	g.Sprites = append(g.Sprites, &Sprite{Name: "hero"})
	g.Pools = append(g.Pools, &Pool{Name: "bullets", Capacity: 4})
	g.Variables = append(g.Variables, &Variable{Name: "score", Kind: ir.U16})
	g.StateMachines = append(g.StateMachines, &StateMachine{Name: "ai"})

	if g.FindSprite("hero") == nil {
		t.Error("FindSprite(hero) = nil")
	}
	if g.FindSprite("ghost") != nil {
		t.Error("FindSprite(ghost) should be nil")
	}
	if g.FindPool("bullets") == nil {
		t.Error("FindPool(bullets) = nil")
	}
	if g.FindScene("main") == nil {
		t.Error("FindScene(main) = nil")
	}
	if g.FindVariable("score") == nil {
		t.Error("FindVariable(score) = nil")
	}
	if g.FindStateMachine("ai") == nil {
		t.Error("FindStateMachine(ai) = nil")
	}
}
