package codegen

import "testing"

func TestSceneConstNaming(t *testing.T) {
	if got := SceneConst("main_menu"); got != "SCENE_MAIN_MENU" {
		t.Errorf("SceneConst(main_menu) = %q", got)
	}
	if SceneNoneConst != "SCENE_NONE" {
		t.Errorf("SceneNoneConst = %q", SceneNoneConst)
	}
	if SceneNoneValue != 255 {
		t.Errorf("SceneNoneValue = %d, want 255", SceneNoneValue)
	}
}

func TestStateConstNaming(t *testing.T) {
	if got := StateConst("enemy_ai", "chase"); got != "STATE_ENEMY_AI_CHASE" {
		t.Errorf("StateConst(enemy_ai, chase) = %q", got)
	}
}

func TestAnimConstNaming(t *testing.T) {
	if got := AnimConst("hero", "walk"); got != "ANIM_HERO_WALK" {
		t.Errorf("AnimConst(hero, walk) = %q", got)
	}
	if AnimNoneConst != "ANIM_NONE" {
		t.Errorf("AnimNoneConst = %q", AnimNoneConst)
	}
}

func TestSpriteAnimStateVarNaming(t *testing.T) {
	cases := []struct {
		fn   func(string) string
		want string
	}{
		{spriteAnimVar, "_hero_anim"},
		{spriteFrameVar, "_hero_frame"},
		{spriteTimerVar, "_hero_timer"},
		{spriteSpeedVar, "_hero_speed"},
		{spriteFlagsVar, "_hero_flags"},
		{spriteQueueVar, "_hero_queue"},
		{spriteQueueLenVar, "_hero_queue_len"},
	}
	for _, c := range cases {
		if got := c.fn("hero"); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}

func TestPoolArrayNaming(t *testing.T) {
	if got := poolActiveArr("bullets"); got != "bullets_active" {
		t.Errorf("poolActiveArr = %q", got)
	}
	if got := poolFieldArr("bullets", "dx"); got != "bullets_dx" {
		t.Errorf("poolFieldArr = %q", got)
	}
	if got := poolOAMStartConst("bullets"); got != "BULLETS_OAM_START" {
		t.Errorf("poolOAMStartConst = %q", got)
	}
	if got := poolIndexVar("bullets"); got != "_bullets_i" {
		t.Errorf("poolIndexVar = %q", got)
	}
}

func TestMixerVarNaming(t *testing.T) {
	if got := mixerVolumeVar("sfx"); got != "_mixer_sfx_volume" {
		t.Errorf("mixerVolumeVar = %q", got)
	}
	if got := mixerPriorityVar("sfx"); got != "_mixer_sfx_priority" {
		t.Errorf("mixerPriorityVar = %q", got)
	}
}

func TestLoopAndPathNoncesAreStable(t *testing.T) {
	if got := loopCounterVar(3); got != "_loop3" {
		t.Errorf("loopCounterVar(3) = %q", got)
	}
	if got := pathVar(2); got != "_path_2" {
		t.Errorf("pathVar(2) = %q", got)
	}
	// Stability: calling twice with the same nonce always yields the same name.
	if a, b := loopCounterVar(7), loopCounterVar(7); a != b {
		t.Errorf("loopCounterVar(7) not stable: %q vs %q", a, b)
	}
}

func TestMaxTweensFixed(t *testing.T) {
	if MaxTweens != 16 {
		t.Errorf("MaxTweens = %d, want 16", MaxTweens)
	}
}
