package codegen

import (
	"fmt"
	"strings"
)

func upper(s string) string { return strings.ToUpper(s) }

// SceneConst returns SCENE_<UPPER(name)>.
func SceneConst(name string) string { return "SCENE_" + upper(name) }

// SceneNoneConst is the fixed sentinel, always emitted regardless of whether
// any scene is named "none".
const SceneNoneConst = "SCENE_NONE"
const SceneNoneValue = 255

// StateConst returns STATE_<UPPER(machine)>_<UPPER(state)>.
func StateConst(machine, state string) string {
	return "STATE_" + upper(machine) + "_" + upper(state)
}

// AnimConst returns ANIM_<UPPER(sprite)>_<UPPER(anim)>.
func AnimConst(sprite, anim string) string {
	return "ANIM_" + upper(sprite) + "_" + upper(anim)
}

const AnimNoneConst = "ANIM_NONE"

// Sprite animation state variable names.
func spriteAnimVar(sprite string) string  { return "_" + sprite + "_anim" }
func spriteFrameVar(sprite string) string { return "_" + sprite + "_frame" }
func spriteTimerVar(sprite string) string { return "_" + sprite + "_timer" }
func spriteSpeedVar(sprite string) string { return "_" + sprite + "_speed" }
func spriteFlagsVar(sprite string) string { return "_" + sprite + "_flags" }
func spriteQueueVar(sprite string) string { return "_" + sprite + "_queue" }
func spriteQueueLenVar(sprite string) string { return "_" + sprite + "_queue_len" }

// Sprite owned-position variable names.
func spriteXVar(sprite string) string { return "_" + sprite + "_x" }
func spriteYVar(sprite string) string { return "_" + sprite + "_y" }

func spriteAnimsTable(sprite string) string { return sprite + "_anims" }
func spriteAnimFramesTable(sprite, anim string) string {
	return sprite + "_" + anim + "_frames"
}

// Pool array names.
func poolActiveArr(pool string) string        { return pool + "_active" }
func poolXArr(pool string) string              { return pool + "_x" }
func poolYArr(pool string) string              { return pool + "_y" }
func poolVelXArr(pool string) string           { return pool + "_vel_x" }
func poolVelYArr(pool string) string           { return pool + "_vel_y" }
func poolFieldArr(pool, field string) string   { return pool + "_" + field }
func poolAnimArr(pool string) string           { return pool + "_anim" }
func poolFrameArr(pool string) string          { return pool + "_frame" }
func poolTimerArr(pool string) string          { return pool + "_timer" }
func poolAnimCompleteArr(pool string) string   { return pool + "_anim_complete" }
func poolCountVar(pool string) string          { return pool + "_pool_count" }
func poolOAMStartConst(pool string) string     { return upper(pool) + "_OAM_START" }
func poolIndexVar(pool string) string          { return "_" + pool + "_i" }
func poolSpriteName(pool string) string        { return pool + "_sprite" }

// Mixer state variable names.
func mixerVolumeVar(group string) string   { return "_mixer_" + group + "_volume" }
func mixerMutedVar(group string) string    { return "_mixer_" + group + "_muted" }
func mixerPriorityVar(group string) string { return "_mixer_" + group + "_priority" }
func mixerFadeStartVar(group string) string    { return "_mixer_" + group + "_fade_start" }
func mixerFadeTargetVar(group string) string   { return "_mixer_" + group + "_fade_target" }
func mixerFadeDurationVar(group string) string { return "_mixer_" + group + "_fade_duration" }
func mixerFadeTimerVar(group string) string    { return "_mixer_" + group + "_fade_timer" }

// mixerChannelIndex maps a hardware channel name to its fixed index in
// _mixer_channel_group[4] (PULSE1=0, PULSE2=1, WAVE=2, NOISE=3); -1 for an
// unrecognized name.
func mixerChannelIndex(channel string) int {
	switch channel {
	case "PULSE1":
		return 0
	case "PULSE2":
		return 1
	case "WAVE":
		return 2
	case "NOISE":
		return 3
	default:
		return -1
	}
}

// Transition state variable names (fixed, single-instance).
const (
	transTypeVar       = "_transition_type"
	transTimerVar      = "_transition_timer"
	transDurationVar   = "_transition_duration"
	transFlashColorVar = "_transition_flash_color"
	transCenterXVar    = "_transition_center_x"
	transCenterYVar    = "_transition_center_y"
	transCallbackVar   = "_transition_callback"
	transShakeIntensityVar = "_transition_shake_intensity"
	transShakeDecayVar     = "_transition_shake_decay"

	transTargetSceneVar = "_trans_target_scene"
	transSeqIDVar        = "_trans_seq_id"
	transSeqStepVar      = "_trans_seq_step"
	transSeqTimerVar     = "_trans_seq_timer"
	transSeqActiveVar    = "_trans_seq_active"
)

// Tween arrays (fixed size MAX_TWEENS).
const MaxTweens = 16

const (
	tweenActiveArr    = "_tween_active"
	tweenTargetVarArr = "_tween_target_var"
	tweenTargetTypeArr = "_tween_target_type"
	tweenFromArr      = "_tween_from"
	tweenToArr        = "_tween_to"
	tweenTimerArr     = "_tween_timer"
	tweenDurationArr  = "_tween_duration"
	tweenEasingArr    = "_tween_easing"
)

// loopCounterVar returns a fresh, monotonic-nonce loop counter name.
func loopCounterVar(n int) string { return fmt.Sprintf("_loop%d", n) }

// pathVar returns a fresh, monotonic-nonce path name.
func pathVar(n int) string { return fmt.Sprintf("_path_%d", n) }
