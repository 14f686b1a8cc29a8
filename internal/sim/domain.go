package sim

import (
	"math"

	"pixelforge/internal/ir"
	"pixelforge/internal/model"
)

type tweenSlot struct {
	active   bool
	target   string
	isU8     bool
	from, to int64
	timer    int64
	duration int64
	easing   string
}

type mixerGroupState struct {
	volume, priority int64
	muted            bool
	fadeStart, fadeTarget, fadeDuration, fadeTimer int64
}

func (s *Simulator) mixerState(name string) *mixerGroupState {
	if s.mixerGroups == nil {
		s.mixerGroups = map[string]*mixerGroupState{}
	}
	ms, ok := s.mixerGroups[name]
	if !ok {
		ms = &mixerGroupState{volume: 100}
		for _, g := range s.game.MixerGroups {
			if g.Name == name {
				ms.priority = int64(g.Priority)
			}
		}
		s.mixerGroups[name] = ms
	}
	return ms
}

// execDomainStmt runs the domain statement categories that have
// simulator-visible effects: pool, mixer, tween, camera, transition,
// statemachine, animation. The rest (display, dialog drawing, menu drawing,
// save I/O, palette, link, physics, path, cutscene) are accepted as no-ops
// off-device, per spec §4.4.
func (s *Simulator) execDomainStmt(st *ir.DomainStmt) {
	switch st.Category {
	case "pool":
		s.execPoolStmt(st)
	case "mixer":
		s.execMixerStmt(st)
	case "tween":
		s.execTweenStmt(st)
	case "camera":
		s.execCameraStmt(st)
	case "transition":
		s.execTransitionStmt(st)
	case "statemachine":
		s.execStateMachineStmt(st)
	case "animation":
		s.execAnimationStmt(st)
	default:
		// sound, display, dialog, menu, save, palette, path, cutscene,
		// link, input, physics: no simulator-visible effect beyond what
		// individual tests model explicitly.
	}
}

// execStateMachineStmt tracks a machine's current state and, on "update",
// runs the same onTick transition scan as the emitted C: skip entirely if
// the current state is lockUntilComplete and its bound sprite's anim hasn't
// returned to none, otherwise take the first transition whose guard holds.
func (s *Simulator) execStateMachineStmt(st *ir.DomainStmt) {
	switch st.Op {
	case "start", "goto":
		state, _ := st.Scalars["state"].(string)
		s.machines[st.Target] = state
		s.enterState(st.Target, state)
	case "update":
		s.stepStateMachine(st.Target)
	}
}

func (s *Simulator) stepStateMachine(name string) {
	m := s.game.FindStateMachine(name)
	if m == nil {
		return
	}
	cur := s.machines[name]
	st := findState(m, cur)
	if st == nil {
		return
	}
	if st.LockUntilComplete && st.BoundSprite != "" && s.spriteAnim[st.BoundSprite] != "" {
		return
	}
	for _, t := range m.Transitions {
		if t.From != cur {
			continue
		}
		if s.evalBool(t.Cond) {
			s.machines[name] = t.To
			s.enterState(name, t.To)
			return
		}
	}
}

// enterState auto-plays a newly entered state's bound animation, if any.
func (s *Simulator) enterState(machine, state string) {
	m := s.game.FindStateMachine(machine)
	if m == nil {
		return
	}
	st := findState(m, state)
	if st != nil && st.BoundSprite != "" && st.BoundAnim != "" {
		s.spriteAnim[st.BoundSprite] = st.BoundAnim
	}
}

func findState(m *model.StateMachine, name string) *model.State {
	for _, st := range m.States {
		if st.Name == name {
			return st
		}
	}
	return nil
}

// execAnimationStmt tracks the current anim name playing on a sprite, the
// minimum state needed to make lockUntilComplete gating testable off-device.
func (s *Simulator) execAnimationStmt(st *ir.DomainStmt) {
	switch st.Op {
	case "play":
		anim, _ := st.Scalars["anim"].(string)
		s.spriteAnim[st.Target] = anim
	case "stop":
		s.spriteAnim[st.Target] = ""
	}
}

func (s *Simulator) execPoolStmt(st *ir.DomainStmt) {
	entries := s.pools[st.Target]
	switch st.Op {
	case "spawn", "try_spawn":
		for _, e := range entries {
			if !e.active {
				e.active = true
				e.x, e.y = 0, 0
				return
			}
		}
	case "spawn_at":
		x := s.eval(st.Args[0]).Raw
		y := s.eval(st.Args[1]).Raw
		for _, e := range entries {
			if !e.active {
				e.active = true
				e.x, e.y = x, y
				return
			}
		}
	case "despawn":
		idx := s.eval(st.Args[0]).Raw
		if idx >= 0 && int(idx) < len(entries) {
			entries[idx].active = false
		}
	case "despawn_all":
		for _, e := range entries {
			e.active = false
		}
	case "for_each":
		for _, e := range entries {
			if e.active {
				s.executeStmts(st.Nested)
			}
		}
	case "despawn_where":
		// Checked back-to-front so in-loop despawn is safe, matching the
		// emitted C's iteration order.
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			if !e.active {
				continue
			}
			if s.evalBool(st.Args[0]) {
				e.active = false
			}
		}
	case "update":
		// No effect in the simulator: the pool's OnFrame statements and
		// DespawnConditions are not run here.
	}
}

func (s *Simulator) execMixerStmt(st *ir.DomainStmt) {
	ms := s.mixerState(st.Target)
	switch st.Op {
	case "set_volume":
		v := s.eval(st.Args[0]).Raw
		if v > 100 {
			v = 100
		}
		ms.volume = v
	case "fade":
		ms.fadeStart = ms.volume
		ms.fadeTarget = s.eval(st.Args[0]).Raw
		ms.fadeDuration = s.eval(st.Args[1]).Raw
		ms.fadeTimer = 0
	case "mute":
		ms.muted = true
	case "toggle_mute":
		ms.muted = !ms.muted
	}
}

var mixerChannelNames = []string{"PULSE1", "PULSE2", "WAVE", "NOISE"}

// MixerCanPlay implements the priority-check algorithm from spec §4.3/§8,
// mirroring the emitted _mixer_channel_group[4] lookup: a channel no
// declared group claims always allows play; otherwise the sound's priority
// must be >= the owning group's priority.
func (s *Simulator) MixerCanPlay(channel int, soundPriority int64) bool {
	if channel < 0 || channel >= len(mixerChannelNames) {
		return true
	}
	name := mixerChannelNames[channel]
	for _, grp := range s.game.MixerGroups {
		for _, ch := range grp.Channels {
			if ch == name {
				return soundPriority >= s.mixerState(grp.Name).priority
			}
		}
	}
	return true
}

func (s *Simulator) execTweenStmt(st *ir.DomainStmt) {
	switch st.Op {
	case "start":
		from := s.eval(st.Args[0]).Raw
		to := s.eval(st.Args[1]).Raw
		duration, _ := st.Scalars["duration"].(int)
		easing, _ := st.Scalars["easing"].(string)
		isU8 := s.vars[st.Target].Kind == ir.U8
		s.tweens = append(s.tweens, &tweenSlot{
			active: true, target: st.Target, isU8: isU8,
			from: from, to: to, duration: int64(duration), easing: easing,
		})
	case "cancel":
		for _, t := range s.tweens {
			if t.target == st.Target {
				t.active = false
			}
		}
	}
}

func (s *Simulator) execCameraStmt(st *ir.DomainStmt) {
	switch st.Op {
	case "set_position":
		s.cameraX = s.eval(st.Args[0]).Raw
		s.cameraY = s.eval(st.Args[1]).Raw
	}
}

func (s *Simulator) execTransitionStmt(st *ir.DomainStmt) {
	switch st.Op {
	case "fade_out", "fade_in", "flash", "wipe", "iris", "wait":
		s.transitionActive = true
	case "composed", "parallel":
		s.transitionActive = true
	case "cancel":
		s.transitionActive = false
	}
}

// updateTweens advances every active tween slot by one frame, matching the
// integer interpolation algorithm in spec §4.3: progress = (timer*255)/
// duration rounded to nearest, eased via the named easing table, value =
// from + roundDiv((to-from)*eased, 255), clamped to U8 when the target is U8.
func (s *Simulator) updateTweens() {
	for _, t := range s.tweens {
		if !t.active {
			continue
		}
		t.timer++
		progress := (t.timer*255 + t.duration/2) / t.duration
		eased := evalEasing(t.easing, progress)
		delta := t.to - t.from
		value := t.from + roundDiv(delta*eased, 255)
		if t.isU8 {
			if value < 0 {
				value = 0
			}
			if value > 255 {
				value = 255
			}
		}
		cur := s.vars[t.target]
		s.vars[t.target] = ir.Value{Raw: ir.Wrap(value, cur.Kind), Kind: cur.Kind}
		if t.timer >= t.duration {
			t.active = false
		}
	}
}

// roundDiv divides num by den, rounding to the nearest integer (ties away
// from zero) instead of truncating, matching codegen's round_div16 helper so
// tween interpolation lands on exact endpoints in both runtimes.
func roundDiv(num, den int64) int64 {
	neg := (num < 0) != (den < 0)
	an, ad := num, den
	if an < 0 {
		an = -an
	}
	if ad < 0 {
		ad = -ad
	}
	q := (an + ad/2) / ad
	if neg {
		return -q
	}
	return q
}

// evalEasing evaluates the named easing function at a 0-255 progress value,
// returning a 0-255 eased value. Mirrors codegen's baked _ease_* lookup
// tables curve-for-curve (duplicated rather than shared, since the two
// packages consume it in unrelated forms: a runtime float computation here
// versus a quantized byte table there) so the simulator and emitted C agree
// on every named easing, not just LINEAR.
func evalEasing(name string, progress int64) int64 {
	if progress < 0 {
		progress = 0
	}
	if progress > 255 {
		progress = 255
	}
	x := float64(progress) / 255.0
	var y float64
	switch name {
	case "EASE_IN_QUAD":
		y = x * x
	case "EASE_OUT_QUAD":
		y = 1 - (1-x)*(1-x)
	case "EASE_IN_OUT_QUAD":
		if x < 0.5 {
			y = 2 * x * x
		} else {
			y = 1 - math.Pow(-2*x+2, 2)/2
		}
	case "EASE_OUT_ELASTIC":
		y = easeOutElasticApprox(x)
		if y > 1.2 {
			y = 1.2
		}
		if y < 0 {
			y = 0
		}
	default: // "LINEAR" and any unrecognized name fall back to identity.
		y = x
	}
	v := int64(math.Round(y * 255))
	if v > 255 {
		v = 255
	}
	if v < 0 {
		v = 0
	}
	return v
}

func easeOutElasticApprox(x float64) float64 {
	if x == 0 || x == 1 {
		return x
	}
	const c4 = (2 * math.Pi) / 3
	return math.Pow(2, -10*x)*math.Sin((x*10-0.75)*c4) + 1
}
