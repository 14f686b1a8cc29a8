package codegen

import (
	"sort"

	"pixelforge/internal/diag"
	"pixelforge/internal/model"
)

func (g *Generator) emitAnimationData() {
	e := g.em
	for _, sp := range g.game.Sprites {
		if len(sp.Anims) == 0 {
			continue
		}
		e.Comment("Animation state for sprite %s", sp.Name)
		e.Line("UINT8 %s = %s;", spriteAnimVar(sp.Name), AnimNoneConst)
		e.Line("UINT8 %s = 0;", spriteFrameVar(sp.Name))
		e.Line("UINT8 %s = 0;", spriteTimerVar(sp.Name))
		e.Line("UINT8 %s = 100;", spriteSpeedVar(sp.Name))
		e.Line("UINT8 %s = 0;", spriteFlagsVar(sp.Name))
		e.Line("UINT8 %s = %s;", spriteQueueVar(sp.Name), AnimNoneConst)
		e.Line("UINT8 %s = 0;", spriteQueueLenVar(sp.Name))
		for _, anim := range sp.Anims {
			frames := anim.Frames
			placeholder := false
			if len(frames) == 0 {
				g.warnf(diag.CategoryEmptyAnimation, sp.Name+"."+anim.Name,
					"animation %q has zero frames; emitting placeholder 1-frame table", anim.Name)
				frames = []int{0}
				placeholder = true
			}
			if placeholder {
				e.Comment("empty animation, placeholder frame emitted")
			}
			items := make([]string, len(frames))
			for i, f := range frames {
				items[i] = itoa(f)
			}
			e.Line("const UINT8 %s[] = {%s};", spriteAnimFramesTable(sp.Name, anim.Name), joinComma(items))
		}
		e.Blank()
	}
}

// emitAnimationUpdate implements the animation update algorithm from spec
// §4.3 for every sprite that declares at least one animation.
func (g *Generator) emitAnimationUpdate() {
	e := g.em
	hasAny := false
	for _, sp := range g.game.Sprites {
		if len(sp.Anims) == 0 {
			continue
		}
		hasAny = true
		g.emitOneSpriteAnimationUpdate(sp)
		e.Blank()
	}
	if !hasAny {
		return
	}
	e.Block("void update_animations(void)", func() {
		for _, sp := range g.game.Sprites {
			if len(sp.Anims) == 0 {
				continue
			}
			e.Line("update_anim_%s();", sp.Name)
		}
	})
}

// emitOneSpriteAnimationUpdate lowers the 6-step per-sprite update: early-out
// on NONE/PAUSED, tick-scaled timer decrement, frame advance per REVERSED,
// end-of-sequence handling (loop wrap / terminal clamp + COMPLETE +
// on-complete dispatch + queue replay) switched on the current anim,
// per-frame event dispatch, tile write, and timer refill. The switch on the
// current anim id is what the spec calls "dispatches on-complete callback by
// switch on anim" — there is no separately named callback function.
func (g *Generator) emitOneSpriteAnimationUpdate(sp *model.Sprite) {
	e := g.em
	sprite := sp.Name
	animVar, frameVar := spriteAnimVar(sprite), spriteFrameVar(sprite)
	timerVar, speedVar, flagsVar := spriteTimerVar(sprite), spriteSpeedVar(sprite), spriteFlagsVar(sprite)
	queueVar, queueLenVar := spriteQueueVar(sprite), spriteQueueLenVar(sprite)

	e.Block("void update_anim_"+sprite+"(void)", func() {
		e.Block("if ("+animVar+" == "+AnimNoneConst+" || ("+flagsVar+" & PAUSED))", func() {
			e.Line("return;")
		})
		e.Line("UINT8 ticks = %s >= 100 ? %s / 100 : 1;", speedVar, speedVar)
		e.Block("if ("+timerVar+" > ticks)", func() {
			e.Line("%s -= ticks;", timerVar)
			e.Line("return;")
		})
		e.Block("if ("+flagsVar+" & REVERSED)", func() {
			e.Line("%s--;", frameVar)
		})
		e.Block("else", func() {
			e.Line("%s++;", frameVar)
		})
		e.Block("switch ("+animVar+")", func() {
			for _, anim := range sp.Anims {
				frameCount := len(anim.Frames)
				if frameCount == 0 {
					frameCount = 1
				}
				e.Line("case %s:", AnimConst(sprite, anim.Name))
				e.Push()
				e.Block("if ("+frameVar+" >= "+itoa(frameCount)+")", func() {
					e.Block("if ("+flagsVar+" & LOOPING)", func() {
						e.Line("%s = (%s & REVERSED) ? %d : 0;", frameVar, flagsVar, frameCount-1)
					})
					e.Block("else", func() {
						e.Line("%s = (%s & REVERSED) ? 0 : %d;", frameVar, flagsVar, frameCount-1)
						e.Line("%s |= COMPLETE;", flagsVar)
						g.lowerStmts(anim.OnComplete)
						e.Block("if ("+queueLenVar+")", func() {
							e.Line("%s = %s;", animVar, queueVar)
							e.Line("%s = 0;", frameVar)
							e.Line("%s &= ~COMPLETE;", flagsVar)
							e.Line("%s = 0;", queueLenVar)
						})
					})
				})
				g.emitAnimationFrameEvents(anim, frameVar)
				e.Line("set_sprite_tile(%d, %s[%s]);", sp.OAMSlot, spriteAnimFramesTable(sprite, anim.Name), frameVar)
				e.Line("%s = (%s > 0 && %s < 100) ? (%dU * 100) / %s : %d;",
					timerVar, speedVar, speedVar, animDelay(anim), speedVar, animDelay(anim))
				e.Line("break;")
				e.Pop()
			}
		})
	})
}

// emitAnimationFrameEvents dispatches the IR recorded against specific frame
// indices of anim, in ascending frame order.
func (g *Generator) emitAnimationFrameEvents(anim *model.Animation, frameVar string) {
	if len(anim.FrameEvents) == 0 {
		return
	}
	e := g.em
	frames := make([]int, 0, len(anim.FrameEvents))
	for f := range anim.FrameEvents {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	e.Block("switch ("+frameVar+")", func() {
		for _, f := range frames {
			e.Line("case %d:", f)
			e.Push()
			g.lowerStmts(anim.FrameEvents[f])
			e.Line("break;")
			e.Pop()
		}
	})
}

// animDelay returns an animation's declared frame delay, floored to the
// spec-mandated minimum of 1 tick.
func animDelay(anim *model.Animation) int {
	if anim.Speed < 1 {
		return 1
	}
	return anim.Speed
}

// emitAnimPlay lowers an animation-play: set the anim id, reset the frame to
// 0 and seed the LOOPING flag bit from the animation's declared Loop flag
// (every other flag bit starts clear). The timer is left unchanged.
func (g *Generator) emitAnimPlay(sprite, animName string) {
	e := g.em
	flags := "0"
	if a := g.findAnimation(sprite, animName); a != nil && a.Loop {
		flags = "LOOPING"
	}
	e.Line("%s = %s; %s = 0; %s = %s;", spriteAnimVar(sprite), AnimConst(sprite, animName), spriteFrameVar(sprite), spriteFlagsVar(sprite), flags)
}

func (g *Generator) findAnimation(sprite, animName string) *model.Animation {
	sp := g.game.FindSprite(sprite)
	if sp == nil {
		return nil
	}
	for _, a := range sp.Anims {
		if a.Name == animName {
			return a
		}
	}
	return nil
}
