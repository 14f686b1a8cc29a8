package codegen

import (
	"math"

	"pixelforge/internal/ir"
)

// Easing names recognized by TweenStart's Scalars["easing"].
const (
	EaseLinear          = "LINEAR"
	EaseInQuad          = "EASE_IN_QUAD"
	EaseOutQuad         = "EASE_OUT_QUAD"
	EaseInOutQuad       = "EASE_IN_OUT_QUAD"
	EaseOutElastic      = "EASE_OUT_ELASTIC"
)

// collectUsedEasings walks every scene, state-machine state and pool
// statement list in the game (animation callbacks are not walked) and
// records which easing names TweenStart actually references, so codegen
// bakes only those lookup tables (plus LINEAR, always included as
// fallback), per spec §4.3's "dead-easing-table elision" optimization.
func (g *Generator) collectUsedEasings() {
	walk := func(stmts []ir.Stmt) {
		walkStmts(stmts, func(s ir.Stmt) {
			ds, ok := s.(*ir.DomainStmt)
			if !ok || ds.Category != "tween" || ds.Op != "start" {
				return
			}
			if name, ok := ds.Scalars["easing"].(string); ok && name != "" {
				g.usedEasings[name] = true
			}
		})
	}
	for _, sc := range g.game.Scenes {
		walk(sc.Enter)
		walk(sc.Update)
		walk(sc.Exit)
	}
	for _, m := range g.game.StateMachines {
		for _, st := range m.States {
			walk(st.Enter)
			walk(st.Body)
			walk(st.Exit)
		}
	}
	for _, p := range g.game.Pools {
		walk(p.OnSpawn)
		walk(p.OnDespawn)
		walk(p.OnFrame)
	}
}

// walkStmts visits every statement in stmts and recurses into nested bodies
// (if/when/while/for/domain-nested), calling visit on each.
func walkStmts(stmts []ir.Stmt, visit func(ir.Stmt)) {
	for _, s := range stmts {
		visit(s)
		switch v := s.(type) {
		case *ir.If:
			walkStmts(v.Then, visit)
			walkStmts(v.Else, visit)
		case *ir.When:
			for _, b := range v.Branches {
				walkStmts(b.Body, visit)
			}
			walkStmts(v.Else, visit)
		case *ir.While:
			walkStmts(v.Body, visit)
		case *ir.For:
			walkStmts(v.Body, visit)
		case *ir.DomainStmt:
			walkStmts(v.Nested, visit)
		}
	}
}

// easeTable returns the 256-entry baked lookup table (0..255 -> 0..255) for
// a named easing function.
func easeTable(name string) [256]byte {
	var t [256]byte
	for i := 0; i < 256; i++ {
		x := float64(i) / 255.0
		var y float64
		switch name {
		case EaseInQuad:
			y = x * x
		case EaseOutQuad:
			y = 1 - (1-x)*(1-x)
		case EaseInOutQuad:
			if x < 0.5 {
				y = 2 * x * x
			} else {
				y = 1 - math.Pow(-2*x+2, 2)/2
			}
		case EaseOutElastic:
			// Exponentially damped sinusoid, clamped to [0.0, 1.2] before
			// quantizing; the byte range then caps every entry at 255, so
			// overshoot above 1.0 does not survive into the table.
			y = easeOutElasticApprox(x)
			if y > 1.2 {
				y = 1.2
			}
			if y < 0 {
				y = 0
			}
		default: // LINEAR and unrecognized names fall back to identity.
			y = x
		}
		v := int(math.Round(y * 255))
		if v > 255 {
			v = 255
		}
		if v < 0 {
			v = 0
		}
		t[i] = byte(v)
	}
	return t
}

// easeOutElasticApprox approximates an elastic-out curve with an
// exponentially damped sinusoid, 2^(-10x)*sin(...)+1, without
// requiring exact bit-for-bit ROM reproduction (spec §9 leaves this
// unconstrained beyond "any monotone-overshoot easing suffices").
func easeOutElasticApprox(x float64) float64 {
	if x == 0 || x == 1 {
		return x
	}
	const c4 = (2 * math.Pi) / 3
	return math.Pow(2, -10*x)*math.Sin((x*10-0.75)*c4) + 1
}

var easingOrder = []string{EaseLinear, EaseInQuad, EaseOutQuad, EaseInOutQuad, EaseOutElastic}

func (g *Generator) emitTweenData() {
	e := g.em
	e.Comment("Tween easing tables (only referenced easings, LINEAR always included)")
	for _, name := range easingOrder {
		if !g.usedEasings[name] {
			continue
		}
		table := easeTable(name)
		items := make([]string, 256)
		for i, b := range table {
			items[i] = itoa(int(b))
		}
		e.Line("const UINT8 _ease_%s[256] = {%s};", name, joinComma(items))
	}
	e.Blank()
	e.Comment("Tween runtime state, MAX_TWEENS fixed slots")
	e.Line("UINT8 %s[MAX_TWEENS];", tweenActiveArr)
	e.Line("UINT16 %s[MAX_TWEENS];", tweenTargetVarArr)
	e.Line("UINT8 %s[MAX_TWEENS];", tweenTargetTypeArr)
	e.Line("INT16 %s[MAX_TWEENS];", tweenFromArr)
	e.Line("INT16 %s[MAX_TWEENS];", tweenToArr)
	e.Line("UINT8 %s[MAX_TWEENS];", tweenTimerArr)
	e.Line("UINT8 %s[MAX_TWEENS];", tweenDurationArr)
	e.Line("UINT8 %s[MAX_TWEENS];", tweenEasingArr)
}

// emitTweenRuntime emits start_tween (first-free-slot scan), cancel_tween,
// and update_tweens implementing the interpolation algorithm from spec
// §4.3: progress = (timer*255)/duration rounded to nearest, eased =
// table[progress], value = from + round_div16((to-from)*eased, 255) in
// signed 16-bit, clamped to U8 when the target type is U8, slot deactivated
// on completion.
func (g *Generator) emitTweenRuntime() {
	e := g.em
	e.Block("UINT8 start_tween(UINT16 *target, UINT8 target_is_u8, INT16 from, INT16 to, UINT8 duration, UINT8 easing)", func() {
		e.Block("for (UINT8 i = 0; i < MAX_TWEENS; i++)", func() {
			e.Block("if (!"+tweenActiveArr+"[i])", func() {
				e.Line("%s[i] = 1;", tweenActiveArr)
				e.Line("%s[i] = (UINT16)(UINT8 *)target;", tweenTargetVarArr)
				e.Line("%s[i] = target_is_u8;", tweenTargetTypeArr)
				e.Line("%s[i] = from;", tweenFromArr)
				e.Line("%s[i] = to;", tweenToArr)
				e.Line("%s[i] = 0;", tweenTimerArr)
				e.Line("%s[i] = duration;", tweenDurationArr)
				e.Line("%s[i] = easing;", tweenEasingArr)
				e.Line("return i;")
			})
		})
		e.Line("return 255;")
	})
	e.Blank()
	e.Block("void cancel_tween(UINT8 slot)", func() {
		e.Block("if (slot < MAX_TWEENS)", func() {
			e.Line("%s[slot] = 0;", tweenActiveArr)
		})
	})
	e.Blank()
	e.Block("void update_tweens(void)", func() {
		e.Block("for (UINT8 i = 0; i < MAX_TWEENS; i++)", func() {
			e.Block("if (!"+tweenActiveArr+"[i])", func() {
				e.Line("continue;")
			})
			e.Line("%s[i]++;", tweenTimerArr)
			e.Line("UINT8 progress = (UINT8)((((UINT16)%s[i] * 255) + (%s[i] / 2)) / %s[i]);", tweenTimerArr, tweenDurationArr, tweenDurationArr)
			e.Line("UINT8 eased = ease_lookup(%s[i], progress);", tweenEasingArr)
			e.Line("INT16 value = %s[i] + round_div16((INT16)(%s[i] - %s[i]) * eased, 255);", tweenFromArr, tweenToArr, tweenFromArr)
			e.Block("if ("+tweenTargetTypeArr+"[i])", func() {
				e.Block("if (value < 0)", func() { e.Line("value = 0;") })
				e.Block("if (value > 255)", func() { e.Line("value = 255;") })
			})
			e.Line("*((UINT8 *)%s[i]) = (UINT8)value;", tweenTargetVarArr)
			e.Block("if ("+tweenTimerArr+"[i] >= "+tweenDurationArr+"[i])", func() {
				e.Line("%s[i] = 0;", tweenActiveArr)
			})
		})
	})
	e.Blank()
	e.Comment("round-half-away-from-zero division, used so tween interpolation lands on exact endpoints")
	e.Block("INT16 round_div16(INT16 num, INT16 den)", func() {
		e.Line("UINT8 neg = (num < 0) != (den < 0);")
		e.Line("INT16 an = num < 0 ? -num : num;")
		e.Line("INT16 ad = den < 0 ? -den : den;")
		e.Line("INT16 q = (an + ad / 2) / ad;")
		e.Line("return neg ? -q : q;")
	})
	e.Blank()
	e.Comment("dispatches to the one baked table matching each referenced easing id")
	e.Block("UINT8 ease_lookup(UINT8 easing, UINT8 progress)", func() {
		e.Block("switch (easing)", func() {
			for i, name := range easingOrder {
				if !g.usedEasings[name] {
					continue
				}
				e.Line("case %d: return _ease_%s[progress];", i, name)
			}
			e.Line("default: return progress;")
		})
	})
}
