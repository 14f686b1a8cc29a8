package codegen

import "pixelforge/internal/model"

// emitDataSections emits section 2 of the output contract: palette
// data, animation tables, pool arrays, mixer state, transition sequences,
// tween tables, dialog buffers, menu structures, save schemas, nav-grids.
func (g *Generator) emitDataSections() {
	e := g.em
	e.Comment("Scene enum: SCENE_NONE=255, then user scenes in definition order starting at 0")
	for i, sc := range g.game.Scenes {
		e.Line("#define %s %d", SceneConst(sc.Name), i)
	}
	e.Blank()

	e.Comment("Variables")
	for _, v := range g.game.Variables {
		e.Line("%s %s = %d%s;", v.Kind.CType(), v.Name, v.Initial, unsignedSuffix(v))
	}
	e.Blank()

	g.emitSpriteData()
	g.emitStateMachineData()
	g.emitAnimationData()
	g.emitPoolData()
	g.emitMixerData()
	g.emitPaletteData()
	e.Blank()
	g.emitNavGridData()
	g.emitDialogData()
	g.emitMenuData()
	g.emitSaveData()
	g.emitCameraData()
	e.Blank()
	g.emitTweenData()
	e.Blank()
	g.emitTransitionState()
	g.emitTransitionData()
}

// unsignedSuffix returns the literal integer suffix used when initializing
// user variables, per spec §4.3's init() ordering note ("unsigned suffix
// u"). Signed kinds (I8/I16) get no suffix.
func unsignedSuffix(v *model.Variable) string {
	switch v.Kind.CType() {
	case "UINT8", "UINT16":
		return "u"
	default:
		return ""
	}
}

// emitHelperFunctions emits section 3: every per-feature helper and
// updater function the scene/main-loop bodies call into.
func (g *Generator) emitHelperFunctions() {
	g.emitStateMachineUpdate()
	g.em.Blank()
	g.emitAnimationUpdate()
	g.em.Blank()
	g.emitPoolRuntime()
	g.emitMixerRuntime()
	g.em.Blank()
	g.emitDialogRuntime()
	g.emitMenuRuntime()
	g.emitSaveRuntime()
	g.em.Blank()
	g.emitCameraRuntime()
	g.em.Blank()
	g.emitTransitionCallbacks()
	g.em.Blank()
	g.emitTransitionUpdate()
	g.em.Blank()
	g.emitTweenRuntime()
	g.em.Blank()
	g.emitPathRuntime()
	g.em.Blank()
	g.emitCollisionHelpers()
}

// emitSpriteData emits each sprite's owned position pair, initialized from
// its declared spawn coordinates.
func (g *Generator) emitSpriteData() {
	e := g.em
	for _, sp := range g.game.Sprites {
		e.Line("UINT8 %s = %d;", spriteXVar(sp.Name), sp.InitialX)
		e.Line("UINT8 %s = %d;", spriteYVar(sp.Name), sp.InitialY)
	}
	e.Blank()
}

// emitCollisionHelpers emits a shared AABB-overlap test plus one
// <sprite>_collides_with(x, y) wrapper per sprite that declares a hitbox,
// checking that sprite's box (offset by its owned position) against a box
// at (x, y) using the same hitbox dimensions.
func (g *Generator) emitCollisionHelpers() {
	e := g.em
	any := false
	for _, sp := range g.game.Sprites {
		if sp.Hitbox != nil {
			any = true
			break
		}
	}
	if !any {
		return
	}
	e.Block("UINT8 aabb_overlap(INT16 ax, INT16 ay, UINT8 aw, UINT8 ah, INT16 bx, INT16 by, UINT8 bw, UINT8 bh)", func() {
		e.Line("return ax < bx + bw && ax + aw > bx && ay < by + bh && ay + ah > by;")
	})
	e.Blank()
	for _, sp := range g.game.Sprites {
		if sp.Hitbox == nil {
			continue
		}
		hb := sp.Hitbox
		e.Block("UINT8 "+sp.Name+"_collides_with(INT16 x, INT16 y)", func() {
			e.Line("return aabb_overlap(%s + %d, %s + %d, %d, %d, x, y, %d, %d);",
				spriteXVar(sp.Name), hb.OffsetX, spriteYVar(sp.Name), hb.OffsetY, hb.Width, hb.Height, hb.Width, hb.Height)
		})
		e.Blank()
	}
}

// emitSceneFunctions emits section 4: scene enter/frame/exit functions plus
// update_scene()'s scene-id dispatch.
func (g *Generator) emitSceneFunctions() {
	e := g.em
	for _, sc := range g.game.Scenes {
		e.Block("void scene_"+sc.Name+"_enter(void)", func() { g.lowerStmts(sc.Enter) })
		e.Blank()
		e.Block("void scene_"+sc.Name+"_frame(void)", func() { g.lowerStmts(sc.Update) })
		e.Blank()
		e.Block("void scene_"+sc.Name+"_exit(void)", func() { g.lowerStmts(sc.Exit) })
		e.Blank()
	}
	e.Comment("scene-change requests take effect at the next frame's entry")
	e.Line("UINT8 _current_scene = %s;", SceneConst(g.startScene()))
	e.Line("UINT8 _pending_scene = %s;", SceneNoneConst)
	e.Blank()
	e.Block("void request_scene_change(UINT8 scene)", func() {
		e.Line("_pending_scene = scene;")
	})
	e.Blank()
	e.Block("void update_scene(void)", func() {
		e.Block("if (_pending_scene != "+SceneNoneConst+")", func() {
			e.Block("switch (_current_scene)", func() {
				for _, sc := range g.game.Scenes {
					e.Line("case %s: scene_%s_exit(); break;", SceneConst(sc.Name), sc.Name)
				}
			})
			e.Line("_current_scene = _pending_scene;")
			e.Line("_pending_scene = %s;", SceneNoneConst)
			e.Block("switch (_current_scene)", func() {
				for _, sc := range g.game.Scenes {
					e.Line("case %s: scene_%s_enter(); return;", SceneConst(sc.Name), sc.Name)
				}
			})
		})
		e.Block("switch (_current_scene)", func() {
			for _, sc := range g.game.Scenes {
				e.Line("case %s: scene_%s_frame(); break;", SceneConst(sc.Name), sc.Name)
			}
		})
	})
}

func (g *Generator) startScene() string {
	if g.game.StartScene != "" {
		return g.game.StartScene
	}
	if len(g.game.Scenes) > 0 {
		return g.game.Scenes[0].Name
	}
	return ""
}

// emitMainLoop emits section 5: init()/main() with the exact sequencing
// from spec §4.3.
func (g *Generator) emitMainLoop() {
	e := g.em
	e.Block("void init(void)", func() {
		e.Line("DISPLAY_OFF;")
		if g.cfg.GBCSupport {
			e.Comment("load GBC palettes")
		}
		e.Comment("load sprite tiles")
		e.Comment("set initial sprite tiles")
		if g.cfg.GBCSupport {
			e.Comment("set sprite palette attributes (GBC)")
		}
		e.Comment("load background tiles")
		e.Comment("load background map")
		e.Comment("user variables initialized above at declaration")
		e.Line("_frame_count = 0;")
		e.Block("if (" + hasScenes(g) + ")", func() {
			e.Line("scene_%s_enter();", g.startScene())
		})
		e.Line("NR52_REG = 0x80;")
		e.Line("NR51_REG = 0xFF;")
		e.Line("DISPLAY_ON;")
	})
	e.Blank()
	e.Line("UINT16 _frame_count = 0;")
	e.Line("UINT8 _joypad_prev = 0;")
	e.Line("UINT8 _joypad_cur = 0;")
	e.Blank()
	e.Block("void main(void)", func() {
		e.Line("init();")
		e.Block("while (1)", func() {
			e.Line("_joypad_prev = _joypad_cur;")
			e.Line("_joypad_cur = joypad();")
			e.Comment("update input buffers: decrement timers, set just-pressed")
			e.Line("update_scene();")
			if len(g.game.StateMachines) > 0 {
				e.Line("update_state_machines();")
			}
			if hasAnyAnimations(g) {
				e.Line("update_animations();")
			}
			e.Comment("music tick + fade")
			e.Line("update_mixer_fade();")
			e.Line("update_transition();")
			if len(g.composedSequences) > 0 {
				e.Line("update_trans_sequence();")
			}
			e.Line("update_tweens();")
			e.Line("_frame_count++;")
			e.Line("vsync();")
		})
	})
}

func hasScenes(g *Generator) string {
	if len(g.game.Scenes) > 0 {
		return "1"
	}
	return "0"
}

func hasAnyAnimations(g *Generator) bool {
	for _, sp := range g.game.Sprites {
		if len(sp.Anims) > 0 {
			return true
		}
	}
	return false
}
