package codegen

import (
	"pixelforge/internal/diag"
	"pixelforge/internal/ir"
)

// lowerStmts emits one C statement per entry of stmts, in order.
func (g *Generator) lowerStmts(stmts []ir.Stmt) {
	for _, s := range stmts {
		g.lowerStmt(s)
	}
}

// lowerStmt is the dispatch-by-variant switch from spec §4.3. Core control
// flow is lowered inline; everything else is delegated to category
// handlers in the fixed order: sound/music, display, animation, save,
// dialog, menu, pool, camera, transition, pathfinding, misc. The first
// handler that claims a DomainStmt's Category wins; falling through all of
// them is the fatal "Unhandled IR statement type" error.
func (g *Generator) lowerStmt(stmt ir.Stmt) {
	e := g.em
	switch s := stmt.(type) {
	case *ir.Assign:
		g.lowerAssign(s)
	case *ir.If:
		e.Block("if ("+g.lowerExpr(s.Cond)+")", func() { g.lowerStmts(s.Then) })
		if len(s.Else) > 0 {
			e.Block("else", func() { g.lowerStmts(s.Else) })
		}
	case *ir.When:
		g.lowerWhen(s)
	case *ir.While:
		e.Block("while ("+g.lowerExpr(s.Cond)+")", func() { g.lowerStmts(s.Body) })
	case *ir.For:
		ctr := s.Counter
		e.Block("for (UINT16 "+ctr+" = "+g.lowerExpr(s.Range[0])+"; "+ctr+" <= "+g.lowerExpr(s.Range[1])+"; "+ctr+"++)", func() {
			g.lowerStmts(s.Body)
		})
	case *ir.FuncCall:
		args := make([]string, len(s.Args))
		for i, a := range s.Args {
			args[i] = g.lowerExpr(a)
		}
		e.Line("%s(%s);", s.Name, joinComma(args))
	case *ir.Raw:
		e.Raw(s.Code)
	case *ir.ArrayAssign:
		e.Line("%s[%s] = %s;", s.Array, g.lowerExpr(s.Index), g.lowerExpr(s.Value))
	case *ir.SceneChange:
		e.Line("request_scene_change(%s);", SceneConst(s.Scene))
	case *ir.DomainStmt:
		if g.lowerDomainStmt(s) {
			return
		}
		g.fatalf(diag.CategoryUnhandledIR, s.Target, "unhandled IR statement: category=%s op=%s", s.Category, s.Op)
	default:
		g.fatalf(diag.CategoryUnhandledIR, "", "unhandled IR statement type %T", stmt)
	}
}

func (g *Generator) lowerAssign(s *ir.Assign) {
	e := g.em
	op := "="
	switch s.Op {
	case ir.ASSIGN_ADD:
		op = "+="
	case ir.ASSIGN_SUB:
		op = "-="
	case ir.ASSIGN_MUL:
		op = "*="
	case ir.ASSIGN_AND:
		op = "&="
	case ir.ASSIGN_OR:
		op = "|="
	}
	e.Line("%s %s %s;", s.Target, op, g.lowerExpr(s.Value))
}

// lowerWhen renders an ordered (cond, body) branch list as a cascading
// if/else-if/else chain.
func (g *Generator) lowerWhen(s *ir.When) {
	e := g.em
	for i, b := range s.Branches {
		header := "if (" + g.lowerExpr(b.Cond) + ")"
		if i > 0 {
			header = "else " + header
		}
		e.Block(header, func() { g.lowerStmts(b.Body) })
	}
	if len(s.Else) > 0 {
		e.Block("else", func() { g.lowerStmts(s.Else) })
	}
}

// lowerDomainStmt dispatches a DomainStmt in the fixed category order.
// Returns false only if no category claims it (caller raises UnhandledIR).
func (g *Generator) lowerDomainStmt(s *ir.DomainStmt) bool {
	switch s.Category {
	case "sound", "mixer":
		return g.lowerSoundStmt(s)
	case "display":
		return g.lowerDisplayStmt(s)
	case "animation":
		return g.lowerAnimationStmt(s)
	case "save":
		return g.lowerSaveStmt(s)
	case "dialog":
		return g.lowerDialogStmt(s)
	case "menu":
		return g.lowerMenuStmt(s)
	case "pool":
		return g.lowerPoolStmt(s)
	case "camera":
		return g.lowerCameraStmt(s)
	case "transition":
		return g.lowerTransitionStmt(s)
	case "path":
		return g.lowerPathStmt(s)
	case "statemachine", "tween", "input", "link", "cutscene", "physics":
		return g.lowerMiscStmt(s)
	default:
		return false
	}
}

func (g *Generator) lowerSoundStmt(s *ir.DomainStmt) bool {
	e := g.em
	switch s.Category + ":" + s.Op {
	case "sound:play":
		e.Line("play_sfx_%s();", s.Target)
	case "sound:stop":
		e.Line("stop_sfx_%s();", s.Target)
	case "sound:mute":
		e.Line("mute_sfx_%s();", s.Target)
	case "sound:pan":
		e.Line("pan_sfx_%s(%s);", s.Target, g.lowerExpr(s.Args[0]))
	case "sound:master_volume":
		e.Line("set_master_volume(%s);", g.lowerExpr(s.Args[0]))
	case "sound:music_play":
		e.Line("music_play_%s();", s.Target)
	case "sound:music_pause":
		e.Line("hUGE_mute_channel(0, 1);")
	case "sound:music_resume":
		e.Line("hUGE_mute_channel(0, 0);")
	case "sound:music_stop":
		e.Line("music_stop();")
	case "sound:music_fade":
		e.Line("music_fade(%s, %s);", g.lowerExpr(s.Args[0]), g.lowerExpr(s.Args[1]))
	case "mixer:set_volume":
		e.Line("mixer_set_volume_%s(%s);", s.Target, g.lowerExpr(s.Args[0]))
	case "mixer:fade":
		e.Line("%s = %s; %s = %s; %s = %s; %s = 0;",
			mixerFadeStartVar(s.Target), mixerVolumeVar(s.Target),
			mixerFadeTargetVar(s.Target), g.lowerExpr(s.Args[0]),
			mixerFadeDurationVar(s.Target), g.lowerExpr(s.Args[1]),
			mixerFadeTimerVar(s.Target))
	case "mixer:mute":
		e.Line("%s = 1; _mixer_apply_volume();", mixerMutedVar(s.Target))
	case "mixer:toggle_mute":
		e.Line("%s = !%s; _mixer_apply_volume();", mixerMutedVar(s.Target), mixerMutedVar(s.Target))
	case "mixer:priority_check":
		e.Line("mixer_can_play(%s, %s);", s.Target, g.lowerExpr(s.Args[0]))
	default:
		return false
	}
	return true
}

func (g *Generator) lowerDisplayStmt(s *ir.DomainStmt) bool {
	e := g.em
	switch s.Op {
	case "clear":
		e.Line("cls();")
	case "show_sprites":
		e.Line("SHOW_SPRITES;")
	case "hide_sprites":
		e.Line("HIDE_SPRITES;")
	case "show_bkg":
		e.Line("SHOW_BKG;")
	case "hide_bkg":
		e.Line("HIDE_BKG;")
	case "print_at":
		text, _ := s.Scalars["text"].(string)
		e.Line("gotoxy(%s, %s); printf(\"%s\");", g.lowerExpr(s.Args[0]), g.lowerExpr(s.Args[1]), text)
	default:
		return false
	}
	return true
}

func (g *Generator) lowerAnimationStmt(s *ir.DomainStmt) bool {
	e := g.em
	sp := s.Target
	switch s.Op {
	case "play":
		anim, _ := s.Scalars["anim"].(string)
		g.emitAnimPlay(sp, anim)
	case "stop":
		e.Line("%s = %s;", spriteAnimVar(sp), AnimNoneConst)
	case "pause":
		e.Line("%s |= PAUSED;", spriteFlagsVar(sp))
	case "resume":
		e.Line("%s &= ~PAUSED;", spriteFlagsVar(sp))
	case "set_speed":
		e.Line("%s = %s;", spriteSpeedVar(sp), g.lowerExpr(s.Args[0]))
	case "set_frame":
		e.Line("%s = %s;", spriteFrameVar(sp), g.lowerExpr(s.Args[0]))
	case "queue":
		anim, _ := s.Scalars["anim"].(string)
		e.Line("%s = %s; %s = 1;", spriteQueueVar(sp), AnimConst(sp, anim), spriteQueueLenVar(sp))
	default:
		return false
	}
	return true
}

func (g *Generator) lowerSaveStmt(s *ir.DomainStmt) bool {
	e := g.em
	switch s.Op {
	case "load":
		e.Line("save_%s_load(%s);", s.Target, g.lowerExpr(s.Args[0]))
	case "save":
		e.Line("save_%s_save(%s);", s.Target, g.lowerExpr(s.Args[0]))
	case "erase":
		e.Line("save_%s_erase(%s);", s.Target, g.lowerExpr(s.Args[0]))
	case "copy":
		e.Line("save_%s_copy(%s, %s);", s.Target, g.lowerExpr(s.Args[0]), g.lowerExpr(s.Args[1]))
	case "field_write":
		field, _ := s.Scalars["field"].(string)
		e.Line("_save_%s.%s = %s;", s.Target, field, g.lowerExpr(s.Args[0]))
	case "array_write":
		field, _ := s.Scalars["field"].(string)
		e.Line("_save_%s.%s[%s] = %s;", s.Target, field, g.lowerExpr(s.Args[0]), g.lowerExpr(s.Args[1]))
	default:
		return false
	}
	return true
}

func (g *Generator) lowerDialogStmt(s *ir.DomainStmt) bool {
	e := g.em
	switch s.Op {
	case "show":
		e.Line("dialog_%s_show();", s.Target)
	case "hide":
		e.Line("dialog_%s_hide();", s.Target)
	case "say":
		text, _ := s.Scalars["text"].(string)
		e.Line("dialog_%s_say(\"%s\");", s.Target, text)
	case "choice":
		e.Comment("dialog choice rendering is a display-only concern")
	case "tick":
		e.Line("dialog_%s_tick();", s.Target)
	default:
		return false
	}
	return true
}

func (g *Generator) lowerMenuStmt(s *ir.DomainStmt) bool {
	e := g.em
	switch s.Op {
	case "show":
		e.Line("menu_%s_show();", s.Target)
	case "hide", "close", "cancel":
		e.Line("menu_%s_hide();", s.Target)
	case "toggle":
		e.Line("_menu_%s_visible = !_menu_%s_visible;", s.Target, s.Target)
	case "open":
		e.Line("menu_%s_show();", s.Target)
	case "select":
		e.Comment("select dispatches the item callback bound at authoring time")
	case "move_to":
		e.Line("menu_%s_move_to(%s);", s.Target, g.lowerExpr(s.Args[0]))
	case "tick":
		e.Comment("menu navigation tick reads the joypad buffer")
	default:
		return false
	}
	return true
}

func (g *Generator) lowerPoolStmt(s *ir.DomainStmt) bool {
	e := g.em
	switch s.Op {
	case "spawn":
		e.Line("%s_spawn(0, 0);", s.Target)
	case "spawn_at":
		e.Line("%s_spawn(%s, %s);", s.Target, g.lowerExpr(s.Args[0]), g.lowerExpr(s.Args[1]))
	case "try_spawn":
		e.Line("%s_spawn(0, 0);", s.Target)
	case "despawn":
		e.Line("%s_despawn(%s);", s.Target, g.lowerExpr(s.Args[0]))
	case "despawn_all":
		e.Line("%s_despawn_all();", s.Target)
	case "for_each":
		idx := poolIndexVar(s.Target)[1:]
		capacity := 0
		if p := g.game.FindPool(s.Target); p != nil {
			capacity = p.Capacity
		}
		e.Block("for (UINT8 "+idx+" = 0; "+idx+" < "+itoa(capacity)+"; "+idx+"++)", func() {
			e.Block("if (!"+poolActiveArr(s.Target)+"["+idx+"])", func() { e.Line("continue;") })
			g.lowerStmts(s.Nested)
		})
	case "despawn_where":
		idx := poolIndexVar(s.Target)[1:]
		capacity := 0
		if p := g.game.FindPool(s.Target); p != nil {
			capacity = p.Capacity
		}
		e.Block("for (INT16 "+idx+" = "+itoa(capacity-1)+"; "+idx+" >= 0; "+idx+"--)", func() {
			e.Block("if (!"+poolActiveArr(s.Target)+"["+idx+"])", func() { e.Line("continue;") })
			e.Block("if ("+g.lowerExpr(s.Args[0])+")", func() {
				e.Line("%s_despawn(%s);", s.Target, idx)
			})
		})
	case "update":
		e.Line("%s_update();", s.Target)
	default:
		return false
	}
	return true
}

func (g *Generator) lowerCameraStmt(s *ir.DomainStmt) bool {
	e := g.em
	switch s.Op {
	case "set_position":
		e.Line("_camera_x = %s; _camera_y = %s;", g.lowerExpr(s.Args[0]), g.lowerExpr(s.Args[1]))
	case "follow":
		e.Comment("camera binds to sprite " + s.Target + "'s position variables")
	case "stop_follow":
		e.Line("_camera_follow_target = %s;", AnimNoneConst)
	case "snap":
		e.Comment("camera snaps immediately to the follow target this frame")
	case "set_bounds":
		e.Line("_camera_bounds_x0 = %s; _camera_bounds_y0 = %s; _camera_bounds_x1 = %s; _camera_bounds_y1 = %s;",
			g.lowerExpr(s.Args[0]), g.lowerExpr(s.Args[1]), g.lowerExpr(s.Args[2]), g.lowerExpr(s.Args[3]))
	case "shake":
		e.Line("_camera_shake_intensity = %s; _camera_shake_decay = %s;", g.lowerExpr(s.Args[0]), g.lowerExpr(s.Args[1]))
	case "shake_stop":
		e.Line("_camera_shake_intensity = 0;")
	case "update":
		e.Line("update_camera();")
	default:
		return false
	}
	return true
}

func (g *Generator) lowerTransitionStmt(s *ir.DomainStmt) bool {
	e := g.em
	switch s.Op {
	case "fade_out":
		e.Line("%s = FADE_OUT; %s = %s;", transTypeVar, transTimerVar, g.lowerExpr(s.Args[0]))
	case "fade_in":
		e.Line("%s = FADE_IN; %s = %s;", transTypeVar, transTimerVar, g.lowerExpr(s.Args[0]))
	case "flash":
		e.Line("%s = FLASH; %s = %s; %s = %s;", transTypeVar, transFlashColorVar, g.lowerExpr(s.Args[0]), transTimerVar, g.lowerExpr(s.Args[1]))
	case "wipe", "iris":
		e.Comment("wipe/iris fall back to the palette fade equivalent per the open design question")
		e.Line("%s = FADE_OUT; %s = %s;", transTypeVar, transTimerVar, g.lowerExpr(s.Args[0]))
	case "shake":
		e.Line("%s = SHAKE; %s = %s; %s = %s;", transTypeVar, transShakeIntensityVar, g.lowerExpr(s.Args[0]), transShakeDecayVar, g.lowerExpr(s.Args[1]))
	case "wait":
		e.Line("%s = WAIT; %s = %s;", transTypeVar, transTimerVar, g.lowerExpr(s.Args[0]))
	case "callback":
		id := g.registerTransitionCallback(s.Nested)
		e.Line("%s = CALLBACK; %s = %d;", transTypeVar, transCallbackVar, id)
	case "composed", "parallel":
		stream := g.encodeTransitionSequence(s.Nested)
		if s.Op == "parallel" {
			stream = g.encodeTransitionSequence([]ir.Stmt{s})
		}
		id := g.registerComposedSequence(stream)
		e.Line("%s = %d; %s = 0; %s = 0; %s = 1;", transSeqIDVar, id, transSeqStepVar, transSeqTimerVar, transSeqActiveVar)
	case "cancel":
		e.Line("%s = 0; %s = 0;", transTimerVar, transSeqActiveVar)
	default:
		return false
	}
	return true
}

func (g *Generator) lowerPathStmt(s *ir.DomainStmt) bool {
	e := g.em
	switch s.Op {
	case "find":
		grid, _ := s.Scalars["grid"].(string)
		e.Line("%s_found = path_find(%s_cost, %s_WIDTH, %s_HEIGHT, 0, 0, %s, %s);",
			s.Target, grid, upper(grid), upper(grid), g.lowerExpr(s.Args[0]), g.lowerExpr(s.Args[1]))
	case "advance":
		e.Line("path_advance(0, 0, 0, 0); /* %s */", s.Target)
	case "follow":
		sprite, _ := s.Scalars["sprite"].(string)
		e.Comment("path " + s.Target + " drives sprite " + sprite + " toward its next waypoint")
	case "reset":
		e.Line("%s_found = 0;", s.Target)
	case "nav_init":
		e.Comment("nav-grid " + s.Target + " initialized from its baked cost table")
	case "nav_set_tile":
		e.Line("%s_set_tile(%s, %s, %s);", s.Target, g.lowerExpr(s.Args[0]), g.lowerExpr(s.Args[1]), g.lowerExpr(s.Args[2]))
	case "nav_set_weight":
		e.Line("%s_set_weight(%s, %s, %s);", s.Target, g.lowerExpr(s.Args[0]), g.lowerExpr(s.Args[1]), g.lowerExpr(s.Args[2]))
	default:
		return false
	}
	return true
}

// lowerMiscStmt claims state-machine, tween, input-buffer, link-cable,
// cutscene, and physics statements — the spec's "misc" dispatch bucket.
func (g *Generator) lowerMiscStmt(s *ir.DomainStmt) bool {
	e := g.em
	switch s.Category {
	case "statemachine":
		switch s.Op {
		case "start":
			state, _ := s.Scalars["state"].(string)
			e.Line("_sm_%s_state = %s; _sm_%s_next = %s;", s.Target, StateConst(s.Target, state), s.Target, StateConst(s.Target, state))
		case "goto":
			state, _ := s.Scalars["state"].(string)
			e.Line("_sm_%s_next = %s; _sm_%s_changed = 1;", s.Target, StateConst(s.Target, state), s.Target)
		case "update":
			e.Line("update_sm_%s();", s.Target)
		default:
			return false
		}
		return true
	case "tween":
		switch s.Op {
		case "start":
			duration, _ := s.Scalars["duration"].(int)
			easing, _ := s.Scalars["easing"].(string)
			isU8 := 1
			if v := g.game.FindVariable(s.Target); v != nil && v.Kind != ir.U8 {
				isU8 = 0
			}
			e.Line("start_tween((UINT16 *)&%s, %d, %s, %s, %d, %d);",
				s.Target, isU8, g.lowerExpr(s.Args[0]), g.lowerExpr(s.Args[1]), duration, easingID(easing))
		case "cancel":
			e.Comment("tween slot lookup by target variable happens at runtime")
		default:
			return false
		}
		return true
	case "input":
		switch s.Op {
		case "decl":
			e.Comment("input buffer " + s.Target + " declared")
		case "reset":
			e.Line("memset(_input_%s, 0, sizeof(_input_%s));", s.Target, s.Target)
		case "fill":
			e.Line("_input_%s_mask = %s;", s.Target, g.lowerExpr(s.Args[0]))
		default:
			return false
		}
		return true
	case "link":
		switch s.Op {
		case "init":
			e.Line("link_init();")
		case "update":
			e.Line("link_update();")
		case "send":
			e.Line("link_send(%s);", g.lowerExpr(s.Args[0]))
		default:
			return false
		}
		return true
	case "cutscene":
		switch s.Op {
		case "start":
			e.Line("cutscene_%s_start();", s.Target)
		case "update":
			e.Line("cutscene_%s_update();", s.Target)
		case "skip":
			e.Line("cutscene_%s_skip();", s.Target)
		default:
			return false
		}
		return true
	case "physics":
		switch s.Op {
		case "apply":
			e.Line("physics_apply(%s, %s, %s);", s.Target, g.lowerExpr(s.Args[0]), g.lowerExpr(s.Args[1]))
		case "world_update":
			e.Line("physics_world_update();")
		case "collision_response":
			e.Line("physics_collision_response(%s);", s.Target)
		default:
			return false
		}
		return true
	}
	return false
}

func easingID(name string) int {
	for i, n := range easingOrder {
		if n == name {
			return i
		}
	}
	return 0
}
