package codegen

func (g *Generator) emitStateMachineData() {
	e := g.em
	for _, m := range g.game.StateMachines {
		e.Comment("State machine %s", m.Name)
		for i, st := range m.States {
			e.Line("#define %s %d", StateConst(m.Name, st.Name), i)
		}
		e.Line("UINT8 _sm_%s_state = %s;", m.Name, StateConst(m.Name, m.Initial))
		e.Line("UINT8 _sm_%s_next = %s;", m.Name, StateConst(m.Name, m.Initial))
		e.Line("UINT8 _sm_%s_changed = 0;", m.Name)
		e.Blank()
	}
}

// emitStateMachineUpdate implements the two switch-cascade algorithm from
// spec §4.3: the first cascade handles transition out-of/into (onExit,
// state copy, bound-animation auto-play, onEnter), the second checks
// declared transitions in order, with outgoing transitions from a
// lockUntilComplete state gated on the bound sprite's anim having returned
// to ANIM_NONE.
func (g *Generator) emitStateMachineUpdate() {
	e := g.em
	for _, m := range g.game.StateMachines {
		e.Block("void update_sm_"+m.Name+"(void)", func() {
			e.Block("if (_sm_"+m.Name+"_changed)", func() {
				e.Block("switch (_sm_"+m.Name+"_state)", func() {
					for _, st := range m.States {
						e.Line("case %s:", StateConst(m.Name, st.Name))
						e.Push()
						g.lowerStmts(st.Exit)
						e.Line("break;")
						e.Pop()
					}
				})
				e.Line("_sm_%s_state = _sm_%s_next;", m.Name, m.Name)
				e.Block("switch (_sm_"+m.Name+"_state)", func() {
					for _, st := range m.States {
						e.Line("case %s:", StateConst(m.Name, st.Name))
						e.Push()
						if st.BoundSprite != "" && st.BoundAnim != "" {
							g.emitAnimPlay(st.BoundSprite, st.BoundAnim)
						}
						g.lowerStmts(st.Enter)
						e.Line("break;")
						e.Pop()
					}
				})
				e.Line("_sm_%s_changed = 0;", m.Name)
				e.Line("return;")
			})
			e.Block("switch (_sm_"+m.Name+"_state)", func() {
				for _, st := range m.States {
					e.Line("case %s:", StateConst(m.Name, st.Name))
					e.Push()
					g.lowerStmts(st.Body)
					lockCond := ""
					if st.LockUntilComplete && st.BoundSprite != "" {
						lockCond = spriteAnimVar(st.BoundSprite) + " == " + AnimNoneConst
					}
					for _, t := range m.Transitions {
						if t.From != st.Name {
							continue
						}
						cond := g.lowerExpr(t.Cond)
						if lockCond != "" {
							cond = lockCond + " && (" + cond + ")"
						}
						e.Block("if ("+cond+")", func() {
							e.Line("_sm_%s_next = %s;", m.Name, StateConst(m.Name, t.To))
							e.Line("_sm_%s_changed = 1;", m.Name)
							e.Line("break;")
						})
					}
					e.Line("break;")
					e.Pop()
				}
			})
		})
		e.Blank()
	}
	if len(g.game.StateMachines) == 0 {
		return
	}
	e.Block("void update_state_machines(void)", func() {
		for _, m := range g.game.StateMachines {
			e.Line("update_sm_%s();", m.Name)
		}
	})
}
