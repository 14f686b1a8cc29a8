package codegen

import "pixelforge/internal/model"

func (g *Generator) emitPoolData() {
	e := g.em
	for _, p := range g.game.Pools {
		start := g.nextOAM(p.Capacity)
		e.Comment("Pool %s (capacity %d, OAM range [%d, %d))", p.Name, p.Capacity, start, start+p.Capacity)
		e.Line("#define %s %d", poolOAMStartConst(p.Name), start)
		e.Line("UINT8 %s[%d];", poolActiveArr(p.Name), p.Capacity)
		e.Line("UINT8 %s[%d];", poolXArr(p.Name), p.Capacity)
		e.Line("UINT8 %s[%d];", poolYArr(p.Name), p.Capacity)
		e.Line("INT8 %s[%d];", poolVelXArr(p.Name), p.Capacity)
		e.Line("INT8 %s[%d];", poolVelYArr(p.Name), p.Capacity)
		for _, f := range p.Fields {
			e.Line("%s %s[%d];", f.Kind.CType(), poolFieldArr(p.Name, f.Name), p.Capacity)
		}
		e.Line("UINT8 %s[%d];", poolAnimArr(p.Name), p.Capacity)
		e.Line("UINT8 %s[%d];", poolFrameArr(p.Name), p.Capacity)
		e.Line("UINT8 %s[%d];", poolTimerArr(p.Name), p.Capacity)
		e.Line("UINT8 %s[%d];", poolAnimCompleteArr(p.Name), p.Capacity)
		e.Line("UINT8 %s = 0;", poolCountVar(p.Name))
		e.Blank()
	}
}

// emitPoolRuntime implements the pool lifecycle functions from spec §4.3:
// spawn (first-free linear scan, onSpawn bound to the claimed slot via the
// loop index), despawn (onDespawn before the slot is cleared), despawn_all,
// update (onFrame per active slot, then the despawn disjunction checked
// back-to-front so in-loop despawn is safe).
func (g *Generator) emitPoolRuntime() {
	e := g.em
	for _, p := range g.game.Pools {
		idxVar := poolIndexVar(p.Name)
		e.Block("UINT8 "+p.Name+"_spawn(UINT8 x, UINT8 y)", func() {
			e.Block("for (UINT8 "+idxVar+" = 0; "+idxVar+" < "+itoa(p.Capacity)+"; "+idxVar+"++)", func() {
				e.Block("if (!"+poolActiveArr(p.Name)+"["+idxVar+"])", func() {
					e.Line("%s[%s] = 1;", poolActiveArr(p.Name), idxVar)
					e.Line("%s[%s] = x;", poolXArr(p.Name), idxVar)
					e.Line("%s[%s] = y;", poolYArr(p.Name), idxVar)
					e.Line("%s++;", poolCountVar(p.Name))
					g.lowerStmts(p.OnSpawn)
					e.Line("move_sprite(%s + %s, x, y);", poolOAMStartConst(p.Name), idxVar)
					e.Line("return %s;", idxVar)
				})
			})
			e.Line("return 255;")
		})
		e.Blank()
		e.Block("void "+p.Name+"_despawn(UINT8 i)", func() {
			g.lowerStmts(p.OnDespawn)
			e.Line("move_sprite(%s + i, 0, 0);", poolOAMStartConst(p.Name))
			e.Line("%s[i] = 0;", poolActiveArr(p.Name))
			e.Line("%s--;", poolCountVar(p.Name))
		})
		e.Blank()
		e.Block("void "+p.Name+"_despawn_all(void)", func() {
			e.Block("for (UINT8 i = 0; i < "+itoa(p.Capacity)+"; i++)", func() {
				e.Block("if ("+poolActiveArr(p.Name)+"[i])", func() {
					e.Line("%s_despawn(i);", p.Name)
				})
			})
		})
		e.Blank()
		e.Block("void "+p.Name+"_update(void)", func() {
			e.Block("for (UINT8 i = 0; i < "+itoa(p.Capacity)+"; i++)", func() {
				e.Block("if (!"+poolActiveArr(p.Name)+"[i])", func() {
					e.Line("continue;")
				})
				g.lowerStmts(p.OnFrame)
				e.Line("move_sprite(%s + i, %s[i], %s[i]);", poolOAMStartConst(p.Name), poolXArr(p.Name), poolYArr(p.Name))
			})
			e.Comment("despawn disjunction is checked back-to-front so in-loop despawn is safe")
			e.Block("for (INT16 i = "+itoa(p.Capacity-1)+"; i >= 0; i--)", func() {
				e.Block("if (!"+poolActiveArr(p.Name)+"[i])", func() {
					e.Line("continue;")
				})
				e.Block("if ("+g.poolDespawnCondition(p)+")", func() {
					e.Line("%s_despawn(i);", p.Name)
					e.Line("continue;")
				})
			})
		})
		e.Blank()
	}
}

// poolDespawnCondition renders a pool's declared despawn-conditions
// disjunction, or the literal false if none were recorded.
func (g *Generator) poolDespawnCondition(p *model.Pool) string {
	parts := make([]string, len(p.DespawnConditions))
	for i, cond := range p.DespawnConditions {
		parts[i] = g.lowerExpr(cond)
	}
	return joinOr(parts)
}
