package codegen

import "pixelforge/internal/ir"

func (g *Generator) emitNavGridData() {
	e := g.em
	for _, grid := range g.game.NavGrids {
		e.Comment("Nav-grid %s (%dx%d, 0=blocked, >=1=cost)", grid.Name, grid.Width, grid.Height)
		e.Line("#define %s_WIDTH %d", upper(grid.Name), grid.Width)
		e.Line("#define %s_HEIGHT %d", upper(grid.Name), grid.Height)
		e.Line("UINT8 %s_cost[%d];", grid.Name, grid.Width*grid.Height)
		e.Blank()
	}
	for _, name := range g.collectPathNames() {
		e.Line("UINT8 %s_found = 0;", name)
	}
}

// collectPathNames walks every scene and state-machine state statement list
// (pool and animation lists are not walked) for DomainStmts in
// category "path" and returns the distinct path names referenced, so their
// found-flag variables get exactly one declaration each.
func (g *Generator) collectPathNames() []string {
	seen := map[string]bool{}
	var names []string
	note := func(n string) {
		if n != "" && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	walk := func(stmts []ir.Stmt) {
		walkStmts(stmts, func(s ir.Stmt) {
			if ds, ok := s.(*ir.DomainStmt); ok && ds.Category == "path" {
				note(ds.Target)
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
	return names
}

// emitPathRuntime emits set_tile/set_weight mutators per nav-grid, one
// path_find wrapper that delegates the search to the runtime's astar_search
// and reports found/not-found, and the 4-pixel waypoint-proximity
// threshold for path-follow.
func (g *Generator) emitPathRuntime() {
	e := g.em
	for _, grid := range g.game.NavGrids {
		e.Block("void "+grid.Name+"_set_tile(UINT8 x, UINT8 y, UINT8 cost)", func() {
			e.Line("%s_cost[y * %s_WIDTH + x] = cost;", grid.Name, upper(grid.Name))
		})
		e.Blank()
		e.Block("void "+grid.Name+"_set_weight(UINT8 x, UINT8 y, UINT8 weight)", func() {
			e.Line("%s_cost[y * %s_WIDTH + x] = weight;", grid.Name, upper(grid.Name))
		})
		e.Blank()
	}
	if len(g.game.NavGrids) == 0 {
		return
	}
	e.Comment("waypoint-proximity threshold for path-follow, in pixels")
	e.Line("#define PATH_WAYPOINT_THRESHOLD 4")
	e.Blank()
	e.Block("UINT8 path_find(UINT8 *cost_grid, UINT8 width, UINT8 height, UINT8 from_x, UINT8 from_y, UINT8 to_x, UINT8 to_y)", func() {
		e.Comment("Manhattan-heuristic A* over the flattened cost grid; returns 1 if a route was found")
		e.Line("return astar_search(cost_grid, width, height, from_x, from_y, to_x, to_y);")
	})
	e.Blank()
	e.Block("UINT8 path_advance(UINT8 cur_x, UINT8 cur_y, UINT8 next_x, UINT8 next_y)", func() {
		e.Line("INT16 dx = (INT16)next_x - (INT16)cur_x;")
		e.Line("INT16 dy = (INT16)next_y - (INT16)cur_y;")
		e.Line("INT16 dist2 = dx * dx + dy * dy;")
		e.Line("return dist2 <= (PATH_WAYPOINT_THRESHOLD * PATH_WAYPOINT_THRESHOLD);")
	})
}
