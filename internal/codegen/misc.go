package codegen

// emitPaletteData/emitDialogData/emitMenuData/emitSaveData/emitCameraData
// emit the data-section declarations for the remaining category state; none
// of these need a "key algorithm" writeup in spec §4.3 beyond their naming
// and structure, so the emission here stays close to the declarative model.

func (g *Generator) emitPaletteData() {
	e := g.em
	for _, p := range g.game.Palettes {
		e.Line("#define PALETTE_%s_SLOT %d", upper(p.Name), p.Slots)
		e.Line("const UINT16 palette_%s[4] = {0, 0, 0, 0};", p.Name)
	}
}

func (g *Generator) emitCameraData() {
	e := g.em
	e.Comment("Camera state")
	e.Line("UINT8 _camera_x = 0;")
	e.Line("UINT8 _camera_y = 0;")
	e.Line("UINT8 _camera_follow_target = %s;", AnimNoneConst)
	e.Line("UINT8 _camera_bounds_x0 = 0, _camera_bounds_y0 = 0, _camera_bounds_x1 = 255, _camera_bounds_y1 = 255;")
	e.Line("UINT8 _camera_shake_intensity = 0, _camera_shake_decay = 0;")
}

func (g *Generator) emitCameraRuntime() {
	e := g.em
	e.Block("void update_camera(void)", func() {
		e.Comment("shake decay and hardware scroll register write")
		e.Block("if (_camera_shake_intensity > 0)", func() {
			e.Line("_camera_shake_intensity -= _camera_shake_decay;")
		})
		e.Line("SCX_REG = _camera_x;")
		e.Line("SCY_REG = _camera_y;")
	})
}

func (g *Generator) emitDialogData() {
	e := g.em
	for _, d := range g.game.Dialogs {
		e.Line("#define %s_BUFFER_SIZE DIALOG_BUFFER_SIZE", upper(d.Name))
		e.Line("char _dialog_%s_buffer[%s_BUFFER_SIZE];", d.Name, upper(d.Name))
		e.Line("UINT8 _dialog_%s_visible = 0;", d.Name)
		e.Line("UINT8 _dialog_%s_cursor = 0;", d.Name)
	}
}

func (g *Generator) emitDialogRuntime() {
	e := g.em
	for _, d := range g.game.Dialogs {
		e.Block("void dialog_"+d.Name+"_show(void)", func() { e.Line("_dialog_%s_visible = 1;", d.Name) })
		e.Blank()
		e.Block("void dialog_"+d.Name+"_hide(void)", func() { e.Line("_dialog_%s_visible = 0;", d.Name) })
		e.Blank()
		e.Block("void dialog_"+d.Name+"_say(const char *text)", func() {
			e.Line("strncpy(_dialog_%s_buffer, text, %s_BUFFER_SIZE - 1);", d.Name, upper(d.Name))
			e.Line("_dialog_%s_buffer[%s_BUFFER_SIZE - 1] = 0;", d.Name, upper(d.Name))
			e.Line("_dialog_%s_cursor = 0;", d.Name)
			e.Line("_dialog_%s_visible = 1;", d.Name)
		})
		e.Blank()
		e.Comment("typewriter tick: reveals one more character per call")
		e.Block("void dialog_"+d.Name+"_tick(void)", func() {
			e.Block("if (_dialog_"+d.Name+"_cursor < strlen(_dialog_"+d.Name+"_buffer))", func() {
				e.Line("_dialog_%s_cursor++;", d.Name)
			})
		})
		e.Blank()
	}
}

func (g *Generator) emitMenuData() {
	e := g.em
	for _, m := range g.game.Menus {
		e.Line("const char *const _menu_%s_items[%d] = {%s};", m.Name, len(m.Items), quoteJoin(m.Items))
		e.Line("UINT8 _menu_%s_cursor = 0;", m.Name)
		e.Line("UINT8 _menu_%s_visible = 0;", m.Name)
	}
}

func quoteJoin(items []string) string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = "\"" + s + "\""
	}
	return joinComma(out)
}

func (g *Generator) emitMenuRuntime() {
	e := g.em
	for _, m := range g.game.Menus {
		n := len(m.Items)
		e.Block("void menu_"+m.Name+"_show(void)", func() { e.Line("_menu_%s_visible = 1;", m.Name) })
		e.Blank()
		e.Block("void menu_"+m.Name+"_hide(void)", func() { e.Line("_menu_%s_visible = 0;", m.Name) })
		e.Blank()
		e.Block("void menu_"+m.Name+"_move_to(UINT8 index)", func() {
			e.Block("if (index < "+itoa(n)+")", func() { e.Line("_menu_%s_cursor = index;", m.Name) })
		})
		e.Blank()
	}
}

func (g *Generator) emitSaveData() {
	e := g.em
	for _, s := range g.game.SaveSchemas {
		e.Comment("Save schema %s (%d slots)", s.Name, s.Slots)
		e.Block("typedef struct", func() {
			for _, f := range s.Fields {
				e.Line("%s %s;", f.Kind.CType(), f.Name)
			}
		})
		e.Line("_save_%s_t;", s.Name)
		e.Line("_save_%s_t _save_%s_slots[%d];", s.Name, s.Name, s.Slots)
		e.Comment("currently loaded slot; field reads/writes address this directly")
		e.Line("_save_%s_t _save_%s;", s.Name, s.Name)
	}
}

func (g *Generator) emitSaveRuntime() {
	e := g.em
	for _, s := range g.game.SaveSchemas {
		e.Block("void save_"+s.Name+"_load(UINT8 slot)", func() {
			e.Line("_save_%s = _save_%s_slots[slot];", s.Name, s.Name)
		})
		e.Blank()
		e.Block("void save_"+s.Name+"_save(UINT8 slot)", func() {
			e.Line("_save_%s_slots[slot] = _save_%s;", s.Name, s.Name)
		})
		e.Blank()
		e.Block("void save_"+s.Name+"_erase(UINT8 slot)", func() {
			e.Line("memset(&_save_%s_slots[slot], 0, sizeof(_save_%s_t));", s.Name, s.Name)
		})
		e.Blank()
		e.Block("void save_"+s.Name+"_copy(UINT8 from, UINT8 to)", func() {
			e.Line("_save_%s_slots[to] = _save_%s_slots[from];", s.Name, s.Name)
		})
		e.Blank()
	}
}
