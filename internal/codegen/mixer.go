package codegen

import "pixelforge/internal/model"

func (g *Generator) emitMixerData() {
	e := g.em
	if len(g.game.MixerGroups) == 0 {
		return
	}
	e.Comment("Mixer group state")
	for _, grp := range g.game.MixerGroups {
		e.Line("UINT8 %s = 100;", mixerVolumeVar(grp.Name))
		e.Line("UINT8 %s = 0;", mixerMutedVar(grp.Name))
		e.Line("UINT8 %s = %d;", mixerPriorityVar(grp.Name), grp.Priority)
		e.Line("UINT8 %s = 0;", mixerFadeStartVar(grp.Name))
		e.Line("UINT8 %s = 0;", mixerFadeTargetVar(grp.Name))
		e.Line("UINT8 %s = 0;", mixerFadeDurationVar(grp.Name))
		e.Line("UINT8 %s = 0;", mixerFadeTimerVar(grp.Name))
	}
	e.Blank()
	e.Comment("channel -> owning group id; 255 = unowned, always allowed")
	e.Line("const UINT8 _mixer_channel_group[4] = {%s};", joinComma(g.mixerChannelGroupInit()))
}

// mixerChannelGroupInit returns the PULSE1..NOISE -> group-id table, built
// from each group's declared Channels; a channel no group claims stays
// unowned (255).
func (g *Generator) mixerChannelGroupInit() []string {
	table := []string{"255", "255", "255", "255"}
	for i, grp := range g.game.MixerGroups {
		for _, ch := range grp.Channels {
			if idx := mixerChannelIndex(ch); idx >= 0 {
				table[idx] = itoa(i)
			}
		}
	}
	return table
}

func (g *Generator) mixerGroupID(name string) int {
	for i, grp := range g.game.MixerGroups {
		if grp.Name == name {
			return i
		}
	}
	return -1
}

func (g *Generator) findMixerGroup(name string) *model.MixerGroup {
	for _, grp := range g.game.MixerGroups {
		if grp.Name == name {
			return grp
		}
	}
	return nil
}

// emitMixerRuntime emits mixer_set_volume/_apply_volume/mixer_can_play/
// mixer fade update, per the algorithm in spec §4.3: master volume is the
// maximum over non-muted groups' volumes, mapped 0-100 -> 0-7, written to
// NR50 symmetric L/R.
func (g *Generator) emitMixerRuntime() {
	e := g.em
	if len(g.game.MixerGroups) == 0 {
		return
	}
	e.Block("void _mixer_apply_volume(void)", func() {
		e.Line("UINT8 master = 0;")
		for _, grp := range g.game.MixerGroups {
			e.Block("if (!"+mixerMutedVar(grp.Name)+" && "+mixerVolumeVar(grp.Name)+" > master)", func() {
				e.Line("master = %s;", mixerVolumeVar(grp.Name))
			})
		}
		e.Line("UINT8 hw = (master * 7) / 100;")
		e.Line("NR50_REG = (hw << 4) | hw;")
	})
	e.Blank()
	for _, grp := range g.game.MixerGroups {
		e.Block("void mixer_set_volume_"+grp.Name+"(UINT8 v)", func() {
			e.Block("if (v > 100)", func() { e.Line("v = 100;") })
			e.Line("%s = v;", mixerVolumeVar(grp.Name))
			e.Line("_mixer_apply_volume();")
		})
		e.Blank()
	}
	e.Block("UINT8 mixer_can_play(UINT8 channel, UINT8 sound_priority)", func() {
		e.Line("UINT8 group = _mixer_channel_group[channel];")
		e.Block("if (group == 255)", func() { e.Line("return 1;") })
		e.Comment("sound must be at least as high priority as the group")
		e.Block("switch (group)", func() {
			for i, grp := range g.game.MixerGroups {
				e.Line("case %d: return sound_priority >= %s ? 1 : 0;", i, mixerPriorityVar(grp.Name))
			}
			e.Line("default: return 1;")
		})
	})
	e.Blank()
	e.Block("void update_mixer_fade(void)", func() {
		for _, grp := range g.game.MixerGroups {
			e.Block("if ("+mixerFadeDurationVar(grp.Name)+" > 0)", func() {
				e.Line("INT16 delta = (INT16)%s - (INT16)%s;", mixerFadeTargetVar(grp.Name), mixerFadeStartVar(grp.Name))
				e.Line("%s++;", mixerFadeTimerVar(grp.Name))
				e.Line("INT16 v = (INT16)%s + (delta * (INT16)%s) / (INT16)%s;",
					mixerFadeStartVar(grp.Name), mixerFadeTimerVar(grp.Name), mixerFadeDurationVar(grp.Name))
				e.Line("%s = (UINT8)v;", mixerVolumeVar(grp.Name))
				e.Block("if ("+mixerFadeTimerVar(grp.Name)+" >= "+mixerFadeDurationVar(grp.Name)+")", func() {
					e.Line("%s = %s;", mixerVolumeVar(grp.Name), mixerFadeTargetVar(grp.Name))
					e.Line("%s = 0;", mixerFadeDurationVar(grp.Name))
				})
				e.Line("_mixer_apply_volume();")
			})
		}
	})
}
