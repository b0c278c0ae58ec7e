package game

import (
	"fmt"

	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// Gray is the neutral color index; objects that cannot think only ever
// need their gray sprites.
const Gray = 0

// colorCount is the number of admiral colors a sprite table comes in.
const colorCount = 16

// addBaseObjectMedia queues the sprites of base in color, and everything
// its actions and weapons can bring into play, for every color that is
// needed but not yet loaded.
func (s *Sim) addBaseObjectMedia(base int, color uint8, allColors uint16, state *LoadState) {
	b := s.Catalog.Get(base)
	if b == nil {
		return
	}
	if b.Attributes&world.CanThink == 0 {
		color = Gray
	}
	state.needed[base] |= 1 << color
	for i := range colorCount {
		bit := uint16(1) << i
		if state.loaded[base]&bit != 0 || state.needed[base]&bit == 0 {
			continue
		}
		state.loaded[base] |= bit

		if b.PixResID != world.NoSpriteTable {
			s.Media.AddSprite(b.PixResID + i<<world.SpriteTableColorShift)
		}
		for _, list := range b.Verbs() {
			for _, a := range list {
				s.addActionMedia(&a, uint8(i), allColors, state)
			}
		}
		for _, w := range b.Weapons() {
			if w.Valid() {
				s.addBaseObjectMedia(w.Base, uint8(i), allColors, state)
			}
		}
	}
}

func (s *Sim) addActionMedia(a *world.Action, color uint8, allColors uint16, state *LoadState) {
	switch a.Verb {
	case world.CreateObject, world.CreateObjectSetDest, world.AlterBaseType:
		s.addBaseObjectMedia(a.Base, color, allColors, state)

	case world.PlaySound:
		for _, id := range a.SoundIDs() {
			s.Media.LoadSound(id)
		}

	case world.AlterOwner:
		for n := range s.Catalog.Objects {
			if world.FilterApplies(a.Filter, &s.Catalog.Objects[n]) {
				state.needed[n] |= allColors
			}
			if state.loaded[n] != 0 {
				s.addBaseObjectMedia(n, color, allColors, state)
			}
		}
	}
}

// loadBlessedObjects queues the four objects every level uses. The
// player's body is needed in all colors, the rest only in gray.
func (s *Sim) loadBlessedObjects(allColors uint16, state *LoadState) error {
	info := s.Catalog.Info
	for _, b := range []struct {
		field string
		base  int
	}{
		{"energy blob", info.EnergyBlob},
		{"warp in flare", info.WarpInFlare},
		{"warp out flare", info.WarpOutFlare},
		{"player body", info.PlayerBody},
	} {
		if s.Catalog.Get(b.base) == nil {
			return fmt.Errorf("%w: no %s defined", ErrMissingBlessed, b.field)
		}
	}

	state.needed[info.PlayerBody] |= allColors
	for range s.Level.Players {
		for _, base := range []int{info.EnergyBlob, info.WarpInFlare, info.WarpOutFlare, info.PlayerBody} {
			s.addBaseObjectMedia(base, Gray, allColors, state)
		}
	}
	return nil
}

func (s *Sim) admiralColor(i int) uint8 {
	if a := s.admiral(i); a != nil {
		return a.Color
	}
	return Gray
}

// loadInitial queues the media of initial i and of everything it can build.
func (s *Sim) loadInitial(i int, allColors uint16, state *LoadState) {
	in := &s.Level.Initials[i]
	b := s.Catalog.Get(in.Base)
	color := s.admiralColor(in.Owner)

	if b.Attributes&world.IsDestination != 0 {
		state.needed[in.Base] |= allColors
	}
	s.addBaseObjectMedia(in.Base, color, allColors, state)

	if in.SpriteOverride >= 0 {
		if b.Attributes&world.CanThink != 0 {
			s.Media.AddSprite(in.SpriteOverride + int(color)<<world.SpriteTableColorShift)
		} else {
			s.Media.AddSprite(in.SpriteOverride)
		}
	}

	for _, class := range in.CanBuild {
		if class == world.NoClass {
			continue
		}
		for _, a := range s.Admirals {
			if !a.Active {
				continue
			}
			if base := s.Catalog.ByClassRace(class, a.Race); base >= 0 {
				s.addBaseObjectMedia(base, a.Color, allColors, state)
			}
		}
	}
}

// loadConditions queues every condition's action media in gray and seeds
// each condition's truth history.
func (s *Sim) loadConditions(allColors uint16, state *LoadState) {
	for i := range s.Conditions {
		c := &s.Conditions[i]
		for j := range c.Actions {
			s.addActionMedia(&c.Actions[j], Gray, allColors, state)
		}
		c.SetTrueYet(c.Flags&world.InitiallyTrue != 0)
	}
}
