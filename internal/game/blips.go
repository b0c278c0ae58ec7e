package game

import (
	"image"
	"image/color"

	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// Blip is the on-screen mark of one space object.
type Blip struct {
	Object Handle
	At     image.Point
	Glyph  rune
	Hue    render.Hue
	Shade  int
}

// Blips returns a mark for every active object inside the view.
func (s *Sim) Blips(v View) []Blip {
	var out []Blip
	area := v.Bounds.Inset(-8)
	for _, h := range s.Objects.All() {
		obj := s.Objects.Get(h)
		if obj == nil || !obj.Active {
			continue
		}
		at := v.ToScreen(s.Objects.Motion(h).Location)
		if !at.In(area) {
			continue
		}
		glyph, hue, shade := s.blipVisuals(h, obj)
		out = append(out, Blip{Object: h, At: at, Glyph: glyph, Hue: hue, Shade: shade})
	}
	return out
}

func (s *Sim) blipVisuals(h Handle, obj *SpaceObject) (glyph rune, hue render.Hue, shade int) {
	hue = render.Hue(s.admiralColor(obj.Owner))
	shade = render.ShadeLight

	switch {
	case h == s.Ship:
		return '@', hue, render.ShadeLightest
	case obj.Base == s.Catalog.Info.EnergyBlob:
		return '+', render.HueGreen, render.ShadeMedium
	case obj.Attributes&world.IsDestination != 0:
		return 'O', hue, shade
	case obj.Attributes&world.CanThink != 0:
		return headingGlyph(obj.Direction), hue, shade
	case obj.Attributes&world.IsBeam != 0:
		return '|', hue, render.ShadeLighter
	case s.base(obj) != nil && s.base(obj).Damage > 0:
		return '*', hue, render.ShadeLighter
	default:
		return '.', render.HueGray, render.ShadeDark
	}
}

// headingGlyph rounds a direction to the nearest of four arrows.
func headingGlyph(direction int) rune {
	switch (((direction%360)+360+45)%360) / 90 {
	case 0:
		return '>'
	case 1:
		return 'v'
	case 2:
		return '<'
	default:
		return '^'
	}
}

// DrawScene draws the visible objects, labels and the status line.
func (s *Sim) DrawScene(c render.Canvas, f *render.Font, v View) {
	half := image.Pt(f.LogicalWidth/2, -f.Ascent/2)
	for _, b := range s.Blips(v) {
		c.DrawGlyph(f, b.At.Sub(half), b.Glyph, render.TranslateColorShade(b.Hue, b.Shade))
	}

	for _, lb := range s.Labels.All() {
		if !lb.Shown(s.Time) {
			continue
		}
		at := lb.At
		if !lb.Object.IsNone() {
			m := s.Objects.Motion(lb.Object)
			if m == nil {
				continue
			}
			at = v.ToScreen(m.Location)
		}
		drawLine(c, f, lb.Text, at.Add(lb.Offset), render.TranslateColorShade(lb.Hue, render.ShadeLight))
	}

	if msg, ok := s.Messages.Status(s.Time); ok {
		at := image.Pt(v.Bounds.Min.X+4, v.Bounds.Max.Y-f.Height-4)
		drawLine(c, f, msg.Text, at, render.TranslateColorShade(msg.Hue, render.ShadeLightest))
	}
}

func drawLine(c render.Canvas, f *render.Font, text string, at image.Point, col color.RGBA) {
	t := render.Plain(text, render.WrapMetrics{Font: f, Width: 1 << 16}, col, render.Black)
	t.Draw(c, image.Rectangle{Min: at, Max: at.Add(image.Pt(t.AutoWidth(), t.Height()))})
}
