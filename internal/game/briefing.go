package game

import (
	"fmt"
	"image"

	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// BriefingPage returns brief point i as retro text sized to width, and the
// screen point it refers to on view, if any.
func (s *Sim) BriefingPage(i int, f *render.Font, width int, v View) (*render.StyledText, image.Point, bool, error) {
	l := s.Level
	if l == nil || i < 0 || i >= len(l.BriefPoints) {
		return nil, image.Point{}, false, fmt.Errorf("brief point %d out of range", i)
	}
	bp := &l.BriefPoints[i]
	m := render.WrapMetrics{Font: f, Width: width, LineSpacing: 2}
	text := bp.Content
	if bp.Title != "" {
		text = "\\i" + bp.Title + "\\r\n" + text
	}
	t, err := render.Retro(text, m, render.TranslateColorShade(render.HueGray, render.ShadeLightest), render.Black)
	if err != nil {
		return nil, image.Point{}, false, fmt.Errorf("brief point %d: %w", i, err)
	}

	switch bp.Kind {
	case world.BriefObjectKind:
		if in := s.Initial(bp.Object); !in.IsNone() {
			if mo := s.Objects.Motion(in); mo != nil {
				return t, v.ToScreen(mo.Location), true, nil
			}
		}
		return t, v.ToScreen(world.RotateCoords(l.Initials[bp.Object].Location, s.Angle)), true, nil
	case world.BriefAbsoluteKind:
		return t, v.ToScreen(world.RotateCoords(bp.Location, s.Angle)), true, nil
	}
	return t, image.Point{}, false, nil
}

// DrawBriefing draws the star map of the constructed level in mapArea and
// every brief point's text below it, one after another.
func (s *Sim) DrawBriefing(c render.Canvas, f *render.Font, mapArea, textArea image.Rectangle) error {
	v := BriefingView(s.Level, s.Angle, mapArea)
	for _, b := range s.Blips(v) {
		if !b.At.In(mapArea) {
			continue
		}
		c.DrawGlyph(f, b.At.Sub(image.Pt(f.LogicalWidth/2, -f.Ascent/2)), b.Glyph, render.TranslateColorShade(b.Hue, b.Shade))
	}

	y := textArea.Min.Y
	mark := render.TranslateColorShade(render.HueGold, render.ShadeLight)
	for i := range s.Level.BriefPoints {
		t, at, ok, err := s.BriefingPage(i, f, textArea.Dx(), v)
		if err != nil {
			return err
		}
		if ok {
			box := image.Rectangle{Min: at, Max: at}.Inset(-6)
			c.FillRect(image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+1), mark)
			c.FillRect(image.Rect(box.Min.X, box.Max.Y-1, box.Max.X, box.Max.Y), mark)
			c.FillRect(image.Rect(box.Min.X, box.Min.Y, box.Min.X+1, box.Max.Y), mark)
			c.FillRect(image.Rect(box.Max.X-1, box.Min.Y, box.Max.X, box.Max.Y), mark)
		}
		if y+t.Height() > textArea.Max.Y {
			break
		}
		t.Draw(c, image.Rect(textArea.Min.X, y, textArea.Max.X, y+t.Height()))
		y += t.Height() + f.Height
	}
	return nil
}
