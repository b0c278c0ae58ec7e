package game

import (
	"image"
	"math"

	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// Zoom is the view scale mode, most magnified first.
type Zoom int

const (
	ZoomDouble Zoom = iota
	ZoomActual
	ZoomHalf
	ZoomQuarter
	ZoomSixteenth
	ZoomFoe
	ZoomObject
	ZoomAll
)

var zoomNames = [...]string{
	"Zoom 2:1", "Zoom 1:1", "Zoom 1:2", "Zoom 1:4", "Zoom 1:16",
	"Zoom to nearest hostile", "Zoom to selected object", "Zoom to all",
}

func (z Zoom) String() string {
	if z >= 0 && int(z) < len(zoomNames) {
		return zoomNames[z]
	}
	return "Zoom"
}

var fixedScales = [...]int32{
	ZoomDouble:    world.ScaleScale * 2,
	ZoomActual:    world.ScaleScale,
	ZoomHalf:      world.ScaleScale / 2,
	ZoomQuarter:   world.ScaleScale / 4,
	ZoomSixteenth: world.ScaleScale / 16,
}

const minScale = world.ScaleScale / 64

// View maps universe coordinates onto a screen rectangle.
type View struct {
	Center world.Point
	Scale  int32
	Bounds image.Rectangle
}

// ToScreen converts a universe point to screen pixels.
func (v View) ToScreen(p world.Point) image.Point {
	c := v.Bounds.Min.Add(v.Bounds.Size().Div(2))
	return image.Point{
		X: c.X + int((int64(p.H)-int64(v.Center.H))*int64(v.Scale)/world.ScaleScale),
		Y: c.Y + int((int64(p.V)-int64(v.Center.V))*int64(v.Scale)/world.ScaleScale),
	}
}

// ToUniverse converts screen pixels to a universe point.
func (v View) ToUniverse(p image.Point) world.Point {
	c := v.Bounds.Min.Add(v.Bounds.Size().Div(2))
	scale := int64(max(v.Scale, 1))
	return world.Point{
		H: int32(int64(v.Center.H) + int64(p.X-c.X)*world.ScaleScale/scale),
		V: int32(int64(v.Center.V) + int64(p.Y-c.Y)*world.ScaleScale/scale),
	}
}

// ViewFor centers on the player's ship at the current zoom mode.
func (s *Sim) ViewFor(bounds image.Rectangle) View {
	v := View{
		Center: world.Point{H: world.UniversalCenter, V: world.UniversalCenter},
		Scale:  world.ScaleScale,
		Bounds: bounds,
	}
	if m := s.Objects.Motion(s.Ship); m != nil {
		v.Center = m.Location
	}
	half := int64(min(bounds.Dx(), bounds.Dy()) / 2)
	fit := func(d uint64) int32 {
		dist := int64(math.Sqrt(float64(d))) + 1
		return int32(max(min(world.ScaleScale*half/dist, int64(fixedScales[ZoomDouble])), minScale))
	}

	switch s.Zoom {
	case ZoomFoe:
		v.Scale = fit(s.nearest(v.Center, func(o *SpaceObject) bool {
			return o.Owner != s.PlayerAdmiral && o.Attributes&world.CanBeEngaged != 0
		}))
	case ZoomObject:
		var d uint64
		if a := s.admiral(s.PlayerAdmiral); a != nil {
			if m := s.Objects.Motion(a.Control); m != nil {
				d = wideDistance(v.Center, m.Location)
			}
		}
		v.Scale = fit(d)
	case ZoomAll:
		var far uint64
		for _, h := range s.Objects.All() {
			if m := s.Objects.Motion(h); m != nil {
				far = max(far, wideDistance(v.Center, m.Location))
			}
		}
		v.Scale = fit(far)
	default:
		if s.Zoom >= 0 && int(s.Zoom) < len(fixedScales) {
			v.Scale = fixedScales[s.Zoom]
		}
	}
	return v
}

// nearest returns the squared distance to the closest active object
// matching keep, or 0 if none does.
func (s *Sim) nearest(from world.Point, keep func(*SpaceObject) bool) uint64 {
	var best uint64
	found := false
	for _, h := range s.Objects.All() {
		obj := s.Objects.Get(h)
		if obj == nil || !obj.Active || h == s.Ship || !keep(obj) {
			continue
		}
		d := wideDistance(from, s.Objects.Motion(h).Location)
		if !found || d < best {
			best, found = d, true
		}
	}
	return best
}
