package game

import (
	"image"

	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// MaximumRelevantDistance is the largest coordinate delta whose square
// still fits the 32-bit distance path.
const MaximumRelevantDistance = 46340

// selectArc is the half-width, in degrees, of the cone searched ahead of a
// ship when cycling selections.
const selectArc = 60

// Allegiance filters candidates by owner relative to the picking ship.
type Allegiance int

const (
	Friendly Allegiance = iota
	Hostile
	FriendlyOrHostile
)

func absDelta(a, b int32) uint64 {
	d := int64(a) - int64(b)
	if d < 0 {
		d = -d
	}
	return uint64(d)
}

// wideDistance returns the squared distance between two universe points.
// Deltas under MaximumRelevantDistance use 32-bit arithmetic, which is
// exact there.
func wideDistance(a, b world.Point) uint64 {
	dh, dv := absDelta(a.H, b.H), absDelta(a.V, b.V)
	if dh > MaximumRelevantDistance || dv > MaximumRelevantDistance {
		return dh*dh + dv*dv
	}
	h, v := uint32(dh), uint32(dv)
	return uint64(h*h + v*v)
}

func (s *Sim) allegiant(obj *SpaceObject, owner int, a Allegiance) bool {
	switch a {
	case Friendly:
		return obj.Owner == owner
	case Hostile:
		return obj.Owner != owner
	}
	return true
}

func (s *Sim) selectable(h, origin Handle, obj *SpaceObject, owner int, attrs, nonattrs world.Attributes, a Allegiance) bool {
	return h != origin && obj != nil && obj.Active &&
		obj.Attributes&attrs != 0 && obj.Attributes&nonattrs == 0 &&
		s.allegiant(obj, owner, a)
}

// ManualSelectObject picks the next object ahead of origin: the nearest
// candidate within the arc around direction that is farther away than
// current. When none is farther it wraps to the nearest candidate.
func (s *Sim) ManualSelectObject(origin Handle, direction int, current Handle, attrs, nonattrs world.Attributes, a Allegiance) Handle {
	from := s.Objects.Motion(origin)
	ship := s.Objects.Get(origin)
	if from == nil || ship == nil {
		return None()
	}

	var floor uint64
	hasFloor := false
	if m := s.Objects.Motion(current); m != nil && s.Objects.Live(current) {
		floor, hasFloor = wideDistance(from.Location, m.Location), true
	}

	next, first := None(), None()
	var nextDist, firstDist uint64
	for _, h := range s.Objects.All() {
		obj := s.Objects.Get(h)
		if h == current || !s.selectable(h, origin, obj, ship.Owner, attrs, nonattrs, a) {
			continue
		}
		m := s.Objects.Motion(h)
		dx := float64(int64(m.Location.H) - int64(from.Location.H))
		dy := float64(int64(m.Location.V) - int64(from.Location.V))
		bearing := world.AddAngle(world.AngleFromVector(dx, dy), 180)
		if d := world.AngleDifference(bearing, direction); d > selectArc || d < -selectArc {
			continue
		}
		dist := wideDistance(from.Location, m.Location)
		if first.IsNone() || dist < firstDist {
			first, firstDist = h, dist
		}
		if (!hasFloor || dist > floor) && (next.IsNone() || dist < nextDist) {
			next, nextDist = h, dist
		}
	}
	if !next.IsNone() {
		return next
	}
	if !first.IsNone() {
		return first
	}
	return current
}

// PointSelectObject returns an object inside bounds (universe coordinates).
// If current is among the hits, the one after it is returned.
func (s *Sim) PointSelectObject(bounds image.Rectangle, origin Handle, current Handle, attrs world.Attributes, a Allegiance) Handle {
	ship := s.Objects.Get(origin)
	if ship == nil {
		return None()
	}
	var hits []Handle
	for _, h := range s.Objects.All() {
		obj := s.Objects.Get(h)
		if !s.selectable(h, None(), obj, ship.Owner, attrs, 0, a) {
			continue
		}
		m := s.Objects.Motion(h)
		if image.Pt(int(m.Location.H), int(m.Location.V)).In(bounds) {
			hits = append(hits, h)
		}
	}
	if len(hits) == 0 {
		return None()
	}
	for i, h := range hits {
		if h == current {
			return hits[(i+1)%len(hits)]
		}
	}
	return hits[0]
}
