package world

import (
	"image"
	"math"
)

const (
	// UniversalCenter is the universe coordinate of a level's origin.
	UniversalCenter = 1 << 30
	// ScaleScale is the fixed-point unit of a zoom scale.
	ScaleScale = 4096
	// RotPos is the number of distinct directions.
	RotPos = 360
)

var rotTable [RotPos][2]int32

func init() {
	for a := range rotTable {
		rad := float64(a) * math.Pi / 180
		rotTable[a] = [2]int32{
			int32(math.Round(math.Cos(rad) * 256)),
			int32(math.Round(math.Sin(rad) * 256)),
		}
	}
}

// AddAngle returns a+b wrapped into [0, RotPos).
func AddAngle(a, b int) int {
	a = (a + b) % RotPos
	if a < 0 {
		a += RotPos
	}
	return a
}

// AngleDifference returns a-b in (-180, 180].
func AngleDifference(a, b int) int {
	d := (a - b) % RotPos
	if d > RotPos/2 {
		d -= RotPos
	} else if d <= -RotPos/2 {
		d += RotPos
	}
	return d
}

// RotPoint returns the cosine and sine of angle in 24.8 fixed point.
func RotPoint(angle int) (cos, sin int32) {
	p := rotTable[AddAngle(angle, 0)]
	return p[0], p[1]
}

// AngleFromVector returns the direction that points back along (x, y);
// add 180 degrees for the direction of the vector itself.
func AngleFromVector(x, y float64) int {
	deg := int(math.Round(math.Atan2(-y, -x) * 180 / math.Pi))
	return AddAngle(deg, 0)
}

func mulFixed(a, b int32) int32 {
	return int32((int64(a) * int64(b)) >> 8)
}

// RotateCoords turns a level location by rotation degrees about the
// universal center.
func RotateCoords(p Point, rotation int) Point {
	lcos, lsin := RotPoint(AddAngle(rotation, 90))
	return Point{
		H: UniversalCenter + mulFixed(p.H, -lcos) - mulFixed(p.V, -lsin),
		V: UniversalCenter + mulFixed(p.H, -lsin) + mulFixed(p.V, -lcos),
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// FullScaleAndCorner computes the scale and top-left universe corner at
// which every visible initial object of l fits inside bounds. It is used by
// the mission briefing.
func FullScaleAndCorner(l *Level, rotation int, bounds image.Rectangle) (corner Point, scale int32) {
	mustFit := int64(min(bounds.Dx(), bounds.Dy()))

	var biggest int64
	for _, in := range l.Initials {
		if in.Hidden {
			continue
		}
		c := RotateCoords(in.Location, rotation)
		for _, other := range l.Initials {
			o := RotateCoords(other.Location, rotation)
			biggest = max(biggest, abs64(int64(o.H)-int64(c.H)), abs64(int64(o.V)-int64(c.V)))
		}
	}
	biggest += biggest >> 2
	// A lone object has no extent; treat it as one unit wide.
	biggest = max(biggest, 1)
	s := max(ScaleScale*mustFit/biggest, 1)

	lo := Point{UniversalCenter, UniversalCenter}
	hi := lo
	for _, in := range l.Initials {
		if in.Hidden {
			continue
		}
		c := RotateCoords(in.Location, rotation)
		lo.H, lo.V = min(lo.H, c.H), min(lo.V, c.V)
		hi.H, hi.V = max(hi.H, c.H), max(hi.V, c.V)
	}

	halfW := int64(bounds.Dx()) * ScaleScale / s / 2
	halfH := int64(bounds.Dy()) * ScaleScale / s / 2
	corner = Point{
		H: int32(int64(lo.H) + int64(hi.H-lo.H)/2 - halfW),
		V: int32(int64(lo.V) + int64(hi.V-lo.V)/2 - halfH),
	}
	return corner, int32(s)
}
