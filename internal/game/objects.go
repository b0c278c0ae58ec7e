package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// Handle is a weak reference to a space object. A handle to a removed
// object stays comparable but no longer dereferences.
type Handle struct {
	e ecs.Entity
}

// None returns the handle that never refers to an object.
func None() Handle { return Handle{} }

// IsNone reports whether h is the none handle.
func (h Handle) IsNone() bool { return h.e == ecs.Entity{} }

func (h Handle) String() string {
	if h.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%v", h.e)
}

// SpaceObject is the gameplay state of one object in the universe.
type SpaceObject struct {
	ID         int64
	Base       int
	Owner      int // admiral index, -1 for none
	Attributes world.Attributes
	Name       string
	Sprite     int // sprite table, or world.NoSpriteTable
	Active     bool
	Health     int
	Direction  int
	KeysDown   uint32
	Earning    float64
	CanBuild   []int // build classes

	Dest     Handle
	DestID   int64
	Arrived  bool
	ExpireAt int64 // tick, zero never
	NextFire [3]int64

	// Warping is set once the warp key has been held for warpWarmup ticks.
	Warping    bool
	WarpCharge int
}

// Motion is a space object's kinematic state in universe coordinates.
type Motion struct {
	Location world.Point
	VelH     int32
	VelV     int32
}

// Objects is the arena of space objects. Pointers returned by Get and
// Motion are valid until the next Spawn.
type Objects struct {
	world   *ecs.World
	objects *ecs.Map[SpaceObject]
	motion  *ecs.Map[Motion]
	builder *ecs.Map2[SpaceObject, Motion]
	roots   []Handle
	nextID  int64
}

// NewObjects creates an empty arena.
func NewObjects() *Objects {
	w := ecs.NewWorld(256)
	return &Objects{
		world:   w,
		objects: ecs.NewMap[SpaceObject](w),
		motion:  ecs.NewMap[Motion](w),
		builder: ecs.NewMap2[SpaceObject, Motion](w),
		nextID:  1,
	}
}

// Reset removes every object. Handles issued before stay stale.
func (o *Objects) Reset() {
	for _, h := range o.roots {
		if o.alive(h) {
			o.world.RemoveEntity(h.e)
		}
	}
	o.roots = o.roots[:0]
}

// Spawn adds an active object and returns its handle.
func (o *Objects) Spawn(obj SpaceObject, m Motion) Handle {
	obj.ID = o.nextID
	obj.Active = true
	o.nextID++
	h := Handle{o.builder.NewEntity(&obj, &m)}
	o.roots = append(o.roots, h)
	return h
}

func (o *Objects) alive(h Handle) bool {
	return !h.IsNone() && o.world.Alive(h.e)
}

// Get dereferences h, or returns nil for none and stale handles.
func (o *Objects) Get(h Handle) *SpaceObject {
	if !o.alive(h) {
		return nil
	}
	return o.objects.Get(h.e)
}

// Motion returns the kinematic state of h, or nil.
func (o *Objects) Motion(h Handle) *Motion {
	if !o.alive(h) {
		return nil
	}
	return o.motion.Get(h.e)
}

// Live reports whether h refers to an active object.
func (o *Objects) Live(h Handle) bool {
	obj := o.Get(h)
	return obj != nil && obj.Active
}

// All returns every object in spawn order, active or not.
func (o *Objects) All() []Handle {
	out := make([]Handle, len(o.roots))
	copy(out, o.roots)
	return out
}

// Len returns the number of objects in the arena.
func (o *Objects) Len() int { return len(o.roots) }

// Cull removes inactive objects and returns how many went.
func (o *Objects) Cull() int {
	kept := o.roots[:0]
	culled := 0
	for _, h := range o.roots {
		obj := o.Get(h)
		if obj == nil {
			continue
		}
		if !obj.Active {
			o.world.RemoveEntity(h.e)
			culled++
			continue
		}
		kept = append(kept, h)
	}
	o.roots = kept
	return culled
}

// Moving visits the motion of every active object.
func (o *Objects) Moving(fn func(obj *SpaceObject, m *Motion)) {
	query := ecs.NewFilter2[SpaceObject, Motion](o.world).Query()
	for query.Next() {
		obj, m := query.Get()
		if obj.Active {
			fn(obj, m)
		}
	}
}
