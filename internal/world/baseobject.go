package world

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Attributes is the bitset of base object (and space object) attribute flags.
type Attributes uint32

const (
	CanTurn Attributes = 1 << iota
	CanBeEngaged
	HasDirectionGoal
	IsRemote
	IsHumanControlled
	IsBeam
	DoesBounce
	IsSelfAnimated
	ShapeFromDirection
	IsPlayerShip
	CanBeDestination
	CanEngage
	CanEvade
	CanAcceptMessages
	CanAcceptBuild
	CanAcceptDestination
	AutoTarget
	AnimationCycle
	CanCollide
	CanBeHit
	IsDestination
	HideEffect
	ReleaseEnergyOnDeath
	Hated
	OccupiesSpace
	StaticDestination
	CanBeEvaded
	NeutralDeath
	IsGuided
	AppearOnRadar
	Bit31
	OnAutoPilot
)

// CanThink is set on anything with its own intelligence; only those need
// per-owner sprite colors.
const CanThink = CanEngage | CanEvade | CanAcceptDestination

var attributeNames = [...]string{
	"can-turn", "can-be-engaged", "has-direction-goal", "is-remote",
	"is-human-controlled", "is-beam", "does-bounce", "is-self-animated",
	"shape-from-direction", "is-player-ship", "can-be-destination", "can-engage",
	"can-evade", "can-accept-messages", "can-accept-build", "can-accept-destination",
	"autotarget", "animation-cycle", "can-collide", "can-be-hit",
	"is-destination", "hide-effect", "release-energy-on-death", "hated",
	"occupies-space", "static-destination", "can-be-evaded", "neutral-death",
	"is-guided", "appear-on-radar", "bit-31", "on-autopilot",
}

// UnmarshalJSON reads a list of attribute names.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("attributes: %w", err)
	}
	*a = 0
outer:
	for _, n := range names {
		for bit, name := range attributeNames {
			if name == n {
				*a |= 1 << bit
				continue outer
			}
		}
		return fmt.Errorf("unknown attribute %q", n)
	}
	return nil
}

func (a Attributes) String() string {
	var parts []string
	for bit, name := range attributeNames {
		if a&(1<<bit) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// NoSpriteTable marks a base object drawn without sprites.
const NoSpriteTable = -1

// SpriteTableColorShift spaces the per-color variants of a sprite table.
const SpriteTableColorShift = 11

// Weapon is a mounted weapon: the base object it fires, or -1.
type Weapon struct {
	Base int
}

// Valid reports whether a weapon is mounted.
func (w Weapon) Valid() bool { return w.Base >= 0 }

// BaseObject is the immutable template every space object is built from.
type BaseObject struct {
	Number      int
	Name        string
	ShortName   string
	Tag         string
	Attributes  Attributes
	Class       int
	Race        int
	PixResID    int
	Portrait    string
	Health      int
	MaxVelocity int32
	TurnRate    int32
	Price       int
	// Damage is dealt to whatever this object collides with.
	Damage int
	// Lifetime in ticks; zero lives until destroyed.
	Lifetime int

	Pulse, Beam, Special Weapon

	Destroy  []Action
	Expire   []Action
	Create   []Action
	Collide  []Action
	Activate []Action
	Arrive   []Action
}

// Verbs returns the six action lists in media-loading order.
func (b *BaseObject) Verbs() [6][]Action {
	return [6][]Action{b.Destroy, b.Expire, b.Create, b.Collide, b.Activate, b.Arrive}
}

// Weapons returns the pulse, beam and special mounts.
func (b *BaseObject) Weapons() [3]Weapon {
	return [3]Weapon{b.Pulse, b.Beam, b.Special}
}

// Info names the four objects every scenario must define, plus its metadata.
type Info struct {
	Title   string
	Author  string
	Version string

	EnergyBlob   int
	WarpInFlare  int
	WarpOutFlare int
	PlayerBody   int
}

// Race is a playable faction.
type Race struct {
	ID            int
	ApparentColor uint8
	IllegalColors uint32
	Advantage     float64
}

// Catalog is the scenario's table of base objects and races.
type Catalog struct {
	Info    Info
	Objects []BaseObject
	Races   []Race

	byName map[string]int
}

// Get returns the base object with the given number, or nil.
func (c *Catalog) Get(n int) *BaseObject {
	if n < 0 || n >= len(c.Objects) {
		return nil
	}
	return &c.Objects[n]
}

// Lookup finds a base object number by name.
func (c *Catalog) Lookup(name string) (int, bool) {
	n, ok := c.byName[name]
	return n, ok
}

// ByClassRace returns the base object of a class built by a race, or -1.
func (c *Catalog) ByClassRace(class, race int) int {
	for i := range c.Objects {
		if c.Objects[i].Class == class && c.Objects[i].Race == race {
			return i
		}
	}
	return -1
}

// RaceColor returns the apparent color of a race, or 0 (gray) if unknown.
func (c *Catalog) RaceColor(race int) uint8 {
	for _, r := range c.Races {
		if r.ID == race {
			return r.ApparentColor
		}
	}
	return 0
}

// FilterApplies reports whether an action's filter selects base.
// A tag filter matches by tag; otherwise every filter attribute must be set.
func FilterApplies(f Filter, base *BaseObject) bool {
	if f.Tag != "" {
		return f.Tag == base.Tag
	}
	return base.Attributes&f.Attributes == f.Attributes
}
