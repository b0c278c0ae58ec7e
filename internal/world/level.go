package world

import "fmt"

// Binary record sizes of the scenario data format. Tools that read packed
// scenario files check record tables against these.
const (
	LevelByteSize         = 124
	InitialObjectByteSize = 108
	ConditionByteSize     = 38
	BriefPointByteSize    = 24
	RaceByteSize          = 14
)

// CheckRecords returns how many records of size recordSize fit in n bytes,
// or an error if n is not a whole number of records.
func CheckRecords(kind string, n, recordSize int) (int, error) {
	if recordSize <= 0 {
		return 0, fmt.Errorf("%s: bad record size %d", kind, recordSize)
	}
	if n%recordSize != 0 {
		return 0, fmt.Errorf("%s: %d bytes is not a multiple of %d", kind, n, recordSize)
	}
	return n / recordSize, nil
}

// MaxPlayers is the most admirals a level can seat.
const MaxPlayers = 4

// MaxTypeBaseCanBuild bounds an initial object's build list.
const MaxTypeBaseCanBuild = 12

// NoClass marks an empty build slot.
const NoClass = -1

// LevelType decides which end texts apply.
type LevelType uint8

const (
	LevelSolo LevelType = iota
	LevelNet
	LevelDemo
)

var levelTypeNames = [...]string{"solo", "net", "demo"}

func (t LevelType) String() string {
	if int(t) < len(levelTypeNames) {
		return levelTypeNames[t]
	}
	return fmt.Sprintf("level-type(%d)", uint8(t))
}

// UnmarshalText parses a level type name.
func (t *LevelType) UnmarshalText(text []byte) error {
	for i, n := range levelTypeNames {
		if n == string(text) {
			*t = LevelType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown level type %q", text)
}

// PlayerType says who drives an admiral.
type PlayerType int

const (
	SingleHumanPlayer  PlayerType = 0
	NetworkHumanPlayer PlayerType = 1
	ComputerPlayer     PlayerType = 2
)

// UnmarshalText accepts "human", "network" or "computer".
func (t *PlayerType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "human":
		*t = SingleHumanPlayer
	case "network":
		*t = NetworkHumanPlayer
	case "computer":
		*t = ComputerPlayer
	default:
		return fmt.Errorf("unknown player type %q", text)
	}
	return nil
}

// Player is one admiral slot of a level.
type Player struct {
	Type PlayerType `json:"type"`
	Race int        `json:"race"`
	// Color is the admiral's hue; zero takes the race's apparent color.
	Color        uint8   `json:"color"`
	Name         string  `json:"name"`
	EarningPower float64 `json:"earning-power"`
}

// Point is a position in level (unrotated) or universe coordinates.
type Point struct {
	H, V int32
}

// InitialObject places a base object when the level starts.
type InitialObject struct {
	Base          int
	Owner         int // admiral index, -1 for none
	Location      Point
	Earning       float64
	DistanceRange int32
	RotationMin   int
	RotationRange int
	// SpriteOverride replaces the base object's sprite table, or -1.
	SpriteOverride     int
	CanBuild           []int
	InitialDestination int // initial object index, -1 for none
	Name               string
	Hidden             bool
	// Flagship makes the object its owner's flagship.
	Flagship bool
}

// ConditionFlags record a condition's truth history.
type ConditionFlags uint32

const (
	TrueOnlyOnce  ConditionFlags = 0x1
	InitiallyTrue ConditionFlags = 0x2
	HasBeenTrue   ConditionFlags = 0x4
)

// ConditionKind selects the test a condition runs.
type ConditionKind uint8

const (
	NoCondition ConditionKind = iota
	TimeCondition
	DestructionCondition
	NoShipsLeftCondition
	CounterCondition
	CounterGreaterCondition
	CounterNotCondition
	OwnerCondition
	HalfHealthCondition
	ProximityCondition
	ZoomLevelCondition
	AutopilotCondition
	NotAutopilotCondition
)

var conditionNames = [...]string{
	"none", "time", "destruction", "no-ships-left", "counter", "counter-greater",
	"counter-not", "owner", "half-health", "proximity", "zoom-level", "autopilot",
	"not-autopilot",
}

func (k ConditionKind) String() string {
	if int(k) < len(conditionNames) {
		return conditionNames[k]
	}
	return fmt.Sprintf("condition(%d)", uint8(k))
}

// UnmarshalText parses a condition kind name.
func (k *ConditionKind) UnmarshalText(text []byte) error {
	for i, n := range conditionNames {
		if n == string(text) {
			*k = ConditionKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown condition %q", text)
}

// Condition is a level trigger: when its test passes, its actions run.
type Condition struct {
	Kind    ConditionKind
	Subject int // initial object index, -1 for none
	Direct  int // initial object index, -1 for none
	Actions []Action
	Flags   ConditionFlags

	// Arguments; which apply depends on Kind.
	Ticks    int
	Player   int
	Counter  int
	Amount   int
	Distance int32
	Value    int
}

// TrueYet reports whether the condition has ever fired.
func (c *Condition) TrueYet() bool { return c.Flags&HasBeenTrue != 0 }

// SetTrueYet records whether the condition has fired.
func (c *Condition) SetTrueYet(v bool) {
	if v {
		c.Flags |= HasBeenTrue
	} else {
		c.Flags &^= HasBeenTrue
	}
}

// Active reports whether the condition may still fire.
func (c *Condition) Active() bool {
	return c.Flags&TrueOnlyOnce == 0 || !c.TrueYet()
}

// BriefPointKind says what a briefing point is attached to.
type BriefPointKind uint8

const (
	NoPointKind BriefPointKind = iota
	BriefObjectKind
	BriefAbsoluteKind
	BriefFreestandingKind
)

// BriefPoint is one page of the mission briefing.
type BriefPoint struct {
	Kind     BriefPointKind
	Object   int // initial object index for BriefObjectKind
	Visible  bool
	Location Point
	Range    Point
	Title    string
	Content  string
}

// Level is a fully resolved level: base object names are replaced by
// catalog numbers.
type Level struct {
	Name      string
	Chapter   int
	Type      LevelType
	Angle     int // degrees; negative picks a random angle
	StartTime int // seconds of simulation run before play starts

	Players     []Player
	Initials    []InitialObject
	Conditions  []Condition
	BriefPoints []BriefPoint

	ScoreStrings []string
	Prologue     string
	Epilogue     string
	StarMap      Point

	SoloNoShips   string
	NetOwnNoShips string
	NetFoeNoShips string
}

// CloneConditions returns a copy of the conditions whose flags the
// simulation may mutate without touching the level.
func (l *Level) CloneConditions() []Condition {
	out := make([]Condition, len(l.Conditions))
	copy(out, l.Conditions)
	return out
}
