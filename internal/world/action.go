package world

import "fmt"

// Verb selects what an action does.
type Verb uint8

const (
	NoAction Verb = iota
	CreateObject
	CreateObjectSetDest
	PlaySound
	AlterBaseType
	AlterOwner
	DeclareWinner
	DisplayMessage
	ChangeScore
)

var verbNames = [...]string{
	"no-action", "create-object", "create-object-set-dest", "play-sound",
	"alter-base-type", "alter-owner", "declare-winner", "display-message", "change-score",
}

func (v Verb) String() string {
	if int(v) < len(verbNames) {
		return verbNames[v]
	}
	return fmt.Sprintf("verb(%d)", uint8(v))
}

// UnmarshalText parses a verb name.
func (v *Verb) UnmarshalText(text []byte) error {
	for i, n := range verbNames {
		if n == string(text) {
			*v = Verb(i)
			return nil
		}
	}
	return fmt.Errorf("unknown verb %q", text)
}

// Filter selects base objects, either by tag or by required attributes.
type Filter struct {
	Attributes Attributes `json:"attributes"`
	Tag        string     `json:"tag"`
}

// Action is one step of a verb list or condition. Which fields are read
// depends on Verb.
type Action struct {
	Verb  Verb
	Delay int // ticks
	// Reflexive actions apply to the subject instead of the direct object.
	Reflexive bool
	Filter    Filter

	// create-object, create-object-set-dest, alter-base-type
	Base              int
	CountMin          int
	CountRange        int
	RelativeVelocity  bool
	RelativeDirection bool
	Distance          int32

	// play-sound
	SoundMin   int
	SoundRange int

	// alter-owner, declare-winner, change-score
	Relative bool
	Player   int

	// declare-winner
	NextLevel int
	Text      string

	// display-message
	Pages []string

	// change-score
	Counter int
	Amount  int
}

// SoundIDs returns every sound id a play-sound action may choose from.
func (a *Action) SoundIDs() []int {
	if a.Verb != PlaySound {
		return nil
	}
	ids := make([]int, 0, a.SoundRange+1)
	for id := a.SoundMin; id <= a.SoundMin+a.SoundRange; id++ {
		ids = append(ids, id)
	}
	return ids
}
