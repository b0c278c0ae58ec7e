package world

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownObject is returned when scenario data names a base object the
// catalog lacks.
var ErrUnknownObject = errors.New("unknown base object")

type actionJSON struct {
	Verb              Verb     `json:"verb"`
	Delay             int      `json:"delay"`
	Reflexive         bool     `json:"reflexive"`
	Filter            Filter   `json:"filter"`
	Base              string   `json:"base"`
	Count             [2]int   `json:"count"`
	RelativeVelocity  bool     `json:"relative-velocity"`
	RelativeDirection bool     `json:"relative-direction"`
	Distance          int32    `json:"distance"`
	Sound             [2]int   `json:"sound"`
	Relative          bool     `json:"relative"`
	Player            int      `json:"player"`
	NextLevel         int      `json:"next-level"`
	Text              string   `json:"text"`
	Pages             []string `json:"pages"`
	Counter           int      `json:"counter"`
	Amount            int      `json:"amount"`
}

type baseObjectJSON struct {
	Name        string       `json:"name"`
	ShortName   string       `json:"short-name"`
	Tag         string       `json:"tag"`
	Attributes  Attributes   `json:"attributes"`
	Class       *int         `json:"class"`
	Race        int          `json:"race"`
	Sprite      *int         `json:"sprite"`
	Portrait    string       `json:"portrait"`
	Health      int          `json:"health"`
	MaxVelocity int32        `json:"max-velocity"`
	TurnRate    int32        `json:"turn-rate"`
	Price       int          `json:"price"`
	Damage      int          `json:"damage"`
	Lifetime    int          `json:"lifetime"`
	Pulse       string       `json:"pulse"`
	Beam        string       `json:"beam"`
	Special     string       `json:"special"`
	Destroy     []actionJSON `json:"destroy"`
	Expire      []actionJSON `json:"expire"`
	Create      []actionJSON `json:"create"`
	Collide     []actionJSON `json:"collide"`
	Activate    []actionJSON `json:"activate"`
	Arrive      []actionJSON `json:"arrive"`
}

type infoJSON struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	Version      string `json:"version"`
	EnergyBlob   string `json:"energy-blob"`
	WarpInFlare  string `json:"warp-in-flare"`
	WarpOutFlare string `json:"warp-out-flare"`
	PlayerBody   string `json:"player-body"`
}

type catalogJSON struct {
	Races []struct {
		ID            int     `json:"id"`
		ApparentColor uint8   `json:"color"`
		IllegalColors uint32  `json:"illegal-colors"`
		Advantage     float64 `json:"advantage"`
	} `json:"races"`
	Objects []baseObjectJSON `json:"objects"`
}

// LoadCatalog parses a scenario's info and base object files. References
// between objects are by name; a missing blessed object is left as -1 and
// reported when a level is constructed.
func LoadCatalog(infoData, objectData []byte) (*Catalog, error) {
	var info infoJSON
	if err := json.Unmarshal(infoData, &info); err != nil {
		return nil, fmt.Errorf("parse info: %w", err)
	}
	var raw catalogJSON
	if err := json.Unmarshal(objectData, &raw); err != nil {
		return nil, fmt.Errorf("parse objects: %w", err)
	}

	c := &Catalog{byName: make(map[string]int, len(raw.Objects))}
	for i, o := range raw.Objects {
		if o.Name == "" {
			return nil, fmt.Errorf("object %d has no name", i)
		}
		if _, dup := c.byName[o.Name]; dup {
			return nil, fmt.Errorf("duplicate object %q", o.Name)
		}
		c.byName[o.Name] = i
	}

	optional := func(name string) (int, error) {
		if name == "" {
			return -1, nil
		}
		return c.resolve(name)
	}

	var err error
	c.Info = Info{Title: info.Title, Author: info.Author, Version: info.Version}
	if c.Info.EnergyBlob, err = optional(info.EnergyBlob); err != nil {
		return nil, fmt.Errorf("info energy-blob: %w", err)
	}
	if c.Info.WarpInFlare, err = optional(info.WarpInFlare); err != nil {
		return nil, fmt.Errorf("info warp-in-flare: %w", err)
	}
	if c.Info.WarpOutFlare, err = optional(info.WarpOutFlare); err != nil {
		return nil, fmt.Errorf("info warp-out-flare: %w", err)
	}
	if c.Info.PlayerBody, err = optional(info.PlayerBody); err != nil {
		return nil, fmt.Errorf("info player-body: %w", err)
	}

	for _, r := range raw.Races {
		c.Races = append(c.Races, Race{
			ID:            r.ID,
			ApparentColor: r.ApparentColor,
			IllegalColors: r.IllegalColors,
			Advantage:     r.Advantage,
		})
	}

	c.Objects = make([]BaseObject, len(raw.Objects))
	for i, o := range raw.Objects {
		b := BaseObject{
			Number:      i,
			Name:        o.Name,
			ShortName:   o.ShortName,
			Tag:         o.Tag,
			Attributes:  o.Attributes,
			Class:       NoClass,
			Race:        o.Race,
			PixResID:    NoSpriteTable,
			Portrait:    o.Portrait,
			Health:      o.Health,
			MaxVelocity: o.MaxVelocity,
			TurnRate:    o.TurnRate,
			Price:       o.Price,
			Damage:      o.Damage,
			Lifetime:    o.Lifetime,
		}
		if o.Class != nil {
			b.Class = *o.Class
		}
		if o.Sprite != nil {
			b.PixResID = *o.Sprite
		}
		if b.ShortName == "" {
			b.ShortName = b.Name
		}
		for _, w := range []struct {
			name string
			dst  *Weapon
		}{{o.Pulse, &b.Pulse}, {o.Beam, &b.Beam}, {o.Special, &b.Special}} {
			if w.dst.Base, err = optional(w.name); err != nil {
				return nil, fmt.Errorf("object %q weapon: %w", o.Name, err)
			}
		}
		lists := []struct {
			verb string
			src  []actionJSON
			dst  *[]Action
		}{
			{"destroy", o.Destroy, &b.Destroy},
			{"expire", o.Expire, &b.Expire},
			{"create", o.Create, &b.Create},
			{"collide", o.Collide, &b.Collide},
			{"activate", o.Activate, &b.Activate},
			{"arrive", o.Arrive, &b.Arrive},
		}
		for _, l := range lists {
			if *l.dst, err = c.actions(l.src); err != nil {
				return nil, fmt.Errorf("object %q %s: %w", o.Name, l.verb, err)
			}
		}
		c.Objects[i] = b
	}
	return c, nil
}

func (c *Catalog) resolve(name string) (int, error) {
	n, ok := c.byName[name]
	if !ok {
		return -1, fmt.Errorf("%w %q", ErrUnknownObject, name)
	}
	return n, nil
}

func (c *Catalog) actions(raw []actionJSON) ([]Action, error) {
	out := make([]Action, 0, len(raw))
	for i, r := range raw {
		a := Action{
			Verb:              r.Verb,
			Delay:             r.Delay,
			Reflexive:         r.Reflexive,
			Filter:            r.Filter,
			Base:              -1,
			CountMin:          r.Count[0],
			CountRange:        r.Count[1],
			RelativeVelocity:  r.RelativeVelocity,
			RelativeDirection: r.RelativeDirection,
			Distance:          r.Distance,
			SoundMin:          r.Sound[0],
			SoundRange:        r.Sound[1],
			Relative:          r.Relative,
			Player:            r.Player,
			NextLevel:         r.NextLevel,
			Text:              r.Text,
			Pages:             r.Pages,
			Counter:           r.Counter,
			Amount:            r.Amount,
		}
		switch r.Verb {
		case CreateObject, CreateObjectSetDest, AlterBaseType:
			n, err := c.resolve(r.Base)
			if err != nil {
				return nil, fmt.Errorf("action %d (%s): %w", i, r.Verb, err)
			}
			a.Base = n
			if a.CountMin == 0 && a.CountRange == 0 {
				a.CountMin = 1
			}
		}
		out = append(out, a)
	}
	return out, nil
}

type levelJSON struct {
	Name      string    `json:"name"`
	Chapter   int       `json:"chapter"`
	Type      LevelType `json:"type"`
	Angle     *int      `json:"angle"`
	StartTime int       `json:"start-time"`
	Players   []Player  `json:"players"`
	Initials  []struct {
		Type          string   `json:"type"`
		Owner         *int     `json:"owner"`
		At            [2]int32 `json:"at"`
		Earning       float64  `json:"earning"`
		DistanceRange int32    `json:"distance-range"`
		Rotation      [2]int   `json:"rotation"`
		Sprite        *int     `json:"sprite"`
		Builds        []int    `json:"builds"`
		Destination   *int     `json:"destination"`
		Name          string   `json:"name"`
		Hidden        bool     `json:"hidden"`
		Flagship      bool     `json:"flagship"`
	} `json:"initials"`
	Conditions []struct {
		Kind     ConditionKind `json:"kind"`
		Subject  *int          `json:"subject"`
		Direct   *int          `json:"direct"`
		Actions  []actionJSON  `json:"actions"`
		Once     bool          `json:"once"`
		Initial  bool          `json:"initially-true"`
		Ticks    int           `json:"ticks"`
		Player   int           `json:"player"`
		Counter  int           `json:"counter"`
		Amount   int           `json:"amount"`
		Distance int32         `json:"distance"`
		Value    int           `json:"value"`
	} `json:"conditions"`
	Briefing []struct {
		Kind    string   `json:"kind"`
		Object  int      `json:"object"`
		Visible bool     `json:"visible"`
		At      [2]int32 `json:"at"`
		Range   [2]int32 `json:"range"`
		Title   string   `json:"title"`
		Content string   `json:"content"`
	} `json:"briefing"`
	ScoreStrings []string `json:"score-strings"`
	Prologue     string   `json:"prologue"`
	Epilogue     string   `json:"epilogue"`
	StarMap      [2]int32 `json:"star-map"`
	Solo         struct {
		NoShips string `json:"no-ships"`
	} `json:"solo"`
	Net struct {
		OwnNoShips string `json:"own-no-ships"`
		FoeNoShips string `json:"foe-no-ships"`
	} `json:"net"`
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// LoadLevel parses a level from JSON bytes, resolving base object names
// against cat.
func LoadLevel(data []byte, cat *Catalog) (*Level, error) {
	var raw levelJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if len(raw.Players) == 0 || len(raw.Players) > MaxPlayers {
		return nil, fmt.Errorf("level %q: %d players, want 1..%d", raw.Name, len(raw.Players), MaxPlayers)
	}

	l := &Level{
		Name:          raw.Name,
		Chapter:       raw.Chapter,
		Type:          raw.Type,
		Angle:         intOr(raw.Angle, -1),
		StartTime:     raw.StartTime,
		Players:       raw.Players,
		ScoreStrings:  raw.ScoreStrings,
		Prologue:      raw.Prologue,
		Epilogue:      raw.Epilogue,
		StarMap:       Point{raw.StarMap[0], raw.StarMap[1]},
		SoloNoShips:   raw.Solo.NoShips,
		NetOwnNoShips: raw.Net.OwnNoShips,
		NetFoeNoShips: raw.Net.FoeNoShips,
	}
	if l.StartTime < 0 {
		return nil, fmt.Errorf("level %q: negative start time", raw.Name)
	}

	n := len(raw.Initials)
	inRange := func(p *int) bool { return p == nil || (*p >= 0 && *p < n) }

	for i, in := range raw.Initials {
		base, err := cat.resolve(in.Type)
		if err != nil {
			return nil, fmt.Errorf("level %q initial %d: %w", raw.Name, i, err)
		}
		owner := intOr(in.Owner, -1)
		if owner >= len(l.Players) {
			return nil, fmt.Errorf("level %q initial %d: owner %d out of range", raw.Name, i, owner)
		}
		if !inRange(in.Destination) {
			return nil, fmt.Errorf("level %q initial %d: destination %d out of range", raw.Name, i, *in.Destination)
		}
		if len(in.Builds) > MaxTypeBaseCanBuild {
			return nil, fmt.Errorf("level %q initial %d: more than %d builds", raw.Name, i, MaxTypeBaseCanBuild)
		}
		l.Initials = append(l.Initials, InitialObject{
			Base:               base,
			Owner:              owner,
			Location:           Point{in.At[0], in.At[1]},
			Earning:            in.Earning,
			DistanceRange:      in.DistanceRange,
			RotationMin:        in.Rotation[0],
			RotationRange:      in.Rotation[1],
			SpriteOverride:     intOr(in.Sprite, -1),
			CanBuild:           in.Builds,
			InitialDestination: intOr(in.Destination, -1),
			Name:               in.Name,
			Hidden:             in.Hidden,
			Flagship:           in.Flagship,
		})
	}

	for i, rc := range raw.Conditions {
		if !inRange(rc.Subject) || !inRange(rc.Direct) {
			return nil, fmt.Errorf("level %q condition %d: object out of range", raw.Name, i)
		}
		actions, err := cat.actions(rc.Actions)
		if err != nil {
			return nil, fmt.Errorf("level %q condition %d: %w", raw.Name, i, err)
		}
		c := Condition{
			Kind:     rc.Kind,
			Subject:  intOr(rc.Subject, -1),
			Direct:   intOr(rc.Direct, -1),
			Actions:  actions,
			Ticks:    rc.Ticks,
			Player:   rc.Player,
			Counter:  rc.Counter,
			Amount:   rc.Amount,
			Distance: rc.Distance,
			Value:    rc.Value,
		}
		if rc.Once {
			c.Flags |= TrueOnlyOnce
		}
		if rc.Initial {
			c.Flags |= InitiallyTrue
		}
		l.Conditions = append(l.Conditions, c)
	}

	for i, b := range raw.Briefing {
		bp := BriefPoint{
			Object:   b.Object,
			Visible:  b.Visible,
			Location: Point{b.At[0], b.At[1]},
			Range:    Point{b.Range[0], b.Range[1]},
			Title:    b.Title,
			Content:  b.Content,
		}
		switch b.Kind {
		case "object":
			bp.Kind = BriefObjectKind
			if b.Object < 0 || b.Object >= n {
				return nil, fmt.Errorf("level %q brief point %d: object out of range", raw.Name, i)
			}
		case "absolute":
			bp.Kind = BriefAbsoluteKind
		case "freestanding", "":
			bp.Kind = BriefFreestandingKind
		default:
			return nil, fmt.Errorf("level %q brief point %d: unknown kind %q", raw.Name, i, b.Kind)
		}
		l.BriefPoints = append(l.BriefPoints, bp)
	}
	return l, nil
}
