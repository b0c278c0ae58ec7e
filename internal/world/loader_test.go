package world

import (
	"errors"
	"strings"
	"testing"
)

const testInfo = `{
  "title": "Test Scenario",
  "author": "tests",
  "version": "1.0",
  "energy-blob": "Energy Blob",
  "warp-in-flare": "Warp In",
  "warp-out-flare": "Warp Out",
  "player-body": "Body"
}`

const testObjects = `{
  "races": [{"id": 100, "color": 3}, {"id": 200, "color": 15}],
  "objects": [
    {"name": "Energy Blob", "sprite": 500},
    {"name": "Warp In", "sprite": 501},
    {"name": "Warp Out", "sprite": 502},
    {"name": "Body", "sprite": 510, "attributes": ["can-accept-destination", "can-turn"], "health": 100},
    {"name": "Bolt", "sprite": 520, "collide": [{"verb": "play-sound", "sound": [40, 2]}]},
    {"name": "Fighter", "class": 3, "race": 100, "sprite": 530,
     "attributes": ["can-engage", "can-evade", "can-accept-destination", "can-be-destination"],
     "pulse": "Bolt", "health": 200,
     "destroy": [{"verb": "create-object", "base": "Energy Blob", "count": [2, 1]}]},
    {"name": "Station", "sprite": 540, "attributes": ["is-destination", "can-accept-build"], "tag": "base"}
  ]
}`

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadCatalog([]byte(testInfo), []byte(testObjects))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	return c
}

func TestLoadCatalog(t *testing.T) {
	c := testCatalog(t)

	if c.Info.Title != "Test Scenario" || c.Info.PlayerBody != 3 || c.Info.EnergyBlob != 0 {
		t.Errorf("info = %+v", c.Info)
	}
	n, ok := c.Lookup("Fighter")
	if !ok || n != 5 {
		t.Fatalf("Lookup(Fighter) = %d, %v", n, ok)
	}
	f := c.Get(n)
	if f.Pulse.Base != 4 || f.Beam.Valid() || f.Special.Valid() {
		t.Errorf("weapons = %+v", f.Weapons())
	}
	if f.Attributes&CanThink == 0 {
		t.Error("fighter cannot think")
	}
	if f.Destroy[0].Base != 0 || f.Destroy[0].CountMin != 2 || f.Destroy[0].CountRange != 1 {
		t.Errorf("destroy action = %+v", f.Destroy[0])
	}
	if got := c.ByClassRace(3, 100); got != 5 {
		t.Errorf("ByClassRace = %d", got)
	}
	if got := c.ByClassRace(3, 200); got != -1 {
		t.Errorf("ByClassRace for other race = %d", got)
	}
	if c.RaceColor(200) != 15 || c.RaceColor(999) != 0 {
		t.Errorf("race colors wrong")
	}
	if c.Get(99) != nil {
		t.Error("Get out of range returned an object")
	}

	bolt := c.Get(4)
	if ids := bolt.Collide[0].SoundIDs(); len(ids) != 3 || ids[0] != 40 || ids[2] != 42 {
		t.Errorf("sound ids = %v", ids)
	}
	if bolt.Class != NoClass {
		t.Errorf("classless object got class %d", bolt.Class)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	cases := map[string]struct{ info, objects string }{
		"unknown weapon":    {testInfo, `{"objects": [{"name": "A", "pulse": "Missing"}]}`},
		"unknown blessed":   {`{"player-body": "Ghost"}`, `{"objects": [{"name": "A"}]}`},
		"unknown attribute": {testInfo, `{"objects": [{"name": "A", "attributes": ["fast"]}]}`},
		"duplicate":         {`{}`, `{"objects": [{"name": "A"}, {"name": "A"}]}`},
		"bad verb":          {`{}`, `{"objects": [{"name": "A", "expire": [{"verb": "explode"}]}]}`},
		"bad create":        {`{}`, `{"objects": [{"name": "A", "expire": [{"verb": "create-object", "base": "B"}]}]}`},
	}
	for name, tc := range cases {
		if _, err := LoadCatalog([]byte(tc.info), []byte(tc.objects)); err == nil {
			t.Errorf("%s: no error", name)
		}
	}

	_, err := LoadCatalog([]byte(testInfo), []byte(`{"objects": [{"name": "A", "beam": "Nope"}]}`))
	if !errors.Is(err, ErrUnknownObject) {
		t.Errorf("error %v does not wrap ErrUnknownObject", err)
	}
}

const testLevel = `{
  "name": "Gauntlet",
  "chapter": 2,
  "type": "solo",
  "start-time": 3,
  "players": [
    {"type": "human", "race": 100, "name": "Ishiman"},
    {"type": "computer", "race": 200, "name": "Cantharan"}
  ],
  "initials": [
    {"type": "Fighter", "owner": 0, "at": [0, 0], "destination": 1},
    {"type": "Station", "owner": 1, "at": [1000, 0], "builds": [3]},
    {"type": "Fighter", "at": [-500, 200], "hidden": true}
  ],
  "conditions": [
    {"kind": "destruction", "subject": 1, "once": true,
     "actions": [{"verb": "declare-winner", "player": 0, "next-level": 3, "text": "Won"}]},
    {"kind": "time", "ticks": 600, "initially-true": true}
  ],
  "briefing": [
    {"kind": "object", "object": 1, "title": "Target", "content": "Destroy it."},
    {"title": "Intro", "content": "Welcome."}
  ],
  "solo": {"no-ships": "All lost."}
}`

func TestLoadLevel(t *testing.T) {
	c := testCatalog(t)
	l, err := LoadLevel([]byte(testLevel), c)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}

	if l.Angle != -1 {
		t.Errorf("missing angle = %d, want -1 (random)", l.Angle)
	}
	if l.Type != LevelSolo || l.StartTime != 3 || l.SoloNoShips != "All lost." {
		t.Errorf("level header = %+v", l)
	}
	if l.Players[1].Type != ComputerPlayer {
		t.Errorf("player 1 type = %d", l.Players[1].Type)
	}
	if len(l.Initials) != 3 {
		t.Fatalf("got %d initials", len(l.Initials))
	}
	first := l.Initials[0]
	if first.Base != 5 || first.InitialDestination != 1 || first.SpriteOverride != -1 {
		t.Errorf("initial 0 = %+v", first)
	}
	if l.Initials[2].Owner != -1 || !l.Initials[2].Hidden {
		t.Errorf("initial 2 = %+v", l.Initials[2])
	}

	cond := l.Conditions[0]
	if cond.Kind != DestructionCondition || cond.Flags != TrueOnlyOnce || cond.Actions[0].Verb != DeclareWinner {
		t.Errorf("condition 0 = %+v", cond)
	}
	if l.Conditions[1].Flags&InitiallyTrue == 0 || l.Conditions[1].Subject != -1 {
		t.Errorf("condition 1 = %+v", l.Conditions[1])
	}
	if l.BriefPoints[0].Kind != BriefObjectKind || l.BriefPoints[1].Kind != BriefFreestandingKind {
		t.Errorf("brief points = %+v", l.BriefPoints)
	}
}

func TestLoadLevelErrors(t *testing.T) {
	c := testCatalog(t)
	player := `"players": [{"type": "human"}]`
	cases := map[string]string{
		"no players":        `{"players": []}`,
		"too many players":  `{"players": [{}, {}, {}, {}, {}]}`,
		"unknown object":    `{` + player + `, "initials": [{"type": "Dreadnought"}]}`,
		"owner range":       `{` + player + `, "initials": [{"type": "Body", "owner": 1}]}`,
		"destination range": `{` + player + `, "initials": [{"type": "Body", "destination": 4}]}`,
		"condition range":   `{` + player + `, "conditions": [{"kind": "time", "subject": 0}]}`,
		"brief range":       `{` + player + `, "briefing": [{"kind": "object", "object": 0}]}`,
		"player type":       `{"players": [{"type": "robot"}]}`,
		"start time":        `{` + player + `, "start-time": -1}`,
	}
	for name, data := range cases {
		if _, err := LoadLevel([]byte(data), c); err == nil {
			t.Errorf("%s: no error", name)
		} else if name == "unknown object" && !strings.Contains(err.Error(), "Dreadnought") {
			t.Errorf("unknown object error %q does not name the object", err)
		}
	}
}

func TestConditionTruth(t *testing.T) {
	c := Condition{Flags: TrueOnlyOnce}
	if !c.Active() {
		t.Fatal("fresh condition inactive")
	}
	c.SetTrueYet(true)
	if c.Active() || !c.TrueYet() {
		t.Fatal("once-only condition still active after firing")
	}
	c.SetTrueYet(false)
	if !c.Active() {
		t.Fatal("reset condition inactive")
	}

	repeat := Condition{}
	repeat.SetTrueYet(true)
	if !repeat.Active() {
		t.Fatal("repeating condition went inactive")
	}

	l := Level{Conditions: []Condition{{Flags: InitiallyTrue}}}
	clone := l.CloneConditions()
	clone[0].SetTrueYet(true)
	if l.Conditions[0].TrueYet() {
		t.Fatal("clone shares flags with level")
	}
}

func TestCheckRecords(t *testing.T) {
	n, err := CheckRecords("initials", 3*InitialObjectByteSize, InitialObjectByteSize)
	if err != nil || n != 3 {
		t.Fatalf("CheckRecords = %d, %v", n, err)
	}
	if _, err := CheckRecords("conditions", ConditionByteSize+1, ConditionByteSize); err == nil {
		t.Error("ragged record table accepted")
	}
	if _, err := CheckRecords("bad", 10, 0); err == nil {
		t.Error("zero record size accepted")
	}
}

func TestAttributesString(t *testing.T) {
	if got := (CanTurn | IsDestination).String(); got != "can-turn|is-destination" {
		t.Errorf("String = %q", got)
	}
}
