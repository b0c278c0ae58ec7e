package game

import (
	"testing"

	"github.com/spacehole-rogue/spacehole_tactical/internal/sound"
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

const testInfo = `{
  "title": "Test Scenario",
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
    {"name": "Bolt", "sprite": 520, "damage": 50, "lifetime": 30,
     "attributes": ["can-collide"],
     "collide": [{"verb": "play-sound", "sound": [40, 0]}]},
    {"name": "Fighter", "short-name": "FIGHTER", "class": 3, "race": 100, "sprite": 530,
     "attributes": ["can-engage", "can-evade", "can-accept-destination", "can-be-destination",
                    "can-turn", "can-be-hit", "can-be-engaged"],
     "pulse": "Bolt", "health": 200, "max-velocity": 100, "turn-rate": 10, "price": 300},
    {"name": "Raider", "short-name": "RAIDER", "class": 3, "race": 200, "sprite": 550,
     "attributes": ["can-engage", "can-evade", "can-accept-destination", "can-be-destination",
                    "can-turn", "can-be-hit", "can-be-engaged"],
     "health": 200, "max-velocity": 100, "turn-rate": 10, "price": 300},
    {"name": "Station", "sprite": 540, "attributes": ["is-destination", "can-accept-build", "static-destination"]}
  ]
}`

// testLevel has the player's flagship at the origin, a wingman north of it
// and a raider far to the north. With angle 0 level +H maps to universe -V.
const testLevel = `{
  "name": "Proving Ground",
  "type": "solo",
  "angle": 0,
  "players": [
    {"type": "human", "race": 100, "name": "Ishiman"},
    {"type": "computer", "race": 200, "name": "Cantharan"}
  ],
  "initials": [
    {"type": "Fighter", "owner": 0, "at": [0, 0], "flagship": true, "name": "Lead"},
    {"type": "Fighter", "owner": 0, "at": [300, 0], "name": "Wing"},
    {"type": "Station", "owner": 0, "at": [0, 2000], "builds": [3]},
    {"type": "Raider", "owner": 1, "at": [5000, 0]}
  ],
  "score-strings": ["Destroy the raider"],
  "solo": {"no-ships": "All lost."}
}`

func newTestSim(t *testing.T, levelJSON string) (*Sim, *world.Level) {
	t.Helper()
	cat, err := world.LoadCatalog([]byte(testInfo), []byte(testObjects))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	l, err := world.LoadLevel([]byte(levelJSON), cat)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	return NewSim(cat, 1), l
}

func constructAll(t *testing.T, s *Sim, l *world.Level) *LoadState {
	t.Helper()
	state := s.StartConstructLevel(l)
	for calls := 0; !state.Done; calls++ {
		if calls > state.Max {
			t.Fatalf("not done after %d steps (max %d)", calls, state.Max)
		}
		if err := s.ConstructLevel(state); err != nil {
			t.Fatalf("ConstructLevel step %d: %v", state.Step, err)
		}
	}
	return state
}

// newTestPlayer builds the test level with a command interpreter attached
// and a recording sound sink. The returned clock drives held-key timing.
func newTestPlayer(t *testing.T) (*Sim, *PlayerShip, *int64, *sound.Recorder) {
	t.Helper()
	s, l := newTestSim(t, testLevel)
	rec := &sound.Recorder{}
	s.Sound = rec
	p := NewPlayerShip(s, Bindings{
		"1":     FirstHotKeyNum,
		"2":     FirstHotKeyNum + 1,
		"d":     DestinationKeyNum,
		"f":     SelectFriendKeyNum,
		"h":     SelectFoeKeyNum,
		"o":     OrderKeyNum,
		"w":     WarpKeyNum,
		"z":     Scale121KeyNum,
		"x":     Scale122KeyNum,
		"t":     TransferKeyNum,
		"up":    UpKeyNum,
		"left":  LeftKeyNum,
		"minus": ZoomOutKeyNum,
		"equal": ZoomInKeyNum,
	})
	var now int64
	p.Now = func() int64 { return now }
	constructAll(t, s, l)
	rec.Reset()
	return s, p, &now, rec
}

func TestMajorTickMovesAndExpires(t *testing.T) {
	s, _, _, _ := newTestPlayer(t)
	lead := s.Ship

	s.fire(lead, 0)
	if s.Objects.Len() != 5 {
		t.Fatalf("objects after firing = %d, want 5", s.Objects.Len())
	}
	for range 12 {
		s.MajorTick()
	}
	if s.Objects.Len() != 4 {
		t.Errorf("objects after bolt lifetime = %d, want 4", s.Objects.Len())
	}
}

func TestThinkPlayerShipCommandKeys(t *testing.T) {
	s, _, _, rec := newTestPlayer(t)
	a := s.admiral(s.PlayerAdmiral)
	wing, raider := s.Initial(1), s.Initial(3)
	a.Control, a.Target = wing, raider

	lead := s.Objects.Get(s.Ship)
	lead.KeysDown |= GiveCommandKey | AutoPilotKey
	s.MajorTick()

	if got := s.Objects.Get(wing).Dest; got != raider {
		t.Errorf("wing destination = %v, want raider", got)
	}
	lead = s.Objects.Get(s.Ship)
	if lead.Attributes&world.OnAutoPilot == 0 {
		t.Error("autopilot not engaged")
	}
	if lead.Dest != raider {
		t.Errorf("flagship destination = %v, want raider", lead.Dest)
	}
	if lead.KeysDown&commandKeys != 0 {
		t.Errorf("command keys not consumed: %#x", lead.KeysDown)
	}
	if len(rec.Cues) == 0 || rec.Cues[0] != "order" {
		t.Errorf("cues = %v, want order first", rec.Cues)
	}
	if msg, ok := s.Messages.Status(s.Time); !ok || msg.Text != "Autopilot on" {
		t.Errorf("status = %+v, %v", msg, ok)
	}
}

func TestWarpNeedsWarmup(t *testing.T) {
	s, _, _, _ := newTestPlayer(t)
	lead := s.Objects.Get(s.Ship)
	lead.KeysDown = WarpKey
	s.MajorTick()
	if s.Objects.Get(s.Ship).Warping {
		t.Fatal("warping after one step")
	}
	for range warpWarmup / MajorTick {
		s.MajorTick()
	}
	if !s.Objects.Get(s.Ship).Warping {
		t.Error("not warping after warmup")
	}
	s.Objects.Get(s.Ship).KeysDown = 0
	s.MajorTick()
	if s.Objects.Get(s.Ship).Warping {
		t.Error("still warping after release")
	}
}

func TestConditionFiresOnce(t *testing.T) {
	level := `{
  "players": [{"type": "human", "race": 100}],
  "angle": 0,
  "initials": [{"type": "Fighter", "owner": 0, "at": [0, 0]}],
  "conditions": [
    {"kind": "time", "ticks": 0, "once": true,
     "actions": [{"verb": "change-score", "player": 0, "counter": 1, "amount": 5}]}
  ]
}`
	s, l := newTestSim(t, level)
	constructAll(t, s, l)
	for range 2 * ConditionTick / MajorTick {
		s.MajorTick()
	}
	if got := s.Admirals[0].Score[1]; got != 5 {
		t.Errorf("score = %d, want 5 (condition ran more than once?)", got)
	}
}
