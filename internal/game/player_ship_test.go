package game

import (
	"image"
	"slices"
	"testing"

	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// tap presses and releases a key held for the given ticks, updating after
// each edge.
func tap(p *PlayerShip, now *int64, key string, held int64) {
	p.KeyDown(key)
	p.Update(false)
	*now += held
	p.KeyUp(key)
	p.Update(false)
}

func TestHotKeyBindAndRecall(t *testing.T) {
	s, p, now, rec := newTestPlayer(t)
	a := s.admiral(s.PlayerAdmiral)
	lead, wing := s.Ship, s.Initial(1)

	p.SetSelectShip(wing, false, s.PlayerAdmiral)
	if a.Control != wing || p.Session.LastSelected != wing {
		t.Fatalf("control = %v, last selected = %v", a.Control, p.Session.LastSelected)
	}

	*now = 100
	tap(p, now, "1", hotKeyHoldDuration)
	hk := p.Session.HotKeys[0]
	if hk.Object != wing || hk.ObjectID != s.Objects.Get(wing).ID || hk.State != HotKeyUp {
		t.Fatalf("hotkey 0 = %+v, want bound to the wing", hk)
	}
	if got := s.Labels.Get(p.ControlLabel()).Text; got != "Wing < 1 >" {
		t.Errorf("control label = %q", got)
	}

	p.SetSelectShip(lead, false, s.PlayerAdmiral)
	rec.Reset()
	tap(p, now, "1", 5)
	if a.Control != wing {
		t.Errorf("tap did not recall the wing: control = %v", a.Control)
	}
	if !slices.Contains(rec.Cues, "select") {
		t.Errorf("cues = %v, want a select", rec.Cues)
	}
	if p.HotKeyFromObject(wing) != 0 || p.HotKeyFromObject(lead) != -1 {
		t.Errorf("HotKeyFromObject = %d, %d", p.HotKeyFromObject(wing), p.HotKeyFromObject(lead))
	}

	s.destroy(wing)
	s.cull()
	tap(p, now, "1", 5)
	if hk := p.Session.HotKeys[0]; !hk.Object.IsNone() || hk.ObjectID != -1 {
		t.Errorf("stale binding kept: %+v", hk)
	}
}

func TestHotKeyWithDestinationTargets(t *testing.T) {
	s, p, now, _ := newTestPlayer(t)
	a := s.admiral(s.PlayerAdmiral)
	wing := s.Initial(1)
	p.Session.HotKeys[1] = HotKey{Object: wing, ObjectID: s.Objects.Get(wing).ID}

	p.KeyDown("d")
	p.Update(false)
	if p.Session.DestKey != DestKeyDown {
		t.Fatalf("dest key = %d", p.Session.DestKey)
	}
	tap(p, now, "2", 5)
	if a.Target != wing {
		t.Errorf("target = %v, want the wing", a.Target)
	}
	if p.Session.DestKey != DestKeyBlocked {
		t.Errorf("dest key = %d, want blocked", p.Session.DestKey)
	}
	if got := s.Objects.Get(s.Ship).Dest; got != wing {
		t.Errorf("flagship not sent to the new target: %v", got)
	}

	p.KeyUp("d")
	p.Update(false)
	if p.Session.DestKey != DestKeyUp {
		t.Errorf("dest key after release = %d", p.Session.DestKey)
	}
}

func TestDestinationHoldTargetsSelf(t *testing.T) {
	s, p, now, _ := newTestPlayer(t)
	a := s.admiral(s.PlayerAdmiral)

	tap(p, now, "d", destKeyHoldDuration)
	if a.Target != s.Ship {
		t.Errorf("target = %v, want own ship", a.Target)
	}
	lb := s.Labels.Get(p.TargetLabel())
	if lb.Object != s.Ship || lb.Until != s.Time+labelAge {
		t.Errorf("target label = %+v, want aged on own ship", lb)
	}
}

func TestSelectKeys(t *testing.T) {
	s, p, _, _ := newTestPlayer(t)
	a := s.admiral(s.PlayerAdmiral)

	// The lead faces north (270) toward the wing and the raider.
	s.Objects.Get(s.Ship).Direction = 270

	p.KeyDown("f")
	p.Update(false)
	if a.Control != s.Initial(1) {
		t.Errorf("select friend: control = %v, want the wing", a.Control)
	}
	p.KeyDown("h")
	p.Update(false)
	if a.Target != s.Initial(3) {
		t.Errorf("select foe: target = %v, want the raider", a.Target)
	}

	// Pointing away finds nothing and leaves the selection alone.
	s.Objects.Get(s.Ship).Direction = 90
	p.KeyDown("h")
	p.Update(false)
	if a.Target != s.Initial(3) {
		t.Errorf("target changed to %v", a.Target)
	}
}

func TestPilotKeysAndAutopilot(t *testing.T) {
	s, p, _, _ := newTestPlayer(t)
	ship := func() *SpaceObject { return s.Objects.Get(s.Ship) }

	p.KeyDown("up")
	p.Update(false)
	if ship().KeysDown&UpKey == 0 {
		t.Fatalf("keys = %#x, want up", ship().KeysDown)
	}

	ship().Attributes |= world.OnAutoPilot
	p.Update(false)
	if ship().KeysDown&AutoPilotKey == 0 {
		t.Errorf("steering on autopilot did not ask to disengage: %#x", ship().KeysDown)
	}
	s.MajorTick()
	if ship().Attributes&world.OnAutoPilot != 0 {
		t.Error("autopilot still engaged")
	}

	p.KeyUp("up")
	p.Update(false)
	p.KeyDown("d")
	p.KeyDown("w")
	p.Update(false)
	if k := ship().KeysDown; k&AutoPilotKey == 0 || k&AdoptTargetKey == 0 || k&WarpKey != 0 {
		t.Errorf("destination+warp keys = %#x, want autopilot and adopt target without warp", k)
	}
}

func TestOrderKey(t *testing.T) {
	s, p, _, rec := newTestPlayer(t)
	a := s.admiral(s.PlayerAdmiral)
	a.Control, a.Target = s.Initial(1), s.Initial(3)

	p.KeyDown("o")
	p.Update(false)
	s.MajorTick()
	if got := s.Objects.Get(s.Initial(1)).Dest; got != s.Initial(3) {
		t.Errorf("wing destination = %v", got)
	}
	if !slices.Contains(rec.Cues, "order") {
		t.Errorf("cues = %v", rec.Cues)
	}
}

func TestZoomShortcuts(t *testing.T) {
	s, p, _, rec := newTestPlayer(t)

	steps := []struct {
		key  string
		want Zoom
	}{
		{"z", ZoomActual},
		{"x", ZoomDouble},
		{"x", ZoomActual},
		{"z", ZoomDouble},
		{"minus", ZoomActual},
		{"equal", ZoomDouble},
		{"equal", ZoomDouble},
	}
	for i, st := range steps {
		p.KeyDown(st.key)
		p.Update(false)
		if s.Zoom != st.want {
			t.Fatalf("step %d (%s): zoom = %v, want %v", i, st.key, s.Zoom, st.want)
		}
	}
	if msg, ok := s.Messages.Status(s.Time); !ok || msg.Text != ZoomDouble.String() {
		t.Errorf("status = %+v", msg)
	}
	if n := len(rec.Cues); n != 6 {
		t.Errorf("%d clicks, want 6 (no click when the zoom is unchanged)", n)
	}

	s.KeyMask |= ShortcutZoomMask
	p.KeyDown("z")
	p.Update(false)
	if s.Zoom != ZoomDouble {
		t.Errorf("masked shortcut changed zoom to %v", s.Zoom)
	}
}

func TestShieldsKlaxon(t *testing.T) {
	s, p, _, rec := newTestPlayer(t)
	s.Objects.Get(s.Ship).Health = 10

	p.Update(false)
	p.Update(false)
	if !slices.Equal(rec.Cues, []string{"loud-klaxon"}) {
		t.Fatalf("cues = %v, want one loud klaxon", rec.Cues)
	}
	s.Time += klaxonInterval + 1
	p.Update(false)
	if !slices.Equal(rec.Cues, []string{"loud-klaxon", "klaxon"}) {
		t.Errorf("cues = %v, want a normal klaxon after the interval", rec.Cues)
	}

	s.Objects.Get(s.Ship).Health = 200
	p.Update(false)
	if p.Session.NextKlaxon != noKlaxon {
		t.Error("klaxon not reset by healthy shields")
	}
}

func TestEnterMessageReleasesKeys(t *testing.T) {
	s, p, _, _ := newTestPlayer(t)
	p.KeyDown("up")
	p.KeyDown("left")
	p.Update(false)
	if s.Objects.Get(s.Ship).KeysDown&(UpKey|LeftKey) != UpKey|LeftKey {
		t.Fatalf("keys = %#x", s.Objects.Get(s.Ship).KeysDown)
	}
	p.KeyDown("o")
	p.Update(true)
	if k := s.Objects.Get(s.Ship).KeysDown; k != 0 {
		t.Errorf("keys while typing = %#x, want none", k)
	}
}

func TestHandleClick(t *testing.T) {
	s, p, _, _ := newTestPlayer(t)
	a := s.admiral(s.PlayerAdmiral)
	p.View = View{
		Center: s.Objects.Motion(s.Ship).Location,
		Scale:  world.ScaleScale,
		Bounds: image.Rect(0, 0, 640, 480),
	}
	wingAt := p.View.ToScreen(s.Objects.Motion(s.Initial(1)).Location)
	raiderAt := p.View.ToScreen(s.Objects.Motion(s.Initial(3)).Location)

	p.MouseDown(0, 1, wingAt)
	p.MouseUp(0, wingAt)
	if a.Control != s.Initial(1) {
		t.Errorf("left click: control = %v, want the wing", a.Control)
	}

	p.View.Center = s.Objects.Motion(s.Initial(3)).Location
	raiderAt = p.View.ToScreen(s.Objects.Motion(s.Initial(3)).Location)
	p.MouseDown(1, 1, raiderAt.Add(image.Pt(5, -5)))
	if a.Target != s.Initial(3) {
		t.Errorf("right click: target = %v, want the raider", a.Target)
	}

	s.KeyMask |= MouseMask
	p.MouseDown(1, 1, wingAt)
	if a.Target != s.Initial(3) {
		t.Error("masked click changed the target")
	}
}

func TestTransferControl(t *testing.T) {
	s, p, _, rec := newTestPlayer(t)
	lead, wing := s.Ship, s.Initial(1)
	p.SetSelectShip(wing, false, s.PlayerAdmiral)
	rec.Reset()

	p.KeyDown("t")
	p.Update(false)
	if s.Ship != wing || s.Admirals[0].Flagship != wing {
		t.Fatalf("ship = %v, want the wing", s.Ship)
	}
	if s.Objects.Get(lead).Attributes&world.IsPlayerShip != 0 {
		t.Error("old flagship still marked as player ship")
	}
	if s.Objects.Get(wing).Attributes&(world.IsPlayerShip|world.IsHumanControlled) != world.IsPlayerShip|world.IsHumanControlled {
		t.Error("new flagship not marked")
	}
	if !slices.Equal(rec.Cues, []string{"click"}) {
		t.Errorf("cues = %v", rec.Cues)
	}
	if lb := s.Labels.Get(p.ControlLabel()); lb.Until == 0 {
		t.Error("control label on the new flagship was not aged")
	}
}

func TestBodyExpireHandsOver(t *testing.T) {
	s, _, _, _ := newTestPlayer(t)
	lead, wing := s.Ship, s.Initial(1)

	s.destroy(lead)
	if s.Ship != wing {
		t.Fatalf("ship = %v, want the wing", s.Ship)
	}
	if s.GameOver {
		t.Error("game over with a ship left")
	}

	s.destroy(wing)
	if !s.Ship.IsNone() || !s.Admirals[0].Flagship.IsNone() {
		t.Errorf("ship = %v, flagship = %v, want none", s.Ship, s.Admirals[0].Flagship)
	}
	if !s.GameOver || s.GameOverAt != s.Time+gameOverDelay || s.VictoryText != "All lost." {
		t.Errorf("game over %v at %d, text %q", s.GameOver, s.GameOverAt, s.VictoryText)
	}
}

func TestChangePlayerShipNumberPanicsWithoutFlagship(t *testing.T) {
	s, _, _, _ := newTestPlayer(t)
	s.Admirals[0].Flagship = None()
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	s.ChangePlayerShipNumber(0, s.Initial(1))
}

func TestBumpers(t *testing.T) {
	cases := []struct {
		name  string
		steps []func(p *PlayerShip)
		want  []Bumper
	}{
		{
			name: "target then select",
			steps: []func(p *PlayerShip){
				func(p *PlayerShip) { p.GamepadButtonDown(GamepadLB) },
				func(p *PlayerShip) { p.GamepadButtonDown(GamepadRB) },
				func(p *PlayerShip) { p.GamepadButtonUp(GamepadLB) },
				func(p *PlayerShip) { p.GamepadButtonUp(GamepadRB) },
			},
			want: []Bumper{TargetBumper, SelectBumper | overrideBit, SelectBumper, NoBumper},
		},
		{
			name: "select then target",
			steps: []func(p *PlayerShip){
				func(p *PlayerShip) { p.GamepadButtonDown(GamepadRB) },
				func(p *PlayerShip) { p.GamepadButtonDown(GamepadLB) },
				func(p *PlayerShip) { p.GamepadButtonUp(GamepadRB) },
				func(p *PlayerShip) { p.GamepadButtonUp(GamepadLB) },
			},
			want: []Bumper{SelectBumper, TargetBumper | overrideBit, TargetBumper, NoBumper},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, p, _, _ := newTestPlayer(t)
			for i, step := range c.steps {
				step(p)
				if p.Bumper() != c.want[i] {
					t.Fatalf("after step %d bumper = %d, want %d", i, p.Bumper(), c.want[i])
				}
			}
		})
	}
}

func TestGamepadTargetsAlongStick(t *testing.T) {
	s, p, _, _ := newTestPlayer(t)
	a := s.admiral(s.PlayerAdmiral)

	p.GamepadStick(0, -1)
	p.GamepadButtonDown(GamepadLB)
	p.GamepadButtonDown(GamepadB)
	if a.Target != s.Initial(3) {
		t.Errorf("target = %v, want the raider", a.Target)
	}
	p.GamepadButtonUp(GamepadB)
	p.GamepadButtonUp(GamepadLB)

	p.GamepadButtonDown(GamepadRB)
	p.GamepadButtonDown(GamepadA)
	if a.Control != s.Initial(1) {
		t.Errorf("control = %v, want the wing", a.Control)
	}
	p.GamepadButtonUp(GamepadA)
	p.GamepadButtonUp(GamepadRB)
}

func TestGamepadSteering(t *testing.T) {
	s, p, _, _ := newTestPlayer(t)
	ship := func() *SpaceObject { return s.Objects.Get(s.Ship) }
	ship().Direction = 0

	p.GamepadStick(0, 1) // south, 90 degrees clockwise of east
	p.GamepadButtonDown(GamepadA)
	p.Update(false)
	if k := ship().KeysDown; k&RightKey == 0 || k&UpKey == 0 {
		t.Errorf("keys = %#x, want right turn with thrust", k)
	}

	ship().Direction = 85
	p.Update(false)
	if k := ship().KeysDown; k&(LeftKey|RightKey) != 0 {
		t.Errorf("keys = %#x, want no turn inside the correction band", k)
	}

	p.GamepadStick(0.1, 0.1)
	p.GamepadButtonUp(GamepadA)
	p.Update(false)
	if k := ship().KeysDown; k != 0 {
		t.Errorf("keys = %#x after release, want none", k)
	}
}

func TestGamepadAutopilot(t *testing.T) {
	s, p, _, _ := newTestPlayer(t)
	p.GamepadButtonDown(GamepadLB)
	p.GamepadButtonDown(GamepadY)
	p.Update(false)
	if k := s.Objects.Get(s.Ship).KeysDown; k&AutoPilotKey == 0 || k&AdoptTargetKey == 0 {
		t.Errorf("keys = %#x, want autopilot engaged", k)
	}
}

func TestReplayKeys(t *testing.T) {
	s, p, _, _ := newTestPlayer(t)
	p.Replay(UpKey | LeftKey)
	p.Update(false)
	if k := s.Objects.Get(s.Ship).KeysDown; k != UpKey|LeftKey {
		t.Errorf("keys = %#x", k)
	}
	p.Replay(UpKey)
	p.Update(false)
	if k := s.Objects.Get(s.Ship).KeysDown; k != UpKey {
		t.Errorf("keys = %#x", k)
	}
}

func TestPlayerEventOrdering(t *testing.T) {
	cases := []struct {
		a, b PlayerEvent
		less bool
	}{
		{PlayerEvent{KeyDownEvent, WarpKeyNum}, PlayerEvent{KeyUpEvent, UpKeyNum}, true},
		{PlayerEvent{KeyUpEvent, UpKeyNum}, PlayerEvent{KeyDownEvent, WarpKeyNum}, false},
		{PlayerEvent{KeyDownEvent, UpKeyNum}, PlayerEvent{KeyDownEvent, WarpKeyNum}, true},
		{PlayerEvent{KeyUpEvent, WarpKeyNum}, PlayerEvent{LongKeyUpEvent, UpKeyNum}, true},
		{PlayerEvent{KeyDownEvent, UpKeyNum}, PlayerEvent{KeyDownEvent, UpKeyNum}, false},
	}
	for _, c := range cases {
		if got := c.a.Less(c.b); got != c.less {
			t.Errorf("%+v.Less(%+v) = %v, want %v", c.a, c.b, got, c.less)
		}
	}
	e := PlayerEvent{KeyUpEvent, LeftKeyNum}
	if !e.Equal(PlayerEvent{KeyUpEvent, LeftKeyNum}) || e.Equal(PlayerEvent{LongKeyUpEvent, LeftKeyNum}) {
		t.Error("Equal must compare type and key")
	}
}

func TestKeysIgnoredWhileInactive(t *testing.T) {
	s, p, _, _ := newTestPlayer(t)
	s.Objects.Get(s.Ship).Active = false

	p.KeyDown("1")
	p.KeyUp("up")
	if len(p.events) != 0 {
		t.Errorf("queued %v for an inactive ship", p.events)
	}
}

func TestHotKeyFromObjectNeedsHandleAndID(t *testing.T) {
	s, p, _, _ := newTestPlayer(t)
	lead, wing := s.Ship, s.Initial(1)
	wingID := s.Objects.Get(wing).ID

	p.Session.HotKeys[2] = HotKey{Object: lead, ObjectID: wingID}
	if got := p.HotKeyFromObject(wing); got != -1 {
		t.Errorf("id-only match: HotKeyFromObject(wing) = %d, want -1", got)
	}
	if got := p.HotKeyFromObject(lead); got != -1 {
		t.Errorf("handle-only match: HotKeyFromObject(lead) = %d, want -1", got)
	}

	p.Session.HotKeys[2].ObjectID = s.Objects.Get(lead).ID
	if got := p.HotKeyFromObject(lead); got != 2 {
		t.Errorf("HotKeyFromObject(lead) = %d, want 2", got)
	}
}
