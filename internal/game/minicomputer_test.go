package game

import (
	"image"
	"testing"
)

func TestMinicomputerBuild(t *testing.T) {
	s, p, _, _ := newTestPlayer(t)
	m := p.Mini
	before := s.Objects.Len()

	// Main screen: BUILD is the first item.
	m.KeyUp(CompAcceptKeyNum)
	if m.Screen != MiniBuild {
		t.Fatalf("screen = %v, want build", m.Screen)
	}
	lines := m.Lines()
	if len(lines) < 2 || !lines[1].Selectable || !lines[1].Selected || lines[1].Text[:7] != "FIGHTER" {
		t.Fatalf("build lines = %+v", lines)
	}

	m.KeyUp(CompAcceptKeyNum)
	if s.Objects.Len() != before+1 {
		t.Errorf("objects = %d, want a new fighter", s.Objects.Len())
	}
	if got := s.Admirals[0].Cash; got != StartingCash-300 {
		t.Errorf("cash = %v", got)
	}

	m.KeyUp(CompCancelKeyNum)
	if m.Screen != MiniMain {
		t.Errorf("cancel left screen %v", m.Screen)
	}
}

func TestMinicomputerKeysWrap(t *testing.T) {
	_, p, _, _ := newTestPlayer(t)
	m := p.Mini
	m.KeyDown(CompUpKeyNum)
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want wrap to the last item", m.Cursor)
	}
	m.KeyDown(CompDownKeyNum)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d", m.Cursor)
	}
}

func TestMinicomputerSpecialOrders(t *testing.T) {
	s, p, _, _ := newTestPlayer(t)
	a := s.admiral(s.PlayerAdmiral)
	a.Control = s.Initial(1)
	m := p.Mini
	m.Screen = MiniSpecial

	m.Cursor = 2 // come to me
	m.KeyUp(CompAcceptKeyNum)
	if got := s.Objects.Get(a.Control).Dest; got != s.Ship {
		t.Errorf("wing destination = %v, want the flagship", got)
	}
	m.Cursor = 1 // hold position
	m.KeyUp(CompAcceptKeyNum)
	if got := s.Objects.Get(a.Control).Dest; !got.IsNone() {
		t.Errorf("wing destination = %v, want none", got)
	}
}

func TestMinicomputerMouse(t *testing.T) {
	_, p, _, _ := newTestPlayer(t)
	m := p.Mini
	m.Bounds = image.Rect(0, 0, 100, 5*m.LineHeight)

	row := func(i int) image.Point { return image.Pt(10, (i+1)*m.LineHeight+1) }
	m.Click(row(2))
	if m.Cursor != 2 {
		t.Fatalf("cursor = %d after click", m.Cursor)
	}
	m.MouseUp(row(3))
	if m.Screen != MiniMain {
		t.Error("release off the pressed item accepted it")
	}

	m.Click(row(3))
	m.MouseUp(row(3))
	if m.Screen != MiniStatus {
		t.Errorf("screen = %v, want status", m.Screen)
	}
	lines := m.Lines()
	if len(lines) < 2 || lines[1].Text != "Destroy the raider" {
		t.Errorf("status lines = %+v", lines)
	}

	m.Reset()
	m.DoubleClick(row(0))
	if m.Screen != MiniBuild {
		t.Errorf("double click screen = %v", m.Screen)
	}
}
